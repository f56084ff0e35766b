package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/gogpu/retro"
)

// State is the coarse playback state of a SoundClip.
type State int

const (
	StateInitial State = iota
	StatePlaying
	StatePaused
	StateStopped
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SoundClip drives one stream through a Mixer.
//
// The state only changes through the clip's own methods. Poll refreshes it
// from the mixer, which is how a finished stream becomes StateStopped.
// SoundClip is not safe for concurrent use.
type SoundClip struct {
	mixer     Mixer
	stream    Stream
	handle    Handle
	state     State
	soundType SoundType
	volume    int
	panning   int
	speed     int
	repeat    bool
	waiting   bool
}

// NewSoundClip creates a stopped clip over s. With WithRepeat a seekable
// stream is wrapped to loop forever.
func NewSoundClip(m Mixer, s Stream, opts ...ClipOption) *SoundClip {
	o := defaultClipOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &SoundClip{
		mixer:     m,
		stream:    s,
		soundType: o.soundType,
		volume:    o.volume,
		speed:     100,
		repeat:    o.repeat,
	}
	if o.repeat {
		if ss, ok := s.(SeekableStream); ok {
			c.stream = NewLooping(ss, 0)
		} else {
			retro.Logger().Warn("audio: stream cannot repeat, playing once")
		}
	}
	return c
}

// Play starts the clip from the stream's current position and sets it
// playing, also when it was paused. A clip of PlainSound type is remembered as waiting
// and starts when SetType gives it a real type.
func (c *SoundClip) Play() error {
	if c.stream == nil {
		return nil
	}
	if c.soundType == PlainSound {
		c.waiting = true
		return nil
	}
	c.waiting = false
	if c.handle.Valid() {
		c.mixer.StopHandle(c.handle)
	}
	h, err := c.mixer.PlayStream(c.soundType, c.stream, c.volume, c.panning)
	if err != nil {
		c.handle = 0
		return fmt.Errorf("audio: play %s clip: %w", c.soundType, err)
	}
	c.handle = h
	c.state = StatePlaying
	return nil
}

// PlayFrom seeks to pos, unless it is zero, and starts the clip.
func (c *SoundClip) PlayFrom(pos time.Duration) error {
	if pos != 0 {
		c.Seek(pos)
	}
	return c.Play()
}

// Pause pauses the mixer stream.
func (c *SoundClip) Pause() {
	c.mixer.PauseHandle(c.handle, true)
	c.state = StatePaused
}

// Resume continues a paused stream and refreshes the state.
func (c *SoundClip) Resume() {
	c.mixer.PauseHandle(c.handle, false)
	c.state = StatePlaying
	c.Poll()
}

// Stop stops the mixer stream. A stopped clip can be played again.
func (c *SoundClip) Stop() {
	c.mixer.StopHandle(c.handle)
	c.handle = 0
	c.waiting = false
	c.state = StateStopped
}

// Poll refreshes the state from the mixer: an active stream is playing,
// and a playing clip whose stream ended is stopped. Paused clips stay
// paused until Resume.
func (c *SoundClip) Poll() {
	if c.state == StatePaused {
		return
	}
	if c.IsPlaying() {
		c.state = StatePlaying
	} else if c.state == StatePlaying {
		c.state = StateStopped
	}
}

// State returns the state as of the last Poll or control call.
func (c *SoundClip) State() State { return c.state }

// IsPlaying reports whether the mixer still has the stream. Paused
// streams count as playing.
func (c *SoundClip) IsPlaying() bool {
	return c.handle.Valid() && c.mixer.IsSoundHandleActive(c.handle)
}

// Waiting reports whether Play was called before a sound type was set.
func (c *SoundClip) Waiting() bool { return c.waiting }

// Seek moves the stream to pos. Non-seekable streams log a warning.
func (c *SoundClip) Seek(pos time.Duration) {
	ss, ok := c.stream.(SeekableStream)
	if !ok {
		retro.Logger().Warn("audio: stream does not support seeking", "pos", pos)
		return
	}
	if err := ss.Seek(pos); err != nil {
		retro.Logger().Warn("audio: seek failed", "pos", pos, "err", err)
	}
}

// Pos returns the time the mixer has played of the current stream.
func (c *SoundClip) Pos() time.Duration {
	if !c.handle.Valid() {
		return 0
	}
	return c.mixer.SoundElapsedTime(c.handle)
}

// Length returns the stream length, or 0 with a warning when the stream
// is not seekable. Repeating clips have no length.
func (c *SoundClip) Length() time.Duration {
	ss, ok := c.stream.(SeekableStream)
	if !ok {
		retro.Logger().Warn("audio: stream does not support length")
		return 0
	}
	return ss.Length()
}

// SetVolume sets the volume, 0..255, on the clip and its mixer stream.
func (c *SoundClip) SetVolume(v int) {
	c.volume = ClampVolume(v)
	if c.handle.Valid() {
		c.mixer.SetChannelVolume(c.handle, c.volume)
	}
}

// SetPanning sets the balance, -127 (left) to 127 (right).
func (c *SoundClip) SetPanning(p int) {
	c.panning = ClampBalance(p)
	if c.handle.Valid() {
		c.mixer.SetChannelBalance(c.handle, c.panning)
	}
}

// SetSpeed records a playback speed in percent. Mixers play at the
// stream rate, so the value has no audible effect.
func (c *SoundClip) SetSpeed(speed int) {
	retro.Logger().Warn("audio: playback speed is not supported", "speed", speed)
	c.speed = speed
}

// SetType sets the sound type and starts the clip if Play was waiting for
// one. PlainSound is rejected.
func (c *SoundClip) SetType(t SoundType) error {
	if t == PlainSound {
		retro.Logger().Warn("audio: cannot reset a clip to plain sound type")
		return nil
	}
	c.soundType = t
	if c.waiting {
		return c.Play()
	}
	return nil
}

// Volume returns the clip volume.
func (c *SoundClip) Volume() int { return c.volume }

// Panning returns the clip balance.
func (c *SoundClip) Panning() int { return c.panning }

// Speed returns the recorded playback speed in percent.
func (c *SoundClip) Speed() int { return c.speed }

// Type returns the sound type.
func (c *SoundClip) Type() SoundType { return c.soundType }

// Repeat reports whether the clip was created to loop.
func (c *SoundClip) Repeat() bool { return c.repeat }

// Handle returns the mixer handle of the current stream, or 0.
func (c *SoundClip) Handle() Handle { return c.handle }

// Close stops playback and closes the stream when it implements io.Closer.
func (c *SoundClip) Close() error {
	if c.handle.Valid() {
		c.mixer.StopHandle(c.handle)
		c.handle = 0
	}
	c.waiting = false
	s := c.stream
	c.stream = nil
	if cl, ok := s.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
