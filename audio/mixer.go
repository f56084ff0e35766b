package audio

import "time"

// SoundType routes a stream to a mixer channel group.
type SoundType int

const (
	// PlainSound has no channel group. Clips of this type wait for a real
	// type before they start.
	PlainSound SoundType = iota
	MusicSound
	SFXSound
	SpeechSound
)

// String returns the name of the sound type.
func (t SoundType) String() string {
	switch t {
	case PlainSound:
		return "plain"
	case MusicSound:
		return "music"
	case SFXSound:
		return "sfx"
	case SpeechSound:
		return "speech"
	default:
		return "unknown"
	}
}

// Handle identifies a playing stream in a Mixer. The zero Handle is never
// returned for a started stream.
type Handle uint32

// Valid reports whether h refers to a stream.
func (h Handle) Valid() bool { return h != 0 }

// Volume and balance ranges accepted by a Mixer.
const (
	MaxVolume  = 255
	MinBalance = -127
	MaxBalance = 127
)

// Mixer plays streams. Operations on unknown or finished handles are
// no-ops. A paused stream is still active.
type Mixer interface {
	PlayStream(t SoundType, s Stream, volume, balance int) (Handle, error)
	StopHandle(h Handle)
	PauseHandle(h Handle, paused bool)
	IsSoundHandleActive(h Handle) bool
	SoundElapsedTime(h Handle) time.Duration
	SetChannelVolume(h Handle, volume int)
	SetChannelBalance(h Handle, balance int)
}

// ClampVolume limits v to 0..MaxVolume.
func ClampVolume(v int) int {
	return min(max(v, 0), MaxVolume)
}

// ClampBalance limits b to MinBalance..MaxBalance.
func ClampBalance(b int) int {
	return min(max(b, MinBalance), MaxBalance)
}
