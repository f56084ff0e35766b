package audio

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/retro"
)

type fakeChannel struct {
	t       SoundType
	s       Stream
	volume  int
	balance int
	paused  bool
	elapsed time.Duration
}

// fakeMixer implements Mixer in memory. Streams stay active until
// finish or StopHandle.
type fakeMixer struct {
	next     Handle
	channels map[Handle]*fakeChannel
	pauses   []bool
	failPlay error
}

func newFakeMixer() *fakeMixer {
	return &fakeMixer{channels: make(map[Handle]*fakeChannel)}
}

func (m *fakeMixer) PlayStream(t SoundType, s Stream, volume, balance int) (Handle, error) {
	if m.failPlay != nil {
		return 0, m.failPlay
	}
	m.next++
	m.channels[m.next] = &fakeChannel{t: t, s: s, volume: volume, balance: balance}
	return m.next, nil
}

func (m *fakeMixer) StopHandle(h Handle) { delete(m.channels, h) }

func (m *fakeMixer) PauseHandle(h Handle, paused bool) {
	m.pauses = append(m.pauses, paused)
	if ch, ok := m.channels[h]; ok {
		ch.paused = paused
	}
}

func (m *fakeMixer) IsSoundHandleActive(h Handle) bool {
	_, ok := m.channels[h]
	return ok
}

func (m *fakeMixer) SoundElapsedTime(h Handle) time.Duration {
	if ch, ok := m.channels[h]; ok {
		return ch.elapsed
	}
	return 0
}

func (m *fakeMixer) SetChannelVolume(h Handle, v int) {
	if ch, ok := m.channels[h]; ok {
		ch.volume = v
	}
}

func (m *fakeMixer) SetChannelBalance(h Handle, b int) {
	if ch, ok := m.channels[h]; ok {
		ch.balance = b
	}
}

// finish simulates the stream running out.
func (m *fakeMixer) finish(h Handle) { delete(m.channels, h) }

// rawStream is a Stream that cannot seek.
type rawStream struct{ closed bool }

func (*rawStream) ReadSamples(buf []int16) (int, error) { return len(buf), nil }
func (*rawStream) Rate() int                            { return 22050 }
func (*rawStream) Stereo() bool                         { return false }
func (r *rawStream) Close() error {
	r.closed = true
	return nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	retro.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { retro.SetLogger(nil) })
	return &buf
}

func tone(frames int) *PCM {
	return NewPCM(make([]int16, frames), 1000, false)
}

func TestClipLifecycle(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(1000), WithType(SFXSound), WithVolume(200))

	if c.State() != StateInitial {
		t.Fatalf("State() = %v, want initial", c.State())
	}
	if err := c.Play(); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	ch := m.channels[c.Handle()]
	if ch == nil || ch.t != SFXSound || ch.volume != 200 || ch.balance != 0 {
		t.Fatalf("channel = %+v, want sfx at volume 200", ch)
	}
	c.Poll()
	if c.State() != StatePlaying {
		t.Errorf("after Poll() State() = %v, want playing", c.State())
	}

	c.Pause()
	if c.State() != StatePaused || !ch.paused {
		t.Errorf("Pause(): state %v, mixer paused %v", c.State(), ch.paused)
	}
	c.Poll()
	if c.State() != StatePaused {
		t.Errorf("Poll() while paused changed state to %v", c.State())
	}

	c.Resume()
	if c.State() != StatePlaying || ch.paused {
		t.Errorf("Resume(): state %v, mixer paused %v", c.State(), ch.paused)
	}
	if len(m.pauses) != 2 || !m.pauses[0] || m.pauses[1] {
		t.Errorf("PauseHandle calls = %v, want [true false]", m.pauses)
	}

	m.finish(c.Handle())
	c.Poll()
	if c.State() != StateStopped {
		t.Errorf("after finish State() = %v, want stopped", c.State())
	}
	if c.IsPlaying() {
		t.Error("IsPlaying() = true after finish")
	}
}

func TestClipPollBeforePlay(t *testing.T) {
	c := NewSoundClip(newFakeMixer(), tone(10), WithType(MusicSound))
	c.Poll()
	if c.State() != StateInitial {
		t.Errorf("State() = %v, want initial", c.State())
	}
}

func TestClipDeferredPlay(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(10))

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	if len(m.channels) != 0 {
		t.Fatal("plain clip started without a sound type")
	}
	if !c.Waiting() {
		t.Error("Waiting() = false after Play() on plain clip")
	}

	if err := c.SetType(SpeechSound); err != nil {
		t.Fatal(err)
	}
	if !c.IsPlaying() || m.channels[c.Handle()].t != SpeechSound {
		t.Error("SetType() did not start the waiting clip")
	}
	if c.Waiting() {
		t.Error("Waiting() = true after start")
	}
}

func TestClipSetTypeWithoutPlay(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(10))
	if err := c.SetType(MusicSound); err != nil {
		t.Fatal(err)
	}
	if len(m.channels) != 0 {
		t.Error("SetType() started a clip that was never played")
	}

	logs := captureLogs(t)
	c.SetType(PlainSound)
	if c.Type() != MusicSound {
		t.Errorf("Type() = %v, want music", c.Type())
	}
	if !strings.Contains(logs.String(), "plain") {
		t.Errorf("missing warning, logs = %q", logs.String())
	}
}

func TestClipPlayFrom(t *testing.T) {
	tests := []struct {
		name string
		pos  time.Duration
		want time.Duration
	}{
		{"zero", 0, 0},
		{"middle", 250 * time.Millisecond, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tone(1000)
			c := NewSoundClip(newFakeMixer(), s, WithType(SFXSound))
			if err := c.PlayFrom(tt.pos); err != nil {
				t.Fatal(err)
			}
			if got := s.Pos(); got != tt.want {
				t.Errorf("stream Pos() = %v, want %v", got, tt.want)
			}
			if !c.IsPlaying() {
				t.Error("PlayFrom() did not start playback")
			}
		})
	}
}

func TestClipPlayError(t *testing.T) {
	m := newFakeMixer()
	m.failPlay = errors.New("no free channel")
	c := NewSoundClip(m, tone(10), WithType(SFXSound))
	if err := c.Play(); !errors.Is(err, m.failPlay) {
		t.Errorf("Play() error = %v, want wrapped mixer error", err)
	}
	if c.Handle().Valid() {
		t.Error("Handle() valid after failed Play()")
	}
}

func TestClipNonSeekable(t *testing.T) {
	logs := captureLogs(t)
	c := NewSoundClip(newFakeMixer(), &rawStream{}, WithType(SFXSound))

	c.Seek(time.Second)
	if got := c.Length(); got != 0 {
		t.Errorf("Length() = %v, want 0", got)
	}
	out := logs.String()
	if !strings.Contains(out, "does not support seeking") || !strings.Contains(out, "does not support length") {
		t.Errorf("missing warnings, logs = %q", out)
	}
}

func TestClipSeekOutOfRange(t *testing.T) {
	logs := captureLogs(t)
	s := tone(1000)
	c := NewSoundClip(newFakeMixer(), s)
	c.Seek(5 * time.Second)
	if s.Pos() != 0 {
		t.Errorf("stream moved to %v", s.Pos())
	}
	if !strings.Contains(logs.String(), "seek failed") {
		t.Errorf("missing warning, logs = %q", logs.String())
	}
	if got := c.Length(); got != time.Second {
		t.Errorf("Length() = %v, want 1s", got)
	}
}

func TestClipRepeat(t *testing.T) {
	c := NewSoundClip(newFakeMixer(), tone(4), WithRepeat(true), WithType(MusicSound))
	if !c.Repeat() {
		t.Error("Repeat() = false")
	}
	l, ok := c.stream.(*Looping)
	if !ok {
		t.Fatalf("stream = %T, want *Looping", c.stream)
	}
	buf := make([]int16, 10)
	if n, err := l.ReadSamples(buf); n != 10 || err != nil {
		t.Errorf("ReadSamples() = %d, %v, want 10, nil", n, err)
	}

	logs := captureLogs(t)
	if c.Length() != 0 {
		t.Error("repeating clip should have no length")
	}
	if logs.Len() == 0 {
		t.Error("Length() on repeating clip did not warn")
	}
}

func TestClipRepeatNonSeekable(t *testing.T) {
	logs := captureLogs(t)
	s := &rawStream{}
	c := NewSoundClip(newFakeMixer(), s, WithRepeat(true))
	if c.stream != Stream(s) {
		t.Error("non-seekable stream was wrapped")
	}
	if !strings.Contains(logs.String(), "cannot repeat") {
		t.Errorf("missing warning, logs = %q", logs.String())
	}
}

func TestClipVolumePanning(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(10), WithType(SFXSound))

	c.SetVolume(300)
	c.SetPanning(-200)
	if c.Volume() != MaxVolume || c.Panning() != MinBalance {
		t.Errorf("Volume(), Panning() = %d, %d, want clamped", c.Volume(), c.Panning())
	}

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	ch := m.channels[c.Handle()]
	if ch.volume != MaxVolume || ch.balance != MinBalance {
		t.Errorf("channel volume/balance = %d/%d, want stored values", ch.volume, ch.balance)
	}

	c.SetVolume(64)
	c.SetPanning(32)
	if ch.volume != 64 || ch.balance != 32 {
		t.Errorf("channel volume/balance = %d/%d, want 64/32", ch.volume, ch.balance)
	}
}

func TestClipSpeed(t *testing.T) {
	logs := captureLogs(t)
	c := NewSoundClip(newFakeMixer(), tone(10))
	if c.Speed() != 100 {
		t.Errorf("default Speed() = %d, want 100", c.Speed())
	}
	c.SetSpeed(150)
	if c.Speed() != 150 {
		t.Errorf("Speed() = %d, want 150", c.Speed())
	}
	if !strings.Contains(logs.String(), "speed") {
		t.Errorf("missing warning, logs = %q", logs.String())
	}
}

func TestClipPos(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(10), WithType(SFXSound))
	if c.Pos() != 0 {
		t.Error("Pos() before Play() should be 0")
	}
	c.Play()
	m.channels[c.Handle()].elapsed = 3 * time.Millisecond
	if got := c.Pos(); got != 3*time.Millisecond {
		t.Errorf("Pos() = %v, want 3ms", got)
	}
}

func TestClipStopAndClose(t *testing.T) {
	m := newFakeMixer()
	s := &rawStream{}
	c := NewSoundClip(m, s, WithType(SFXSound))
	c.Play()
	c.Stop()
	if c.State() != StateStopped || len(m.channels) != 0 {
		t.Errorf("Stop(): state %v, channels %d", c.State(), len(m.channels))
	}

	c.Play()
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if len(m.channels) != 0 || !s.closed {
		t.Error("Close() did not stop and close the stream")
	}
	if err := c.Play(); err != nil || len(m.channels) != 0 {
		t.Error("Play() after Close() should do nothing")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{StateInitial, "initial"},
		{StatePlaying, "playing"},
		{StatePaused, "paused"},
		{StateStopped, "stopped"},
		{State(9), "State(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("State.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestClipPlayTwice(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(10), WithType(SFXSound))
	c.Play()
	first := c.Handle()
	c.Play()
	if c.Handle() == first || len(m.channels) != 1 {
		t.Errorf("second Play(): handle %d (first %d), %d channels, want a new single channel",
			c.Handle(), first, len(m.channels))
	}
}

func TestClipPlayWhilePaused(t *testing.T) {
	m := newFakeMixer()
	c := NewSoundClip(m, tone(100), WithType(SFXSound))
	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	c.Poll()
	c.Pause()

	if err := c.Play(); err != nil {
		t.Fatal(err)
	}
	if c.State() != StatePlaying {
		t.Errorf("Play() on paused clip: State() = %v, want playing", c.State())
	}
	c.Poll()
	if c.State() != StatePlaying {
		t.Errorf("after Poll() State() = %v, want playing", c.State())
	}
	if ch := m.channels[c.Handle()]; ch == nil || ch.paused {
		t.Error("restarted stream should be active and unpaused")
	}

	m.finish(c.Handle())
	c.Poll()
	if c.State() != StateStopped {
		t.Errorf("after finish State() = %v, want stopped", c.State())
	}
}
