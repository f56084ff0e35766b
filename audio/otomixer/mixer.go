// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package otomixer implements audio.Mixer on oto v3.
//
// Every started stream gets its own oto player. The oto context is shared
// by the whole process and opened by the first New call; its sample rate
// is fixed from then on. Streams are not resampled: a stream at another
// rate plays at the wrong pitch and logs a warning.
package otomixer

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/gogpu/retro"
	"github.com/gogpu/retro/audio"
)

// ErrClosed is returned by PlayStream after Close.
var ErrClosed = errors.New("otomixer: mixer closed")

// player is the part of *oto.Player the mixer uses.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(volume float64)
	BufferedSize() int
	Err() error
	Close() error
}

var (
	otoCtx      *oto.Context
	otoRate     int
	otoInitOnce sync.Once
	otoInitErr  error
)

// ensureContext opens the process-wide oto context on first use.
func ensureContext(o options) (*oto.Context, int, error) {
	otoInitOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   o.sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   o.bufferSize,
		}
		var ready chan struct{}
		otoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr != nil {
			return
		}
		<-ready
		otoRate = o.sampleRate
		retro.Logger().Info("otomixer: audio device opened", "rate", otoRate)
	})
	return otoCtx, otoRate, otoInitErr
}

type channel struct {
	soundType audio.SoundType
	player    player
	reader    *channelReader
	paused    bool
}

// Mixer is an audio.Mixer playing through oto. It is safe for concurrent
// use.
type Mixer struct {
	mu        sync.Mutex
	rate      int
	newPlayer func(io.Reader) player
	next      audio.Handle
	channels  map[audio.Handle]*channel
	closed    bool
}

var _ audio.Mixer = (*Mixer)(nil)

// New opens the audio device, if not already open, and returns a mixer.
func New(opts ...Option) (*Mixer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx, rate, err := ensureContext(o)
	if err != nil {
		return nil, fmt.Errorf("otomixer: oto audio not available: %w", err)
	}
	if rate != o.sampleRate {
		retro.Logger().Warn("otomixer: audio device already open at another rate",
			"rate", rate, "requested", o.sampleRate)
	}
	return newMixer(rate, func(r io.Reader) player {
		p := ctx.NewPlayer(r)
		if o.playerBuffer > 0 {
			p.SetBufferSize(o.playerBuffer)
		}
		return p
	}), nil
}

func newMixer(rate int, newPlayer func(io.Reader) player) *Mixer {
	return &Mixer{
		rate:      rate,
		newPlayer: newPlayer,
		channels:  make(map[audio.Handle]*channel),
	}
}

// SampleRate returns the device sample rate.
func (m *Mixer) SampleRate() int { return m.rate }

// PlayStream implements audio.Mixer.
func (m *Mixer) PlayStream(t audio.SoundType, s audio.Stream, volume, balance int) (audio.Handle, error) {
	if s == nil {
		return 0, errors.New("otomixer: nil stream")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	m.reapLocked()

	if s.Rate() != m.rate {
		retro.Logger().Warn("otomixer: stream sample rate differs from device",
			"stream", s.Rate(), "device", m.rate)
	}
	r := newChannelReader(s, balance)
	p := m.newPlayer(r)
	p.SetVolume(volumeScale(volume))
	p.Play()

	m.next++
	if m.next == 0 {
		m.next++
	}
	m.channels[m.next] = &channel{soundType: t, player: p, reader: r}
	retro.Logger().Debug("otomixer: stream started", "handle", m.next, "type", t)
	return m.next, nil
}

func volumeScale(v int) float64 {
	return float64(audio.ClampVolume(v)) / audio.MaxVolume
}

// active reports whether ch still has sound to play. Paused streams are
// active.
func (ch *channel) active() bool {
	if ch.paused {
		return true
	}
	if ch.player.IsPlaying() {
		return true
	}
	_, done := ch.reader.state()
	return !done && ch.player.Err() == nil
}

// reapLocked closes players whose streams have finished.
func (m *Mixer) reapLocked() {
	for h, ch := range m.channels {
		if !ch.active() {
			m.closeLocked(h, ch)
		}
	}
}

func (m *Mixer) closeLocked(h audio.Handle, ch *channel) {
	ch.player.Pause()
	if err := ch.player.Close(); err != nil {
		retro.Logger().Warn("otomixer: closing player failed", "handle", h, "err", err)
	}
	if err := ch.reader.failure(); err != nil {
		retro.Logger().Warn("otomixer: stream failed", "handle", h, "err", err)
	}
	delete(m.channels, h)
}

// StopHandle implements audio.Mixer.
func (m *Mixer) StopHandle(h audio.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.channels[h]; ok {
		m.closeLocked(h, ch)
	}
}

// PauseHandle implements audio.Mixer.
func (m *Mixer) PauseHandle(h audio.Handle, paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[h]
	if !ok || ch.paused == paused {
		return
	}
	ch.paused = paused
	if paused {
		ch.player.Pause()
	} else {
		ch.player.Play()
	}
}

// IsSoundHandleActive implements audio.Mixer.
func (m *Mixer) IsSoundHandleActive(h audio.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[h]
	return ok && ch.active()
}

// SoundElapsedTime implements audio.Mixer. It counts the frames the player
// has consumed minus those still in its buffer.
func (m *Mixer) SoundElapsedTime(h audio.Handle) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[h]
	if !ok || m.rate <= 0 {
		return 0
	}
	frames, _ := ch.reader.state()
	frames -= int64(ch.player.BufferedSize() / bytesPerFrame)
	if frames < 0 {
		frames = 0
	}
	return time.Duration(frames) * time.Second / time.Duration(m.rate)
}

// SetChannelVolume implements audio.Mixer.
func (m *Mixer) SetChannelVolume(h audio.Handle, volume int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.channels[h]; ok {
		ch.player.SetVolume(volumeScale(volume))
	}
}

// SetChannelBalance implements audio.Mixer.
func (m *Mixer) SetChannelBalance(h audio.Handle, balance int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ch, ok := m.channels[h]; ok {
		ch.reader.setBalance(balance)
	}
}

// StopAll stops every stream of type t.
func (m *Mixer) StopAll(t audio.SoundType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for h, ch := range m.channels {
		if ch.soundType == t {
			m.closeLocked(h, ch)
		}
	}
}

// Active returns the number of streams held by the mixer.
func (m *Mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

// Close stops every stream. The shared oto context stays open.
func (m *Mixer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for h, ch := range m.channels {
		m.closeLocked(h, ch)
	}
	m.closed = true
	return nil
}
