package main

import (
	"math"

	"github.com/gogpu/retro/audio"
	"github.com/gogpu/retro/audio/otomixer"
)

// tonePlayer loops one second of a sine wave.
type tonePlayer struct {
	mixer *otomixer.Mixer
	clip  *audio.SoundClip
}

func startTone(freq float64) (*tonePlayer, error) {
	m, err := otomixer.New()
	if err != nil {
		return nil, err
	}
	rate := m.SampleRate()
	clip := audio.NewSoundClip(m, audio.NewPCM(sine(freq, rate), rate, false),
		audio.WithType(audio.MusicSound),
		audio.WithVolume(96),
		audio.WithRepeat(true))
	if err := clip.Play(); err != nil {
		m.Close()
		return nil, err
	}
	return &tonePlayer{mixer: m, clip: clip}, nil
}

// sine returns one second of a mono sine wave at 1/4 amplitude.
func sine(freq float64, rate int) []int16 {
	samples := make([]int16, rate)
	for i := range samples {
		v := math.Sin(2 * math.Pi * freq * float64(i) / float64(rate))
		samples[i] = int16(v * math.MaxInt16 / 4)
	}
	return samples
}

func (p *tonePlayer) poll() {
	p.clip.Poll()
}

// togglePause pauses a playing tone and resumes a paused one.
func (p *tonePlayer) togglePause() {
	if p.clip.State() == audio.StatePaused {
		p.clip.Resume()
	} else {
		p.clip.Pause()
	}
}

func (p *tonePlayer) Close() error {
	p.clip.Close()
	return p.mixer.Close()
}
