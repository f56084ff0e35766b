package audio

import (
	"fmt"
	"io"
	"time"
)

// PCM is an in-memory SeekableStream.
type PCM struct {
	samples []int16
	rate    int
	stereo  bool
	pos     int // sample index, always on a frame boundary
}

// NewPCM returns a stream over samples. The slice is not copied.
func NewPCM(samples []int16, rate int, stereo bool) *PCM {
	p := &PCM{samples: samples, rate: rate, stereo: stereo}
	if stereo && len(samples)%2 != 0 {
		p.samples = samples[:len(samples)-1]
	}
	return p
}

// Rate implements Stream.
func (p *PCM) Rate() int { return p.rate }

// Stereo implements Stream.
func (p *PCM) Stereo() bool { return p.stereo }

// ReadSamples implements Stream.
func (p *PCM) ReadSamples(buf []int16) (int, error) {
	if p.pos >= len(p.samples) {
		return 0, io.EOF
	}
	n := len(buf)
	if p.stereo {
		n &^= 1
	}
	n = copy(buf[:n], p.samples[p.pos:])
	p.pos += n
	return n, nil
}

func (p *PCM) frames() int64 {
	return int64(len(p.samples) / channels(p))
}

// Length implements SeekableStream.
func (p *PCM) Length() time.Duration {
	return framesToDuration(p.frames(), p.rate)
}

// Pos returns the current read position.
func (p *PCM) Pos() time.Duration {
	return framesToDuration(int64(p.pos/channels(p)), p.rate)
}

// Seek implements SeekableStream. Seeking to the exact end is allowed.
func (p *PCM) Seek(pos time.Duration) error {
	if p.rate <= 0 {
		return fmt.Errorf("audio: invalid sample rate %d", p.rate)
	}
	rate := int64(p.rate)
	frame := int64(pos/time.Second)*rate + int64(pos%time.Second)*rate/int64(time.Second)
	if pos < 0 || frame > p.frames() {
		return fmt.Errorf("%w: %v of %v", ErrSeekOutOfRange, pos, p.Length())
	}
	p.pos = int(frame) * channels(p)
	return nil
}
