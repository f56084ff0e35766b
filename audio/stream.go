package audio

import (
	"errors"
	"io"
	"time"
)

// ErrSeekOutOfRange is returned by Seek for positions past the end.
var ErrSeekOutOfRange = errors.New("audio: seek position out of range")

// Stream is a source of signed 16-bit PCM samples. Stereo streams
// interleave left and right samples.
type Stream interface {
	// ReadSamples fills buf and returns the number of samples written.
	// It returns io.EOF once the stream is exhausted.
	ReadSamples(buf []int16) (int, error)

	// Rate returns the sample rate in frames per second.
	Rate() int

	// Stereo reports whether the stream has two channels.
	Stereo() bool
}

// SeekableStream is a Stream with a known length that can be repositioned.
type SeekableStream interface {
	Stream
	Seek(pos time.Duration) error
	Length() time.Duration
}

// channels returns the number of interleaved channels of s.
func channels(s Stream) int {
	if s.Stereo() {
		return 2
	}
	return 1
}

// framesToDuration converts a frame count at rate to a duration.
func framesToDuration(frames int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

// Looping replays a seekable stream a fixed number of times, or forever.
// It is not seekable itself.
type Looping struct {
	s      SeekableStream
	loops  int
	played int
}

// NewLooping wraps s so that it plays loops times in total. A loops value
// of 0 repeats forever.
func NewLooping(s SeekableStream, loops int) *Looping {
	if loops < 0 {
		loops = 0
	}
	return &Looping{s: s, loops: loops}
}

// Rate implements Stream.
func (l *Looping) Rate() int { return l.s.Rate() }

// Stereo implements Stream.
func (l *Looping) Stereo() bool { return l.s.Stereo() }

// Completed returns how many times the inner stream has reached its end.
func (l *Looping) Completed() int { return l.played }

// ReadSamples implements Stream, rewinding the inner stream at its end.
func (l *Looping) ReadSamples(buf []int16) (int, error) {
	total := 0
	rewound := false
	for total < len(buf) {
		n, err := l.s.ReadSamples(buf[total:])
		total += n
		if n > 0 {
			rewound = false
		}
		if err == nil {
			if n == 0 {
				return total, nil
			}
			continue
		}
		if !errors.Is(err, io.EOF) {
			return total, err
		}
		// An empty stream would spin forever.
		if rewound {
			return total, io.EOF
		}
		l.played++
		if l.loops != 0 && l.played >= l.loops {
			return total, io.EOF
		}
		if err := l.s.Seek(0); err != nil {
			return total, err
		}
		rewound = true
	}
	return total, nil
}

// Close closes the inner stream when it implements io.Closer.
func (l *Looping) Close() error {
	if c, ok := l.s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
