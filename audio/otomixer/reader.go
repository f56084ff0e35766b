package otomixer

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/gogpu/retro/audio"
)

// bytesPerFrame is one interleaved stereo frame of signed 16-bit samples.
const bytesPerFrame = 4

// channelReader adapts an audio.Stream to the io.Reader oto pulls from.
// Mono streams are duplicated to both sides and the balance is applied
// as a per-side gain.
type channelReader struct {
	mu      sync.Mutex
	stream  audio.Stream
	balance int
	frames  int64 // frames handed to the player
	done    bool
	err     error
	buf     []int16
}

func newChannelReader(s audio.Stream, balance int) *channelReader {
	return &channelReader{stream: s, balance: audio.ClampBalance(balance)}
}

// gains returns the left and right gain, 0..127, for balance b.
func gains(b int) (left, right int32) {
	left, right = audio.MaxBalance, audio.MaxBalance
	if b > 0 {
		left -= int32(b)
	} else if b < 0 {
		right += int32(b)
	}
	return left, right
}

func scale(s int16, g int32) uint16 {
	return uint16(int16(int32(s) * g / audio.MaxBalance))
}

// Read implements io.Reader.
func (r *channelReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return 0, io.EOF
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	stereo := r.stream.Stereo()
	need := frames
	if stereo {
		need *= 2
	}
	if cap(r.buf) < need {
		r.buf = make([]int16, need)
	}
	buf := r.buf[:need]

	n, err := r.stream.ReadSamples(buf)
	got := n
	if stereo {
		got /= 2
	}
	lg, rg := gains(r.balance)
	for i := 0; i < got; i++ {
		var ls, rs int16
		if stereo {
			ls, rs = buf[2*i], buf[2*i+1]
		} else {
			ls, rs = buf[i], buf[i]
		}
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame:], scale(ls, lg))
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame+2:], scale(rs, rg))
	}
	r.frames += int64(got)

	switch {
	case err != nil && !errors.Is(err, io.EOF):
		r.done = true
		r.err = err
		return got * bytesPerFrame, err
	case err != nil:
		r.done = true
		return got * bytesPerFrame, io.EOF
	}
	return got * bytesPerFrame, nil
}

func (r *channelReader) setBalance(b int) {
	r.mu.Lock()
	r.balance = audio.ClampBalance(b)
	r.mu.Unlock()
}

// state returns the frames delivered so far and whether the stream ended.
func (r *channelReader) state() (frames int64, done bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames, r.done
}

// failure returns the stream error that ended playback, if any.
func (r *channelReader) failure() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
