package otomixer

import "time"

// DefaultSampleRate is the output rate used without WithSampleRate.
const DefaultSampleRate = 44100

// Option configures a Mixer.
type Option func(*options)

type options struct {
	sampleRate   int
	bufferSize   time.Duration
	playerBuffer int
}

func defaultOptions() options {
	return options{
		sampleRate: DefaultSampleRate,
		bufferSize: 50 * time.Millisecond,
	}
}

// WithSampleRate sets the output sample rate. The audio device is opened
// once per process, so only the first Mixer decides the rate.
func WithSampleRate(rate int) Option {
	return func(o *options) {
		if rate > 0 {
			o.sampleRate = rate
		}
	}
}

// WithBufferSize sets the device buffer duration.
func WithBufferSize(d time.Duration) Option {
	return func(o *options) {
		o.bufferSize = d
	}
}

// WithPlayerBuffer sets the per-stream player buffer in bytes. Zero keeps
// the oto default.
func WithPlayerBuffer(bytes int) Option {
	return func(o *options) {
		o.playerBuffer = bytes
	}
}
