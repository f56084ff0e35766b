package audio

// ClipOption configures a SoundClip during creation.
type ClipOption func(*clipOptions)

type clipOptions struct {
	volume    int
	repeat    bool
	soundType SoundType
}

func defaultClipOptions() clipOptions {
	return clipOptions{volume: MaxVolume, soundType: PlainSound}
}

// WithVolume sets the initial volume, 0..255.
func WithVolume(v int) ClipOption {
	return func(o *clipOptions) {
		o.volume = ClampVolume(v)
	}
}

// WithRepeat loops the clip forever. Only seekable streams can repeat.
func WithRepeat(repeat bool) ClipOption {
	return func(o *clipOptions) {
		o.repeat = repeat
	}
}

// WithType sets the sound type. Clips created without a type wait in Play
// until SetType is called.
func WithType(t SoundType) ClipOption {
	return func(o *clipOptions) {
		o.soundType = t
	}
}
