package texture

import "image"

// Option configures a Texture during creation.
//
// Example:
//
//	tex := texture.New(texture.Direct565, dev,
//	    texture.WithLinearFilter(true),
//	    texture.WithDrawRect(image.Rect(0, 0, 640, 400)))
type Option func(*options)

type options struct {
	linear   bool
	drawRect image.Rectangle
}

func defaultOptions() options {
	return options{}
}

// WithLinearFilter selects linear sampling instead of nearest.
func WithLinearFilter(linear bool) Option {
	return func(o *options) {
		o.linear = linear
	}
}

// WithDrawRect sets the initial destination used by DrawTextureRect.
func WithDrawRect(r image.Rectangle) Option {
	return func(o *options) {
		o.drawRect = r
	}
}
