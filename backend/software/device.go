// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements gpu.Device on the CPU.
//
// Textures are premultiplied image.RGBA buffers at their power-of-two
// size. Draws scale the source rectangle into a target image with
// golang.org/x/image/draw. The device records Stats so tests can assert
// how many uploads a texture performed.
package software

import (
	"fmt"
	"image"

	"github.com/gogpu/retro/backend"
	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/pixfmt"
	xdraw "golang.org/x/image/draw"
)

func init() {
	backend.Register(backend.NameSoftware, func() gpu.Device { return New() })
}

// Upload records one UploadRegion call.
type Upload struct {
	Handle gpu.Handle
	Rect   image.Rectangle
}

// Stats counts device calls since creation or the last ResetStats.
type Stats struct {
	Creates  int
	Destroys int
	Draws    int
	Uploads  []Upload
}

type texture struct {
	img    *image.RGBA
	format pixfmt.Format
}

// Device is a CPU gpu.Device. It is not safe for concurrent use.
type Device struct {
	textures map[gpu.Handle]*texture
	next     gpu.Handle
	target   *image.RGBA
	stats    Stats
}

// Option configures a Device.
type Option func(*Device)

// WithTarget sets the image draws render into.
func WithTarget(dst *image.RGBA) Option {
	return func(d *Device) {
		d.target = dst
	}
}

// New creates a software device.
func New(opts ...Option) *Device {
	d := &Device{textures: make(map[gpu.Handle]*texture)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements gpu.Device.
func (d *Device) Name() string { return backend.NameSoftware }

// SetTarget sets the image draws render into.
func (d *Device) SetTarget(dst *image.RGBA) { d.target = dst }

// Target returns the current render target.
func (d *Device) Target() *image.RGBA { return d.target }

// CreateTexture implements gpu.Device.
func (d *Device) CreateTexture(desc gpu.TextureDesc) (gpu.Handle, error) {
	w, h := desc.Width(), desc.Height()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("software: invalid texture size %dx%d", w, h)
	}
	d.next++
	d.textures[d.next] = &texture{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		format: desc.Format,
	}
	d.stats.Creates++
	return d.next, nil
}

// UploadRegion implements gpu.Device.
func (d *Device) UploadRegion(h gpu.Handle, r image.Rectangle, data []byte, pitch int) error {
	tex, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	if !r.In(tex.img.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", gpu.ErrRegionOutOfBounds, r, tex.img.Bounds())
	}
	bpp := int(tex.format.BytesPerPixel)
	w := r.Dx()
	for y := 0; y < r.Dy(); y++ {
		src := data[y*pitch : y*pitch+w*bpp]
		dst := tex.img.Pix[tex.img.PixOffset(r.Min.X, r.Min.Y+y):]
		tex.format.ToRGBAPremul(dst, src, w)
	}
	d.stats.Uploads = append(d.stats.Uploads, Upload{Handle: h, Rect: r})
	return nil
}

// Draw implements gpu.Device. The source is composited over the target.
func (d *Device) Draw(h gpu.Handle, op gpu.DrawOp) error {
	if d.target == nil {
		return gpu.ErrNoTarget
	}
	tex, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	src := op.Src.Intersect(tex.img.Bounds())
	d.stats.Draws++
	if src.Empty() || op.Dst.Empty() {
		return nil
	}

	var scaler xdraw.Scaler = xdraw.NearestNeighbor
	if op.Filter == gpu.FilterLinear {
		scaler = xdraw.ApproxBiLinear
	}
	scaler.Scale(d.target, op.Dst, tex.img, src, xdraw.Over, nil)
	return nil
}

// DestroyTexture implements gpu.Device.
func (d *Device) DestroyTexture(h gpu.Handle) {
	if _, ok := d.textures[h]; !ok {
		return
	}
	delete(d.textures, h)
	d.stats.Destroys++
}

// Texels returns the texture image for h, or nil. The image is live.
func (d *Device) Texels(h gpu.Handle) *image.RGBA {
	if tex, ok := d.textures[h]; ok {
		return tex.img
	}
	return nil
}

// Live returns the number of textures not yet destroyed.
func (d *Device) Live() int { return len(d.textures) }

// Stats returns a copy of the call counters.
func (d *Device) Stats() Stats {
	s := d.stats
	s.Uploads = append([]Upload(nil), d.stats.Uploads...)
	return s
}

// ResetStats zeroes the call counters.
func (d *Device) ResetStats() { d.stats = Stats{} }
