// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpu implements gpu.Device over the gpucontext texture
// interfaces, for drawing inside a gogpu application.
//
// The device keeps a CPU RGBA copy of every texture. The real GPU texture
// is created lazily on the first draw through the drawer's TextureCreator,
// since textures can only be created while a frame is being rendered.
// Later uploads are pushed before the next draw with UpdateRegion when the
// texture supports it, or UpdateData otherwise.
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    dev.SetDrawer(dc.AsTextureDrawer())
//	    tex.DrawTextureRect()
//	})
package gogpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/retro"
	"github.com/gogpu/retro/backend"
	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/pixfmt"
)

// ErrNoTextureCreator is returned when the drawer cannot create textures.
var ErrNoTextureCreator = errors.New("gogpu: drawer has no TextureCreator")

func init() {
	backend.Register(backend.NameGoGPU, func() gpu.Device { return New(nil) })
}

// ScaledDrawer is implemented by drawers that can draw a sub-rectangle of
// a texture scaled into a destination rectangle. Without it the device
// draws the texture unscaled so that src lands at dst.Min.
type ScaledDrawer interface {
	DrawTextureScaled(tex gpucontext.Texture, src, dst image.Rectangle, linear bool) error
}

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

type texture struct {
	w, h    int
	format  pixfmt.Format
	shadow  []byte // straight RGBA, w*h*4
	tex     gpucontext.Texture
	pending image.Rectangle // shadow area not yet on the GPU
}

// Device is a gpu.Device over gpucontext. It is not safe for concurrent use.
type Device struct {
	drawer   gpucontext.TextureDrawer
	textures map[gpu.Handle]*texture
	next     gpu.Handle

	// retired holds destroyed textures that may still be referenced by
	// in-flight command buffers. They are destroyed after the next
	// texture creation, which waits for the GPU.
	retired []gpucontext.Texture
}

// New creates a device drawing through dc. dc may be nil and set later
// with SetDrawer.
func New(dc gpucontext.TextureDrawer) *Device {
	return &Device{
		drawer:   dc,
		textures: make(map[gpu.Handle]*texture),
	}
}

// Name implements gpu.Device.
func (d *Device) Name() string { return backend.NameGoGPU }

// SetDrawer sets the drawer for the current frame.
func (d *Device) SetDrawer(dc gpucontext.TextureDrawer) { d.drawer = dc }

// CreateTexture implements gpu.Device. No GPU work happens until the
// texture is first drawn.
func (d *Device) CreateTexture(desc gpu.TextureDesc) (gpu.Handle, error) {
	w, h := desc.Width(), desc.Height()
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("gogpu: invalid texture size %dx%d", w, h)
	}
	d.next++
	d.textures[d.next] = &texture{
		w:      w,
		h:      h,
		format: desc.Format,
		shadow: make([]byte, w*h*4),
	}
	return d.next, nil
}

// UploadRegion implements gpu.Device.
func (d *Device) UploadRegion(h gpu.Handle, r image.Rectangle, data []byte, pitch int) error {
	t, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	if !r.In(image.Rect(0, 0, t.w, t.h)) {
		return fmt.Errorf("%w: %v", gpu.ErrRegionOutOfBounds, r)
	}
	bpp := int(t.format.BytesPerPixel)
	for y := 0; y < r.Dy(); y++ {
		src := data[y*pitch : y*pitch+r.Dx()*bpp]
		off := ((r.Min.Y+y)*t.w + r.Min.X) * 4
		t.format.ToRGBA(t.shadow[off:], src, r.Dx())
	}
	if t.pending.Empty() {
		t.pending = r
	} else {
		t.pending = t.pending.Union(r)
	}
	return nil
}

// Draw implements gpu.Device.
func (d *Device) Draw(h gpu.Handle, op gpu.DrawOp) error {
	if d.drawer == nil {
		return gpu.ErrNoTarget
	}
	t, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", gpu.ErrUnknownHandle, h)
	}
	if err := d.sync(t); err != nil {
		return err
	}

	if sd, ok := d.drawer.(ScaledDrawer); ok {
		return sd.DrawTextureScaled(t.tex, op.Src, op.Dst, op.Filter == gpu.FilterLinear)
	}
	x := float32(op.Dst.Min.X - op.Src.Min.X)
	y := float32(op.Dst.Min.Y - op.Src.Min.Y)
	return d.drawer.DrawTexture(t.tex, x, y)
}

// sync makes sure t.tex exists and holds the shadow contents.
func (d *Device) sync(t *texture) error {
	if t.tex == nil {
		creator := d.drawer.TextureCreator()
		if creator == nil {
			return ErrNoTextureCreator
		}
		tex, err := creator.NewTextureFromRGBA(t.w, t.h, t.shadow)
		if err != nil {
			return fmt.Errorf("gogpu: NewTextureFromRGBA failed: %w", err)
		}
		t.tex = tex
		t.pending = image.Rectangle{}
		d.destroyRetired()
		return nil
	}
	if t.pending.Empty() {
		return nil
	}

	r := t.pending
	if ru, ok := t.tex.(gpucontext.TextureRegionUpdater); ok {
		if err := ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), t.region(r)); err != nil {
			return fmt.Errorf("gogpu: region update failed: %w", err)
		}
	} else if u, ok := t.tex.(gpucontext.TextureUpdater); ok {
		if err := u.UpdateData(t.shadow); err != nil {
			return fmt.Errorf("gogpu: texture update failed: %w", err)
		}
	} else {
		retro.Logger().Warn("gogpu: texture cannot be updated", "type", fmt.Sprintf("%T", t.tex))
	}
	t.pending = image.Rectangle{}
	return nil
}

// region copies r out of the shadow into dense rows.
func (t *texture) region(r image.Rectangle) []byte {
	out := make([]byte, r.Dx()*r.Dy()*4)
	row := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		off := ((r.Min.Y+y)*t.w + r.Min.X) * 4
		copy(out[y*row:(y+1)*row], t.shadow[off:off+row])
	}
	return out
}

// DestroyTexture implements gpu.Device. The GPU texture is retired and
// destroyed once the GPU is known to be idle.
func (d *Device) DestroyTexture(h gpu.Handle) {
	t, ok := d.textures[h]
	if !ok {
		return
	}
	if t.tex != nil {
		d.retired = append(d.retired, t.tex)
	}
	delete(d.textures, h)
}

func (d *Device) destroyRetired() {
	for _, tex := range d.retired {
		if destroyer, ok := tex.(textureDestroyer); ok {
			destroyer.Destroy()
		}
	}
	d.retired = d.retired[:0]
}

// Close destroys every GPU texture. The device must not be used afterwards.
func (d *Device) Close() error {
	for h, t := range d.textures {
		if t.tex != nil {
			d.retired = append(d.retired, t.tex)
		}
		delete(d.textures, h)
	}
	d.destroyRetired()
	d.drawer = nil
	return nil
}
