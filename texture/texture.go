// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/retro"
	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/pixfmt"
	"github.com/gogpu/retro/surface"
)

// Errors returned by Texture operations.
var (
	// ErrReleased is returned when drawing a texture whose GPU side was
	// dropped by Release and not yet restored by Reinit.
	ErrReleased = errors.New("texture: GPU texture released")

	// ErrClosed is returned for operations on a closed texture.
	ErrClosed = errors.New("texture: closed")
)

// Texture is a CPU surface mirrored on a GPU device.
//
// The zero value is not usable; create textures with New or one of the
// kind-specific constructors.
type Texture struct {
	kind Kind
	dev  gpu.Device
	v    variant

	surf    *surface.Surface
	handle  gpu.Handle
	texSize image.Point // power-of-two GPU size

	drawRect image.Rectangle
	filter   gpu.Filter
	dirty    dirtyRegion

	released bool
	closed   bool
}

// New creates an empty texture of the given kind drawing through dev.
// Call AllocBuffer before writing pixels.
func New(kind Kind, dev gpu.Device, opts ...Option) *Texture {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var v variant
	if kind.Paletted() {
		v = newFakePalette(kind.NativeFormat())
	} else {
		v = &direct{format: kind.NativeFormat()}
	}

	t := &Texture{
		kind:     kind,
		dev:      dev,
		v:        v,
		drawRect: o.drawRect,
		filter:   gpu.FilterNearest,
	}
	if o.linear {
		t.filter = gpu.FilterLinear
	}
	t.surf = v.allocate(0, 0, 0)
	return t
}

// New8888 creates a Direct8888 texture.
func New8888(dev gpu.Device, opts ...Option) *Texture { return New(Direct8888, dev, opts...) }

// New4444 creates a Direct4444 texture.
func New4444(dev gpu.Device, opts ...Option) *Texture { return New(Direct4444, dev, opts...) }

// New5551 creates a Direct5551 texture.
func New5551(dev gpu.Device, opts ...Option) *Texture { return New(Direct5551, dev, opts...) }

// New565 creates a Direct565 texture.
func New565(dev gpu.Device, opts ...Option) *Texture { return New(Direct565, dev, opts...) }

// NewFakePalette565 creates a paletted texture expanded to RGB565.
func NewFakePalette565(dev gpu.Device, opts ...Option) *Texture {
	return New(FakePalette565, dev, opts...)
}

// NewFakePalette5551 creates a paletted texture expanded to RGBA5551.
func NewFakePalette5551(dev gpu.Device, opts ...Option) *Texture {
	return New(FakePalette5551, dev, opts...)
}

// AllocBuffer sizes the texture to w×h pixels.
//
// Calling it again with the current size does nothing, except creating
// the GPU texture when an earlier attempt failed. Otherwise the surface is
// reallocated and cleared, the GPU texture is recreated when its
// power-of-two size changes, and the whole texture is marked dirty.
// A zero size is legal and leaves the texture empty without a GPU texture.
func (t *Texture) AllocBuffer(w, h int) error {
	if t.closed {
		return ErrClosed
	}
	w, h = max(w, 0), max(h, 0)
	if w == t.surf.W && h == t.surf.H {
		if t.handle.Valid() || t.released || t.surf.Empty() {
			return nil
		}
		t.dirty.setAll()
		return t.createHandle()
	}

	pot := gpu.PotSize(w, h)
	size := image.Pt(int(pot.Width), int(pot.Height))

	t.surf = t.v.allocate(w, h, size.X)
	t.dirty.setAll()

	if size != t.texSize || !t.handle.Valid() {
		t.destroyHandle()
		t.texSize = size
		if !t.released && !t.surf.Empty() {
			if err := t.createHandle(); err != nil {
				return err
			}
		}
	}

	retro.Logger().Debug("texture: alloc",
		"kind", t.kind, "w", w, "h", h,
		"texW", t.texSize.X, "texH", t.texSize.Y, "pitch", t.surf.Pitch)
	return nil
}

// UpdateBuffer copies a w×h block of pixels to (x, y). Source rows are
// pitch bytes apart. Paletted textures take one index byte per pixel.
// The block is clipped to the surface and added to the dirty rectangle.
func (t *Texture) UpdateBuffer(x, y, w, h int, data []byte, pitch int) {
	if t.surf.Empty() || w <= 0 || h <= 0 {
		return
	}
	r := t.v.updateRegion(t.surf, image.Rect(x, y, x+w, y+h), data, pitch)
	t.dirty.add(r)
}

// FillBuffer sets every pixel to c. Direct textures take a native packed
// value; paletted textures use the low byte as the index.
func (t *Texture) FillBuffer(c uint32) {
	if t.surf.Empty() {
		return
	}
	t.v.fill(t.surf, c)
	t.dirty.setAll()
}

// DrawTexture draws the whole surface into the rectangle (x, y, w, h),
// uploading pending changes first.
func (t *Texture) DrawTexture(x, y, w, h int) error {
	return t.DrawTextureClip(x, y, w, h, t.surf.Bounds())
}

// DrawTextureClip is like DrawTexture but only samples the clip rectangle
// of the surface.
func (t *Texture) DrawTextureClip(x, y, w, h int, clip image.Rectangle) error {
	switch {
	case t.closed:
		return ErrClosed
	case t.released:
		return ErrReleased
	case t.surf.Empty():
		return nil
	}

	if err := t.flush(); err != nil {
		return err
	}
	op := gpu.DrawOp{
		Dst:     image.Rect(x, y, x+w, y+h),
		Src:     clip,
		TexSize: t.texSize,
		Filter:  t.filter,
	}
	if err := t.dev.Draw(t.handle, op); err != nil {
		return fmt.Errorf("texture: draw: %w", err)
	}
	return nil
}

// DrawTextureRect draws into the rectangle set with SetDrawRect.
func (t *Texture) DrawTextureRect() error {
	r := t.drawRect
	return t.DrawTexture(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// DrawTextureOrigin draws unscaled at (0, 0).
func (t *Texture) DrawTextureOrigin() error {
	return t.DrawTexture(0, 0, t.surf.W, t.surf.H)
}

// flush uploads the dirty region and clears it on success.
func (t *Texture) flush() error {
	if !t.dirty.dirty() {
		return nil
	}
	r := t.dirty.region(t.surf.Bounds())
	if r.Empty() {
		t.dirty.clear()
		return nil
	}
	data, pitch := t.v.upload(t.surf, r)
	if err := t.dev.UploadRegion(t.handle, r, data, pitch); err != nil {
		return fmt.Errorf("texture: upload %v: %w", r, err)
	}
	retro.Logger().Debug("texture: flush", "kind", t.kind, "rect", r, "full", t.dirty.all)
	t.dirty.clear()
	return nil
}

// SetDrawRect sets the destination used by DrawTextureRect. It is not
// affected by AllocBuffer.
func (t *Texture) SetDrawRect(r image.Rectangle) {
	t.drawRect = r
}

// SetDrawSize sets the draw rectangle to (0, 0, w, h).
func (t *Texture) SetDrawSize(w, h int) {
	t.drawRect = image.Rect(0, 0, w, h)
}

// DrawRect returns the destination used by DrawTextureRect.
func (t *Texture) DrawRect() image.Rectangle {
	return t.drawRect
}

// Release destroys the GPU texture and keeps the surface. Draws fail with
// ErrReleased until Reinit.
func (t *Texture) Release() {
	if t.closed || t.released {
		return
	}
	t.destroyHandle()
	t.released = true
}

// Reinit recreates the GPU texture after Release and marks the whole
// texture dirty so the next draw uploads the surface once.
func (t *Texture) Reinit() error {
	if t.closed {
		return ErrClosed
	}
	t.released = false
	t.dirty.setAll()
	if t.handle.Valid() || t.surf.Empty() {
		return nil
	}
	return t.createHandle()
}

// SetLinearFilter switches between linear and nearest sampling for
// subsequent draws.
func (t *Texture) SetLinearFilter(linear bool) {
	if linear {
		t.filter = gpu.FilterLinear
	} else {
		t.filter = gpu.FilterNearest
	}
}

// Filter returns the sampling filter used for draws.
func (t *Texture) Filter() gpu.Filter { return t.filter }

// Close releases the GPU texture and frees the surfaces. Close is idempotent.
func (t *Texture) Close() error {
	if t.closed {
		return nil
	}
	t.destroyHandle()
	t.surf = surface.New(0, 0, 0, t.kind.SurfaceFormat())
	if p, ok := t.v.(*fakePalette); ok {
		p.expanded = surface.New(0, 0, 0, p.format)
	}
	t.dirty.clear()
	t.closed = true
	return nil
}

func (t *Texture) createHandle() error {
	desc := gpu.TextureDesc{
		Size:   gpu.PotSize(t.surf.W, t.surf.H),
		Format: t.kind.NativeFormat(),
		Filter: t.filter,
	}
	h, err := t.dev.CreateTexture(desc)
	if err != nil {
		return fmt.Errorf("texture: create %dx%d: %w", desc.Width(), desc.Height(), err)
	}
	t.handle = h
	retro.Logger().Debug("texture: create", "handle", h, "w", desc.Width(), "h", desc.Height())
	return nil
}

func (t *Texture) destroyHandle() {
	if !t.handle.Valid() {
		return
	}
	t.dev.DestroyTexture(t.handle)
	retro.Logger().Debug("texture: destroy", "handle", t.handle)
	t.handle = 0
}

// Kind returns the texture kind.
func (t *Texture) Kind() Kind { return t.kind }

// Width returns the logical width in pixels.
func (t *Texture) Width() int { return t.surf.W }

// Height returns the logical height in pixels.
func (t *Texture) Height() int { return t.surf.H }

// TexWidth returns the power-of-two GPU texture width.
func (t *Texture) TexWidth() int { return t.texSize.X }

// TexHeight returns the power-of-two GPU texture height.
func (t *Texture) TexHeight() int { return t.texSize.Y }

// Pitch returns the byte distance between surface rows.
func (t *Texture) Pitch() int { return t.surf.Pitch }

// IsEmpty reports whether the surface has zero width or height.
func (t *Texture) IsEmpty() bool { return t.surf.Empty() }

// Dirty reports whether changes are waiting for upload.
func (t *Texture) Dirty() bool { return t.dirty.dirty() }

// AllDirty reports whether the next upload covers the whole surface.
func (t *Texture) AllDirty() bool { return t.dirty.all }

// DirtyRect returns the accumulated dirty rectangle. It is empty when
// nothing changed or when the whole texture is dirty.
func (t *Texture) DirtyRect() image.Rectangle { return t.dirty.rect }

// Handle returns the GPU texture handle, or 0 when there is none.
func (t *Texture) Handle() gpu.Handle { return t.handle }

// Released reports whether the GPU texture was dropped by Release.
func (t *Texture) Released() bool { return t.released }

// PixelFormat returns the format of the caller-visible surface.
// Paletted textures report CLUT8.
func (t *Texture) PixelFormat() pixfmt.Format { return t.kind.SurfaceFormat() }

// Surface returns the surface for reading. Use EditSurface to modify it.
func (t *Texture) Surface() *surface.Surface { return t.surf }

// EditSurface marks the whole texture dirty and returns the live surface.
func (t *Texture) EditSurface() *surface.Surface {
	t.dirty.setAll()
	return t.surf
}

// Image returns the visible pixels as an image. Direct textures return a
// converted copy; paletted textures return a view of the index surface
// colored through the current palette.
func (t *Texture) Image() image.Image {
	if p, ok := t.v.(*fakePalette); ok {
		return t.surf.Paletted(p.colors())
	}
	return t.surf.RGBA()
}
