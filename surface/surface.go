// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface provides the CPU-side pixel buffer owned by a texture.
//
// A Surface has a logical size (W×H) and a Pitch that may be larger than
// W*BytesPerPixel: texture surfaces pad each row up to the power-of-two
// width of their GPU texture so the whole buffer can be uploaded in one call.
package surface

import (
	"image"

	"github.com/gogpu/retro/pixfmt"
)

// Surface is a rectangular pixel buffer with explicit stride.
type Surface struct {
	W, H   int
	Pitch  int
	Format pixfmt.Format
	Pix    []byte
}

// New allocates a zeroed surface. A pitch smaller than w*bpp is raised to it.
func New(w, h, pitch int, f pixfmt.Format) *Surface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if minPitch := w * int(f.BytesPerPixel); pitch < minPitch {
		pitch = minPitch
	}
	return &Surface{
		W:      w,
		H:      h,
		Pitch:  pitch,
		Format: f,
		Pix:    make([]byte, pitch*h),
	}
}

// Empty reports whether the surface has no pixels.
func (s *Surface) Empty() bool {
	return s == nil || s.W == 0 || s.H == 0
}

// Bounds returns the logical rectangle (0, 0, W, H).
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.W, s.H)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (s *Surface) PixOffset(x, y int) int {
	return y*s.Pitch + x*int(s.Format.BytesPerPixel)
}

// Row returns the visible bytes of row y (W pixels, not the padding).
func (s *Surface) Row(y int) []byte {
	off := y * s.Pitch
	return s.Pix[off : off+s.W*int(s.Format.BytesPerPixel)]
}

// Pixel returns the packed value at (x, y), or 0 outside the surface.
func (s *Surface) Pixel(x, y int) uint32 {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return 0
	}
	return s.Format.Load(s.Pix[s.PixOffset(x, y):])
}

// SetPixel stores a packed value at (x, y). Out of range writes are ignored.
func (s *Surface) SetPixel(x, y int, v uint32) {
	if !(image.Point{x, y}.In(s.Bounds())) {
		return
	}
	s.Format.Store(s.Pix[s.PixOffset(x, y):], v)
}

// Fill writes v into every visible pixel. Row padding is left untouched.
func (s *Surface) Fill(v uint32) {
	s.FillRect(s.Bounds(), v)
}

// FillRect writes v into every pixel of r clipped to the surface.
func (s *Surface) FillRect(r image.Rectangle, v uint32) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	bpp := int(s.Format.BytesPerPixel)

	// Build one row and replicate it.
	first := s.Pix[s.PixOffset(r.Min.X, r.Min.Y):]
	rowLen := r.Dx() * bpp
	if bpp == 1 {
		for i := 0; i < rowLen; i++ {
			first[i] = uint8(v)
		}
	} else {
		for i := 0; i < rowLen; i += bpp {
			s.Format.Store(first[i:], v)
		}
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		off := s.PixOffset(r.Min.X, y)
		copy(s.Pix[off:off+rowLen], first[:rowLen])
	}
}

// CopyRect copies pixel rows from src into r. srcPitch is the byte distance
// between source rows; the first byte of src corresponds to r.Min. The
// source must use the surface's pixel format. r is clipped to the surface,
// shifting the source accordingly. It returns the rectangle actually written.
func (s *Surface) CopyRect(r image.Rectangle, src []byte, srcPitch int) image.Rectangle {
	clipped := r.Intersect(s.Bounds())
	if clipped.Empty() {
		return image.Rectangle{}
	}
	bpp := int(s.Format.BytesPerPixel)
	rowLen := clipped.Dx() * bpp
	srcOff := (clipped.Min.Y-r.Min.Y)*srcPitch + (clipped.Min.X-r.Min.X)*bpp

	// Both buffers contiguous over the block: one copy.
	if srcPitch == rowLen && s.Pitch == rowLen {
		dst := s.PixOffset(clipped.Min.X, clipped.Min.Y)
		copy(s.Pix[dst:dst+rowLen*clipped.Dy()], src[srcOff:])
		return clipped
	}
	for y := clipped.Min.Y; y < clipped.Max.Y; y++ {
		dst := s.PixOffset(clipped.Min.X, y)
		copy(s.Pix[dst:dst+rowLen], src[srcOff:srcOff+rowLen])
		srcOff += srcPitch
	}
	return clipped
}

// SubPix returns the bytes covering r (clipped) starting at r.Min. Rows are
// Pitch bytes apart. The slice aliases the surface memory.
func (s *Surface) SubPix(r image.Rectangle) []byte {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return nil
	}
	start := s.PixOffset(r.Min.X, r.Min.Y)
	end := s.PixOffset(r.Max.X, r.Max.Y-1)
	return s.Pix[start:end]
}

// Clear zeroes the whole buffer including padding.
func (s *Surface) Clear() {
	clear(s.Pix)
}
