// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/retro/pixfmt"
)

// Compile-time interface checks.
var (
	_ image.Image = (*Surface)(nil)
	_ draw.Image  = (*Surface)(nil)
)

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return s.Format.Model()
}

// At implements image.Image. CLUT8 surfaces report the index as grey;
// use Paletted for a colored view.
func (s *Surface) At(x, y int) color.Color {
	v := s.Pixel(x, y)
	if s.Format.IsCLUT8() {
		return color.Gray{Y: uint8(v)}
	}
	return pixfmt.Color{F: s.Format, V: v}
}

// Set implements draw.Image. The color is converted to the surface format;
// CLUT8 surfaces store the grey level as the index.
func (s *Surface) Set(x, y int, c color.Color) {
	if s.Format.IsCLUT8() {
		s.SetPixel(x, y, uint32(color.GrayModel.Convert(c).(color.Gray).Y))
		return
	}
	s.SetPixel(x, y, s.Format.FromColor(c))
}

// Paletted returns an *image.Paletted sharing the memory of a CLUT8
// surface. It returns nil for any other format.
func (s *Surface) Paletted(pal color.Palette) *image.Paletted {
	if !s.Format.IsCLUT8() {
		return nil
	}
	return &image.Paletted{
		Pix:     s.Pix,
		Stride:  s.Pitch,
		Rect:    s.Bounds(),
		Palette: pal,
	}
}

// RGBA converts the visible pixels into a new straight-alpha image.
func (s *Surface) RGBA() *image.NRGBA {
	img := image.NewNRGBA(s.Bounds())
	if s.Empty() {
		return img
	}
	for y := 0; y < s.H; y++ {
		s.Format.ToRGBA(img.Pix[y*img.Stride:], s.Row(y), s.W)
	}
	return img
}
