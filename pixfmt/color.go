// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixfmt

import "image/color"

// Color is a packed pixel value together with its format.
// It implements color.Color.
type Color struct {
	F Format
	V uint32
}

// RGBA implements color.Color. The result is alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a8, r8, g8, b8 := c.F.Unpack(c.V)
	return color.NRGBA{R: r8, G: g8, B: b8, A: a8}.RGBA()
}

// Model returns a color.Model converting arbitrary colors to f.
// CLUT8 has no color channels and converts to color.Gray.
func (f Format) Model() color.Model {
	if f.IsCLUT8() {
		return color.GrayModel
	}
	return color.ModelFunc(func(c color.Color) color.Color {
		if pc, ok := c.(Color); ok && pc.F == f {
			return c
		}
		return Color{F: f, V: f.FromColor(c)}
	})
}

// FromColor packs an arbitrary color.Color into f.
// The color is un-premultiplied first so translucent colors keep their hue.
func (f Format) FromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return f.ARGB(n.A, n.R, n.G, n.B)
}
