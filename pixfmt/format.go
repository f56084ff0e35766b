// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixfmt

import (
	"encoding/binary"
	"fmt"
)

// Format describes how a pixel is packed into BytesPerPixel bytes.
//
// Each channel occupies Bits bits starting at Shift within the packed value.
// A channel with zero bits is absent. CLUT8 has no channels at all: its single
// byte is an index into an external palette.
type Format struct {
	BytesPerPixel uint8

	RBits, GBits, BBits, ABits     uint8
	RShift, GShift, BShift, AShift uint8
}

// Predefined formats.
var (
	// RGBA8888 is 32-bit RGBA, red in the most significant byte.
	RGBA8888 = Format{BytesPerPixel: 4, RBits: 8, GBits: 8, BBits: 8, ABits: 8, RShift: 24, GShift: 16, BShift: 8, AShift: 0}

	// RGBA4444 is 16-bit RGBA with four bits per channel.
	RGBA4444 = Format{BytesPerPixel: 2, RBits: 4, GBits: 4, BBits: 4, ABits: 4, RShift: 12, GShift: 8, BShift: 4, AShift: 0}

	// RGBA5551 is 16-bit RGB with a single alpha bit.
	RGBA5551 = Format{BytesPerPixel: 2, RBits: 5, GBits: 5, BBits: 5, ABits: 1, RShift: 11, GShift: 6, BShift: 1, AShift: 0}

	// RGB565 is 16-bit opaque RGB.
	RGB565 = Format{BytesPerPixel: 2, RBits: 5, GBits: 6, BBits: 5, ABits: 0, RShift: 11, GShift: 5, BShift: 0, AShift: 0}

	// CLUT8 is an 8-bit palette index.
	CLUT8 = Format{BytesPerPixel: 1}
)

// IsCLUT8 reports whether f is an 8-bit indexed format.
func (f Format) IsCLUT8() bool {
	return f.BytesPerPixel == 1 && f.RBits == 0 && f.GBits == 0 && f.BBits == 0 && f.ABits == 0
}

// IsZero reports whether f is the zero Format (no pixels at all).
func (f Format) IsZero() bool {
	return f == Format{}
}

// HasAlpha reports whether f carries an alpha channel.
func (f Format) HasAlpha() bool {
	return f.ABits > 0
}

// String returns a short name such as "RGB565" or a generic description.
func (f Format) String() string {
	switch f {
	case RGBA8888:
		return "RGBA8888"
	case RGBA4444:
		return "RGBA4444"
	case RGBA5551:
		return "RGBA5551"
	case RGB565:
		return "RGB565"
	case CLUT8:
		return "CLUT8"
	case Format{}:
		return "none"
	}
	return fmt.Sprintf("%dbpp(%d%d%d%d/%d,%d,%d,%d)",
		f.BytesPerPixel, f.RBits, f.GBits, f.BBits, f.ABits,
		f.RShift, f.GShift, f.BShift, f.AShift)
}

// RGB packs an opaque color. Alpha, if present, is set to its maximum.
func (f Format) RGB(r, g, b uint8) uint32 {
	return f.ARGB(0xFF, r, g, b)
}

// ARGB packs 8-bit channels into f by dropping their low bits.
// Channels absent from f are ignored.
func (f Format) ARGB(a, r, g, b uint8) uint32 {
	return pack(a, f.ABits, f.AShift) |
		pack(r, f.RBits, f.RShift) |
		pack(g, f.GBits, f.GShift) |
		pack(b, f.BBits, f.BShift)
}

// Unpack expands a packed value to 8-bit channels. Formats without alpha
// report fully opaque pixels.
func (f Format) Unpack(v uint32) (a, r, g, b uint8) {
	a = 0xFF
	if f.ABits > 0 {
		a = unpack(v, f.ABits, f.AShift)
	}
	r = unpack(v, f.RBits, f.RShift)
	g = unpack(v, f.GBits, f.GShift)
	b = unpack(v, f.BBits, f.BShift)
	return a, r, g, b
}

// Load reads one packed pixel from the start of p. Multi-byte pixels are
// stored little-endian.
func (f Format) Load(p []byte) uint32 {
	switch f.BytesPerPixel {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(p))
	case 4:
		return binary.LittleEndian.Uint32(p)
	}
	return 0
}

// Store writes one packed pixel to the start of p.
func (f Format) Store(p []byte, v uint32) {
	switch f.BytesPerPixel {
	case 1:
		p[0] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(p, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(p, v)
	}
}

func pack(c, bits, shift uint8) uint32 {
	if bits == 0 {
		return 0
	}
	return uint32(c>>(8-bits)) << shift
}

func unpack(v uint32, bits, shift uint8) uint8 {
	if bits == 0 {
		return 0
	}
	limit := uint32(1)<<bits - 1
	c := (v >> shift) & limit
	return uint8(c * 255 / limit)
}
