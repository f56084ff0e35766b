// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixfmt

// ToRGBA converts n packed pixels from src into straight-alpha RGBA8 bytes
// in dst. dst must hold at least 4*n bytes and src n*BytesPerPixel bytes.
//
// CLUT8 is not convertible without a palette; indices are written as grey.
func (f Format) ToRGBA(dst, src []byte, n int) {
	bpp := int(f.BytesPerPixel)
	if f == RGBA8888 {
		for i := 0; i < n; i++ {
			v := f.Load(src[i*4:])
			dst[i*4+0] = uint8(v >> 24)
			dst[i*4+1] = uint8(v >> 16)
			dst[i*4+2] = uint8(v >> 8)
			dst[i*4+3] = uint8(v)
		}
		return
	}
	if f.IsCLUT8() {
		for i := 0; i < n; i++ {
			y := src[i]
			dst[i*4+0] = y
			dst[i*4+1] = y
			dst[i*4+2] = y
			dst[i*4+3] = 0xFF
		}
		return
	}
	for i := 0; i < n; i++ {
		a, r, g, b := f.Unpack(f.Load(src[i*bpp:]))
		dst[i*4+0] = r
		dst[i*4+1] = g
		dst[i*4+2] = b
		dst[i*4+3] = a
	}
}

// ToRGBAPremul is like ToRGBA but multiplies color channels by alpha,
// the layout expected by premultiplied consumers such as ebiten.
func (f Format) ToRGBAPremul(dst, src []byte, n int) {
	f.ToRGBA(dst, src, n)
	if !f.HasAlpha() {
		return
	}
	for i := 0; i < n; i++ {
		a := uint32(dst[i*4+3])
		if a == 0xFF {
			continue
		}
		dst[i*4+0] = uint8(uint32(dst[i*4+0]) * a / 0xFF)
		dst[i*4+1] = uint8(uint32(dst[i*4+1]) * a / 0xFF)
		dst[i*4+2] = uint8(uint32(dst[i*4+2]) * a / 0xFF)
	}
}

// ConvertRect converts a w×h block of packed pixels into a densely packed
// RGBA8 buffer. srcPitch is the byte distance between source rows.
func (f Format) ConvertRect(src []byte, srcPitch, w, h int, premul bool) []byte {
	dst := make([]byte, w*h*4)
	bpp := int(f.BytesPerPixel)
	for y := 0; y < h; y++ {
		row := src[y*srcPitch : y*srcPitch+w*bpp]
		if premul {
			f.ToRGBAPremul(dst[y*w*4:], row, w)
		} else {
			f.ToRGBA(dst[y*w*4:], row, w)
		}
	}
	return dst
}
