// Package palette builds and animates 256-color palettes for paletted
// textures.
//
// Functions never modify their input; they return new palettes that can
// be loaded with texture.SetPaletteColors.
package palette

import (
	"image/color"

	clr "github.com/lucasb-eyer/go-colorful"
)

// rgb24 is a packed 0xRRGGBB opaque color.
type rgb24 uint32

func (c rgb24) RGBA() (r, g, b, a uint32) {
	rb, gb, bb := uint32(c>>16)&0xFF, uint32(c>>8)&0xFF, uint32(c)&0xFF
	return rb<<8 | rb, gb<<8 | gb, bb<<8 | bb, 0xFFFF
}

// EGA is the 16-color IBM EGA palette.
var EGA = color.Palette{
	rgb24(0x000000),
	rgb24(0x0000AA),
	rgb24(0x00AA00),
	rgb24(0x00AAAA),
	rgb24(0xAA0000),
	rgb24(0xAA00AA),
	rgb24(0xAA5500),
	rgb24(0xAAAAAA),

	rgb24(0x555555),
	rgb24(0x5555FF),
	rgb24(0x55FF55),
	rgb24(0x55FFFF),
	rgb24(0xFF5555),
	rgb24(0xFF55FF),
	rgb24(0xFFFF55),
	rgb24(0xFFFFFF),
}

// Gray256 returns a 256-entry linear grey ramp.
func Gray256() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}

// FromRGB builds a palette from packed RGB triplets as stored by most
// game resource formats. A trailing partial triplet is ignored.
func FromRGB(rgb []byte) color.Palette {
	p := make(color.Palette, 0, len(rgb)/3)
	for i := 0; i+2 < len(rgb); i += 3 {
		p = append(p, color.RGBA{R: rgb[i], G: rgb[i+1], B: rgb[i+2], A: 0xFF})
	}
	return p
}

// ToRGB packs p into RGB triplets, dropping alpha.
func ToRGB(p color.Palette) []byte {
	out := make([]byte, 0, len(p)*3)
	for _, c := range p {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		out = append(out, n.R, n.G, n.B)
	}
	return out
}

// mix blends two colors at t in [0,1]. Greys blend in RGB, which keeps
// them grey; everything else blends in Lab.
func mix(c1, c2 color.Color, t float64) color.Color {
	a, _ := clr.MakeColor(c1)
	b, _ := clr.MakeColor(c2)
	if isGrey(a) || isGrey(b) {
		return a.BlendRgb(b, t).Clamped()
	}
	return a.BlendLab(b, t).Clamped()
}

func isGrey(c clr.Color) bool {
	return c.R == c.G && c.G == c.B
}

// Blend returns the entry-wise mix of a and b at t. The result has the
// length of the shorter palette.
func Blend(a, b color.Palette, t float64) color.Palette {
	n := min(len(a), len(b))
	out := make(color.Palette, n)
	for i := range out {
		out[i] = mix(a[i], b[i], t)
	}
	return out
}

// Fade moves every entry of p towards target by t, the usual screen fade
// to black or white.
func Fade(p color.Palette, target color.Color, t float64) color.Palette {
	out := make(color.Palette, len(p))
	tc, _ := clr.MakeColor(target)
	for i, c := range p {
		pc, _ := clr.MakeColor(c)
		out[i] = pc.BlendRgb(tc, t).Clamped()
	}
	return out
}

// Gradient returns n colors from from to to inclusive.
func Gradient(from, to color.Color, n int) color.Palette {
	if n <= 0 {
		return nil
	}
	out := make(color.Palette, n)
	if n == 1 {
		out[0] = from
		return out
	}
	for i := range out {
		out[i] = mix(from, to, float64(i)/float64(n-1))
	}
	return out
}

// Lighten raises the HCL luminance of every entry by amount.
func Lighten(p color.Palette, amount float64) color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		cc, _ := clr.MakeColor(c)
		h, ch, l := cc.Hcl()
		out[i] = clr.Hcl(h, ch, l+amount).Clamped()
	}
	return out
}

// Rotate cycles entries first..last (inclusive) by step positions, the
// classic palette-cycling animation. Entries outside the range are copied
// unchanged. Positive steps move colors to higher indices.
func Rotate(p color.Palette, first, last, step int) color.Palette {
	out := append(color.Palette(nil), p...)
	if first < 0 || last >= len(p) || first >= last {
		return out
	}
	n := last - first + 1
	step = ((step % n) + n) % n
	for i := 0; i < n; i++ {
		out[first+(i+step)%n] = p[first+i]
	}
	return out
}
