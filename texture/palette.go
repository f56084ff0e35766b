package texture

import (
	"image/color"
	"slices"

	"github.com/gogpu/retro/pixfmt"
	"github.com/gogpu/retro/surface"
)

// HasPalette reports whether the texture is paletted.
func (t *Texture) HasPalette() bool {
	return t.PalettePixelFormat().BytesPerPixel > 0
}

// PalettePixelFormat returns the format of palette entries, or the zero
// Format for direct textures.
func (t *Texture) PalettePixelFormat() pixfmt.Format {
	if p, ok := t.v.(*fakePalette); ok {
		return p.format
	}
	return pixfmt.Format{}
}

// Palette returns a copy of the 256 native-format palette entries.
// Use EditPalette to change them. Direct textures return nil.
func (t *Texture) Palette() []uint16 {
	if p, ok := t.v.(*fakePalette); ok {
		return slices.Clone(p.palette)
	}
	return nil
}

// EditPalette marks the whole texture dirty and returns the live palette.
// Direct textures return nil and stay clean.
func (t *Texture) EditPalette() []uint16 {
	p, ok := t.v.(*fakePalette)
	if !ok {
		return nil
	}
	t.dirty.setAll()
	return p.palette
}

// SetPaletteColors converts colors to the palette format and stores them
// from index start on. Entries past 255 are dropped.
func (t *Texture) SetPaletteColors(start int, colors color.Palette) {
	pal := t.EditPalette()
	if pal == nil || start < 0 {
		return
	}
	f := t.PalettePixelFormat()
	for i, c := range colors {
		if start+i >= len(pal) {
			break
		}
		pal[start+i] = uint16(f.FromColor(c))
	}
}

// SetPaletteRGB stores packed RGB triplets from index start on.
func (t *Texture) SetPaletteRGB(start int, rgb []byte) {
	pal := t.EditPalette()
	if pal == nil || start < 0 {
		return
	}
	f := t.PalettePixelFormat()
	for i := 0; i+2 < len(rgb) && start+i/3 < len(pal); i += 3 {
		pal[start+i/3] = uint16(f.RGB(rgb[i], rgb[i+1], rgb[i+2]))
	}
}

// Expanded returns the true-color surface paletted textures upload from.
// It reflects the palette as of the last upload. Direct textures return nil.
func (t *Texture) Expanded() *surface.Surface {
	if p, ok := t.v.(*fakePalette); ok {
		return p.expanded
	}
	return nil
}

// colors converts the palette to color.Palette.
func (p *fakePalette) colors() color.Palette {
	out := make(color.Palette, len(p.palette))
	for i, v := range p.palette {
		out[i] = pixfmt.Color{F: p.format, V: uint32(v)}
	}
	return out
}
