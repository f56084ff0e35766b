package texture

import (
	"image"

	"github.com/gogpu/retro/pixfmt"
	"github.com/gogpu/retro/surface"
)

// variant is the format-dependent half of a Texture.
type variant interface {
	// allocate creates the caller-visible surface for a w×h image whose
	// GPU texture is potW texels wide.
	allocate(w, h, potW int) *surface.Surface

	// updateRegion copies caller pixels into s and returns the rectangle
	// written after clipping.
	updateRegion(s *surface.Surface, r image.Rectangle, data []byte, pitch int) image.Rectangle

	// fill sets every pixel of s to c.
	fill(s *surface.Surface, c uint32)

	// upload prepares r for the GPU and returns native-format rows.
	upload(s *surface.Surface, r image.Rectangle) (data []byte, pitch int)
}

// direct is the variant for textures whose surface is already in the
// GPU format.
type direct struct {
	format pixfmt.Format
}

func (d *direct) allocate(w, h, potW int) *surface.Surface {
	return surface.New(w, h, potW*int(d.format.BytesPerPixel), d.format)
}

func (d *direct) updateRegion(s *surface.Surface, r image.Rectangle, data []byte, pitch int) image.Rectangle {
	return s.CopyRect(r, data, pitch)
}

func (d *direct) fill(s *surface.Surface, c uint32) {
	s.Fill(c)
}

func (d *direct) upload(s *surface.Surface, r image.Rectangle) ([]byte, int) {
	return s.SubPix(r), s.Pitch
}

// fakePalette keeps an index surface and a palette, and expands indices
// into a true-color surface right before upload.
type fakePalette struct {
	format   pixfmt.Format
	palette  []uint16
	expanded *surface.Surface
}

func newFakePalette(f pixfmt.Format) *fakePalette {
	return &fakePalette{
		format:   f,
		palette:  make([]uint16, 256),
		expanded: surface.New(0, 0, 0, f),
	}
}

func (p *fakePalette) allocate(w, h, potW int) *surface.Surface {
	p.expanded = surface.New(w, h, potW*int(p.format.BytesPerPixel), p.format)
	return surface.New(w, h, potW, pixfmt.CLUT8)
}

// updateRegion stores raw indices. Expansion waits for upload.
func (p *fakePalette) updateRegion(s *surface.Surface, r image.Rectangle, data []byte, pitch int) image.Rectangle {
	return s.CopyRect(r, data, pitch)
}

func (p *fakePalette) fill(s *surface.Surface, c uint32) {
	s.Fill(c & 0xFF)
}

// upload re-expands exactly r. A full upload passes the whole bounds.
func (p *fakePalette) upload(s *surface.Surface, r image.Rectangle) ([]byte, int) {
	p.expand(s, r)
	return p.expanded.SubPix(r), p.expanded.Pitch
}

func (p *fakePalette) expand(s *surface.Surface, r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	if r.Empty() {
		return
	}
	dst := p.expanded
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := s.Pix[s.PixOffset(r.Min.X, y) : s.PixOffset(r.Max.X, y)]
		off := dst.PixOffset(r.Min.X, y)
		for _, idx := range src {
			v := p.palette[idx]
			dst.Pix[off] = uint8(v)
			dst.Pix[off+1] = uint8(v >> 8)
			off += 2
		}
	}
}
