package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/palette"
	"github.com/gogpu/retro/pixfmt"
	"github.com/gogpu/retro/texture"
)

const (
	cycleFirst = 16
	cycleLast  = 255
	spriteSize = 32
)

// scene is a paletted background with palette cycling and a moving
// sprite with a transparent border.
type scene struct {
	bg     *texture.Texture
	sprite *texture.Texture
	pal    color.Palette
	w, h   int
	scale  int
	frame  int
}

func newScene(dev gpu.Device, w, h, scale int, linear bool) (*scene, error) {
	s := &scene{w: w, h: h, scale: scale}

	s.bg = texture.NewFakePalette565(dev,
		texture.WithLinearFilter(linear),
		texture.WithDrawRect(image.Rect(0, 0, w*scale, h*scale)))
	if err := s.bg.AllocBuffer(w, h); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	s.bg.UpdateBuffer(0, 0, w, h, backgroundIndices(w, h), w)

	s.pal = append(color.Palette(nil), palette.EGA...)
	s.pal = append(s.pal, palette.Gradient(
		color.RGBA{R: 0x10, G: 0x10, B: 0x50, A: 0xFF},
		color.RGBA{R: 0xFF, G: 0x90, B: 0x20, A: 0xFF},
		cycleLast-cycleFirst+1)...)
	s.bg.SetPaletteColors(0, s.pal)

	s.sprite = texture.New5551(dev, texture.WithLinearFilter(linear))
	if err := s.sprite.AllocBuffer(spriteSize, spriteSize); err != nil {
		return nil, fmt.Errorf("sprite: %w", err)
	}
	paintSprite(s.sprite)
	s.placeSprite()
	return s, nil
}

// backgroundIndices fills the top with the cycling gradient and the
// bottom eighth with vertical EGA stripes.
func backgroundIndices(w, h int) []byte {
	data := make([]byte, w*h)
	band := h - h/8
	stripe := max(w/16, 1)
	for y := 0; y < h; y++ {
		row := data[y*w : (y+1)*w]
		for x := range row {
			if y >= band {
				row[x] = byte((x / stripe) % 16)
				continue
			}
			row[x] = byte(cycleFirst + (x+y)*(cycleLast-cycleFirst)/max(w+band-2, 1))
		}
	}
	return data
}

func paintSprite(t *texture.Texture) {
	s := t.EditSurface()
	f := t.PixelFormat()
	light := f.ARGB(0xFF, 0xFF, 0xFF, 0x55)
	dark := f.ARGB(0xFF, 0xAA, 0x00, 0xAA)
	s.Fill(0)
	inner := s.Bounds().Inset(2)
	for y := inner.Min.Y; y < inner.Max.Y; y++ {
		for x := inner.Min.X; x < inner.Max.X; x++ {
			v := light
			if (x/4+y/4)%2 == 1 {
				v = dark
			}
			s.SetPixel(x, y, v)
		}
	}
}

// placeSprite bounces the sprite horizontally across the scaled screen.
func (s *scene) placeSprite() {
	size := spriteSize * s.scale
	span := max(s.w*s.scale-size, 1)
	x := s.frame * s.scale % (2 * span)
	if x > span {
		x = 2*span - x
	}
	y := (s.h*s.scale - size) / 2
	s.sprite.SetDrawRect(image.Rect(x, y, x+size, y+size))
}

// step advances the animation by one frame.
func (s *scene) step() {
	s.frame++
	s.pal = palette.Rotate(s.pal, cycleFirst, cycleLast, 1)
	s.bg.SetPaletteColors(cycleFirst, s.pal[cycleFirst:])
	s.placeSprite()
}

func (s *scene) draw() error {
	if err := s.bg.DrawTextureRect(); err != nil {
		return err
	}
	return s.sprite.DrawTextureRect()
}

func (s *scene) close() {
	s.bg.Close()
	s.sprite.Close()
}

// formats returns the background palette format and the sprite format.
func (s *scene) formats() (pixfmt.Format, pixfmt.Format) {
	return s.bg.PalettePixelFormat(), s.sprite.PixelFormat()
}
