package software

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/retro/backend"
	"github.com/gogpu/retro/gpu"
	"github.com/gogpu/retro/pixfmt"
)

func create(t *testing.T, d *Device, w, h int, f pixfmt.Format) gpu.Handle {
	t.Helper()
	handle, err := d.CreateTexture(gpu.TextureDesc{Size: gpu.PotSize(w, h), Format: f})
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	return handle
}

func TestRegistered(t *testing.T) {
	d, err := backend.Get(backend.NameSoftware)
	if err != nil {
		t.Fatalf("backend.Get(software) error = %v", err)
	}
	if d.Name() != backend.NameSoftware {
		t.Errorf("Name() = %q, want %q", d.Name(), backend.NameSoftware)
	}
}

func TestCreateTexture(t *testing.T) {
	d := New()
	h := create(t, d, 100, 50, pixfmt.RGB565)
	if !h.Valid() {
		t.Fatal("CreateTexture() returned the zero handle")
	}
	img := d.Texels(h)
	if img.Bounds() != image.Rect(0, 0, 128, 64) {
		t.Errorf("texture bounds = %v, want 128x64", img.Bounds())
	}
	if d.Stats().Creates != 1 || d.Live() != 1 {
		t.Errorf("Creates = %d, Live = %d, want 1, 1", d.Stats().Creates, d.Live())
	}

	if _, err := d.CreateTexture(gpu.TextureDesc{}); err == nil {
		t.Error("CreateTexture(zero size) should fail")
	}
}

func TestUploadRegion(t *testing.T) {
	d := New()
	h := create(t, d, 4, 4, pixfmt.RGB565)

	// 2x1 block of red and green inside a 3-pixel pitch.
	data := make([]byte, 6)
	pixfmt.RGB565.Store(data[0:], 0xF800)
	pixfmt.RGB565.Store(data[2:], 0x07E0)
	if err := d.UploadRegion(h, image.Rect(1, 2, 3, 3), data, 6); err != nil {
		t.Fatalf("UploadRegion() error = %v", err)
	}

	img := d.Texels(h)
	if got := img.RGBAAt(1, 2); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("texel (1,2) = %v, want red", got)
	}
	if got := img.RGBAAt(2, 2); got != (color.RGBA{G: 0xFF, A: 0xFF}) {
		t.Errorf("texel (2,2) = %v, want green", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("texel (0,0) = %v, want zero", got)
	}

	ups := d.Stats().Uploads
	if len(ups) != 1 || ups[0].Rect != image.Rect(1, 2, 3, 3) {
		t.Errorf("Uploads = %v, want one upload of (1,2)-(3,3)", ups)
	}
}

func TestUploadRegionErrors(t *testing.T) {
	d := New()
	h := create(t, d, 4, 4, pixfmt.CLUT8)

	tests := []struct {
		name   string
		handle gpu.Handle
		r      image.Rectangle
		want   error
	}{
		{"unknown handle", 99, image.Rect(0, 0, 1, 1), gpu.ErrUnknownHandle},
		{"out of bounds", h, image.Rect(2, 2, 6, 3), gpu.ErrRegionOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := d.UploadRegion(tt.handle, tt.r, make([]byte, 16), 4)
			if !errors.Is(err, tt.want) {
				t.Errorf("UploadRegion() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDrawScalesNearest(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 8, 8))
	d := New(WithTarget(target))
	h := create(t, d, 2, 2, pixfmt.RGBA8888)

	data := make([]byte, 8)
	pixfmt.RGBA8888.Store(data[0:], 0xFF0000FF)
	pixfmt.RGBA8888.Store(data[4:], 0x0000FFFF)
	if err := d.UploadRegion(h, image.Rect(0, 0, 2, 1), data, 8); err != nil {
		t.Fatalf("UploadRegion() error = %v", err)
	}

	op := gpu.DrawOp{
		Dst:     image.Rect(0, 0, 4, 2),
		Src:     image.Rect(0, 0, 2, 1),
		TexSize: image.Pt(2, 2),
		Filter:  gpu.FilterNearest,
	}
	if err := d.Draw(h, op); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	for _, p := range []image.Point{{0, 0}, {1, 1}} {
		if got := target.RGBAAt(p.X, p.Y); got != red {
			t.Errorf("target %v = %v, want red", p, got)
		}
	}
	for _, p := range []image.Point{{2, 0}, {3, 1}} {
		if got := target.RGBAAt(p.X, p.Y); got != blue {
			t.Errorf("target %v = %v, want blue", p, got)
		}
	}
	if got := target.RGBAAt(5, 5); got != (color.RGBA{}) {
		t.Errorf("target outside Dst = %v, want untouched", got)
	}
	if d.Stats().Draws != 1 {
		t.Errorf("Draws = %d, want 1", d.Stats().Draws)
	}
}

func TestDrawErrors(t *testing.T) {
	d := New()
	h := create(t, d, 2, 2, pixfmt.RGB565)
	op := gpu.DrawOp{Dst: image.Rect(0, 0, 2, 2), Src: image.Rect(0, 0, 2, 2)}

	if err := d.Draw(h, op); !errors.Is(err, gpu.ErrNoTarget) {
		t.Errorf("Draw() without target error = %v, want ErrNoTarget", err)
	}

	d.SetTarget(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err := d.Draw(42, op); !errors.Is(err, gpu.ErrUnknownHandle) {
		t.Errorf("Draw(42) error = %v, want ErrUnknownHandle", err)
	}
}

func TestDestroyTexture(t *testing.T) {
	d := New()
	h := create(t, d, 1, 1, pixfmt.RGB565)
	d.DestroyTexture(h)
	d.DestroyTexture(h)

	if d.Texels(h) != nil {
		t.Error("Texels() after destroy should be nil")
	}
	if s := d.Stats(); s.Destroys != 1 {
		t.Errorf("Destroys = %d, want 1", s.Destroys)
	}

	d.ResetStats()
	if s := d.Stats(); s.Creates != 0 || s.Destroys != 0 || len(s.Uploads) != 0 {
		t.Errorf("Stats after ResetStats = %+v, want zero", s)
	}
}
