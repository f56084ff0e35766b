package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/retro/pixfmt"
)

func TestScenarioFakePalette(t *testing.T) {
	dev := newDevice()
	tex := NewFakePalette565(dev)
	if err := tex.AllocBuffer(256, 1); err != nil {
		t.Fatalf("AllocBuffer() error = %v", err)
	}

	indices := make([]byte, 256)
	for i := range indices {
		indices[i] = byte(i)
	}
	tex.UpdateBuffer(0, 0, 256, 1, indices, 256)
	tex.EditPalette()[128] = 0x07E0

	if err := tex.DrawTexture(0, 0, 256, 1); err != nil {
		t.Fatalf("DrawTexture() error = %v", err)
	}
	if got := tex.Expanded().Pixel(128, 0); got != 0x07E0 {
		t.Errorf("expanded[128] = %#x, want 0x07e0", got)
	}
	if got := tex.Expanded().Pixel(127, 0); got != 0 {
		t.Errorf("expanded[127] = %#x, want 0", got)
	}
	if got := dev.Texels(tex.Handle()).RGBAAt(128, 0); got != (color.RGBA{G: 0xFF, A: 0xFF}) {
		t.Errorf("texel 128 = %v, want green", got)
	}
}

func TestFakePaletteIndexThenPalette(t *testing.T) {
	tex := NewFakePalette5551(newDevice())
	if err := tex.AllocBuffer(4, 4); err != nil {
		t.Fatal(err)
	}
	tex.UpdateBuffer(2, 3, 1, 1, []byte{9}, 1)

	c := pixfmt.RGBA5551.ARGB(0xFF, 0xFF, 0, 0)
	tex.EditPalette()[9] = uint16(c)
	if err := tex.DrawTexture(0, 0, 4, 4); err != nil {
		t.Fatal(err)
	}
	if got := tex.Expanded().Pixel(2, 3); got != c {
		t.Errorf("expanded(2,3) = %#x, want %#x", got, c)
	}
}

func TestFakePaletteUpdateDoesNotExpand(t *testing.T) {
	tex := NewFakePalette565(newDevice())
	if err := tex.AllocBuffer(4, 1); err != nil {
		t.Fatal(err)
	}
	tex.EditPalette()[1] = 0xFFFF
	if err := tex.DrawTexture(0, 0, 4, 1); err != nil {
		t.Fatal(err)
	}

	tex.UpdateBuffer(0, 0, 1, 1, []byte{1}, 1)
	if got := tex.Surface().Pixel(0, 0); got != 1 {
		t.Errorf("index = %d, want 1", got)
	}
	if got := tex.Expanded().Pixel(0, 0); got != 0 {
		t.Errorf("expanded before flush = %#x, want 0", got)
	}
	if tex.DirtyRect() != image.Rect(0, 0, 1, 1) {
		t.Errorf("DirtyRect() = %v", tex.DirtyRect())
	}
}

// A partial flush re-expands only the dirty rectangle, at its own column
// offset. Expanded pixels outside it are left as they are.
func TestFakePalettePartialReexpand(t *testing.T) {
	dev := newDevice()
	tex := NewFakePalette565(dev)
	if err := tex.AllocBuffer(8, 4); err != nil {
		t.Fatal(err)
	}
	tex.FillBuffer(3)
	tex.EditPalette()[3] = 0x001F
	tex.EditPalette()[5] = 0xF800
	if err := tex.DrawTexture(0, 0, 8, 4); err != nil {
		t.Fatal(err)
	}

	// Mark expanded pixels so a re-expansion outside the rect shows.
	exp := tex.Expanded()
	exp.SetPixel(0, 1, 0xAAAA)
	exp.SetPixel(7, 3, 0xAAAA)
	exp.SetPixel(5, 1, 0xAAAA)

	tex.UpdateBuffer(4, 1, 2, 2, []byte{5, 3, 3, 5}, 2)
	dev.ResetStats()
	if err := tex.DrawTexture(0, 0, 8, 4); err != nil {
		t.Fatal(err)
	}

	ups := dev.Stats().Uploads
	if len(ups) != 1 || ups[0].Rect != image.Rect(4, 1, 6, 3) {
		t.Fatalf("uploads = %v, want one upload of (4,1)-(6,3)", ups)
	}
	checks := []struct {
		x, y int
		want uint32
	}{
		{4, 1, 0xF800},
		{5, 1, 0x001F},
		{4, 2, 0x001F},
		{5, 2, 0xF800},
		{0, 1, 0xAAAA},
		{7, 3, 0xAAAA},
		{0, 0, 0x001F},
	}
	for _, c := range checks {
		if got := exp.Pixel(c.x, c.y); got != c.want {
			t.Errorf("expanded(%d,%d) = %#x, want %#x", c.x, c.y, got, c.want)
		}
	}
}

func TestPaletteReturnsCopy(t *testing.T) {
	tex := NewFakePalette565(newDevice())
	if err := tex.AllocBuffer(2, 2); err != nil {
		t.Fatal(err)
	}
	tex.EditPalette()[7] = 0x07E0
	if err := tex.DrawTexture(0, 0, 2, 2); err != nil {
		t.Fatal(err)
	}

	pal := tex.Palette()
	if len(pal) != 256 || pal[7] != 0x07E0 {
		t.Fatalf("Palette() = len %d, [7] %#x, want 256 entries with 0x07e0", len(pal), pal[7])
	}
	pal[7] = 0xF800
	if got := tex.Palette()[7]; got != 0x07E0 {
		t.Errorf("write through Palette() changed the texture: [7] = %#x", got)
	}
	if tex.Dirty() {
		t.Error("Palette() should not mark dirty")
	}
}

func TestFakePaletteFullReexpand(t *testing.T) {
	dev := newDevice()
	tex := NewFakePalette565(dev)
	if err := tex.AllocBuffer(8, 4); err != nil {
		t.Fatal(err)
	}
	tex.FillBuffer(3)
	tex.EditPalette()[3] = 0x001F
	if err := tex.DrawTexture(0, 0, 8, 4); err != nil {
		t.Fatal(err)
	}

	tex.EditPalette()[3] = 0x07E0
	if !tex.AllDirty() {
		t.Fatal("EditPalette() should mark all dirty")
	}
	dev.ResetStats()
	if err := tex.DrawTexture(0, 0, 8, 4); err != nil {
		t.Fatal(err)
	}
	ups := dev.Stats().Uploads
	if len(ups) != 1 || ups[0].Rect != image.Rect(0, 0, 8, 4) {
		t.Fatalf("uploads = %v, want one full upload", ups)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := tex.Expanded().Pixel(x, y); got != 0x07E0 {
				t.Fatalf("expanded(%d,%d) = %#x, want 0x07e0", x, y, got)
			}
		}
	}
}

func TestFakePaletteFillUsesLowByte(t *testing.T) {
	tex := NewFakePalette565(newDevice())
	if err := tex.AllocBuffer(3, 3); err != nil {
		t.Fatal(err)
	}
	tex.FillBuffer(0x1207)
	if got := tex.Surface().Pixel(2, 2); got != 7 {
		t.Errorf("index = %d, want 7", got)
	}
	if tex.Pitch() != 4 {
		t.Errorf("Pitch() = %d, want 4 (POT width of index surface)", tex.Pitch())
	}
	if tex.Expanded().Pitch != 8 {
		t.Errorf("expanded pitch = %d, want 8", tex.Expanded().Pitch)
	}
}

func TestSetPaletteColors(t *testing.T) {
	tex := NewFakePalette565(newDevice())
	if err := tex.AllocBuffer(2, 2); err != nil {
		t.Fatal(err)
	}
	if err := tex.DrawTexture(0, 0, 2, 2); err != nil {
		t.Fatal(err)
	}

	tex.SetPaletteColors(254, color.Palette{
		color.RGBA{R: 0xFF, A: 0xFF},
		color.RGBA{G: 0xFF, A: 0xFF},
		color.RGBA{B: 0xFF, A: 0xFF}, // dropped
	})
	pal := tex.Palette()
	if pal[254] != 0xF800 || pal[255] != 0x07E0 {
		t.Errorf("palette[254:] = %#x %#x, want 0xf800 0x07e0", pal[254], pal[255])
	}
	if !tex.AllDirty() {
		t.Error("SetPaletteColors should mark all dirty")
	}

	tex.SetPaletteRGB(1, []byte{0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0x12})
	pal = tex.Palette()
	if pal[1] != 0x001F || pal[2] != 0xFFFF {
		t.Errorf("palette[1:3] = %#x %#x, want 0x001f 0xffff", pal[1], pal[2])
	}
}

func TestDirectPaletteAccessors(t *testing.T) {
	tex := New565(newDevice())
	if err := tex.AllocBuffer(2, 2); err != nil {
		t.Fatal(err)
	}
	tex.DrawTexture(0, 0, 2, 2)

	if tex.EditPalette() != nil {
		t.Error("EditPalette() on direct texture should be nil")
	}
	tex.SetPaletteColors(0, color.Palette{color.White})
	if tex.Dirty() {
		t.Error("palette access on a direct texture should not mark dirty")
	}
}

func TestImagePaletted(t *testing.T) {
	tex := NewFakePalette565(newDevice())
	if err := tex.AllocBuffer(2, 1); err != nil {
		t.Fatal(err)
	}
	tex.UpdateBuffer(1, 0, 1, 1, []byte{4}, 1)
	tex.EditPalette()[4] = 0xF800

	img, ok := tex.Image().(*image.Paletted)
	if !ok {
		t.Fatalf("Image() = %T, want *image.Paletted", tex.Image())
	}
	r, g, b, _ := img.At(1, 0).RGBA()
	if r != 0xFFFF || g != 0 || b != 0 {
		t.Errorf("At(1,0) = %d,%d,%d, want red", r, g, b)
	}
}
