package gpu

import (
	"image"
	"testing"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 4},
		{50, 64},
		{64, 64},
		{100, 128},
		{320, 512},
		{1025, 2048},
	}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPotSize(t *testing.T) {
	got := PotSize(100, 50)
	if got.Width != 128 || got.Height != 64 || got.DepthOrArrayLayers != 1 {
		t.Errorf("PotSize(100, 50) = %+v, want 128x64x1", got)
	}
}

func TestTexCoords(t *testing.T) {
	op := DrawOp{
		Src:     image.Rect(0, 0, 100, 50),
		TexSize: image.Pt(128, 64),
	}
	u0, v0, u1, v1 := op.TexCoords()
	if u0 != 0 || v0 != 0 {
		t.Errorf("origin = (%v, %v), want (0, 0)", u0, v0)
	}
	if u1 != 100.0/128 || v1 != 50.0/64 {
		t.Errorf("extent = (%v, %v), want (%v, %v)", u1, v1, 100.0/128, 50.0/64)
	}

	var empty DrawOp
	if a, b, c, d := empty.TexCoords(); a != 0 || b != 0 || c != 0 || d != 0 {
		t.Error("TexCoords() with zero TexSize should be all zero")
	}
}

func TestHandleValid(t *testing.T) {
	if Handle(0).Valid() {
		t.Error("Handle(0).Valid() = true, want false")
	}
	if !Handle(7).Valid() {
		t.Error("Handle(7).Valid() = false, want true")
	}
}
