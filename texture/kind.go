package texture

import "github.com/gogpu/retro/pixfmt"

// Kind selects the pixel layout of a texture. It is fixed at construction.
type Kind uint8

// Texture kinds.
const (
	Direct8888 Kind = iota
	Direct4444
	Direct5551
	Direct565
	FakePalette565
	FakePalette5551
)

var kindNames = [...]string{
	Direct8888:      "Direct8888",
	Direct4444:      "Direct4444",
	Direct5551:      "Direct5551",
	Direct565:       "Direct565",
	FakePalette565:  "FakePalette565",
	FakePalette5551: "FakePalette5551",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Paletted reports whether k is a fake-palette kind.
func (k Kind) Paletted() bool {
	return k == FakePalette565 || k == FakePalette5551
}

// NativeFormat returns the format uploaded to and sampled by the GPU.
func (k Kind) NativeFormat() pixfmt.Format {
	switch k {
	case Direct8888:
		return pixfmt.RGBA8888
	case Direct4444:
		return pixfmt.RGBA4444
	case Direct5551, FakePalette5551:
		return pixfmt.RGBA5551
	default:
		return pixfmt.RGB565
	}
}

// SurfaceFormat returns the format of the caller-visible surface.
func (k Kind) SurfaceFormat() pixfmt.Format {
	if k.Paletted() {
		return pixfmt.CLUT8
	}
	return k.NativeFormat()
}
