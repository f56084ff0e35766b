// Package backend selects the GPU device textures draw through.
//
// Device packages register a factory on import:
//
//	import (
//		_ "github.com/gogpu/retro/backend/ebiten"
//		_ "github.com/gogpu/retro/backend/software"
//	)
//
// and callers pick one by name or take the best available:
//
//	dev, err := backend.Get("software")
//	dev, err := backend.Default() // ebiten > gogpu > software
//
// The software device is a CPU reference implementation useful for tests
// and headless rendering to PNG.
package backend
