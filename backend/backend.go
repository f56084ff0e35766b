package backend

import "errors"

// Backend names.
const (
	// NameEbiten is the ebiten v2 device (backend/ebiten).
	NameEbiten = "ebiten"

	// NameGoGPU is the gpucontext device used inside gogpu apps (backend/gogpu).
	NameGoGPU = "gogpu"

	// NameSoftware is the CPU reference device (backend/software).
	NameSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or its factory produced no device.
	ErrBackendNotAvailable = errors.New("backend: not available")
)
