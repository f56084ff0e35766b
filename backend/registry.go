package backend

import (
	"fmt"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/retro"
	"github.com/gogpu/retro/gpu"
)

// Factory creates a device instance.
type Factory func() gpu.Device

// devices holds registered device factories.
// Priority: ebiten > gogpu > software (software is the fallback).
var devices = gpucontext.NewRegistry[gpu.Device](
	gpucontext.WithPriority(NameEbiten, NameGoGPU, NameSoftware),
)

// Register registers a device factory with the given name.
// This is typically called from init() functions in backend packages.
// A factory registered under an existing name replaces it.
func Register(name string, factory Factory) {
	devices.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	devices.Unregister(name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	names := devices.Available()
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return devices.Has(name)
}

// Get returns a new device from the named backend.
func Get(name string) (gpu.Device, error) {
	if !devices.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	d := devices.Get(name)
	if d == nil {
		return nil, fmt.Errorf("%w: %q returned no device", ErrBackendNotAvailable, name)
	}
	return d, nil
}

// DefaultName returns the name Default would pick, or "" when nothing is
// registered.
func DefaultName() string {
	return devices.BestName()
}

// Default returns a device from the best available backend.
func Default() (gpu.Device, error) {
	name := devices.BestName()
	if name == "" {
		return nil, ErrBackendNotAvailable
	}
	d, err := Get(name)
	if err != nil {
		return nil, err
	}
	retro.Logger().Info("backend: selected", "name", name)
	return d, nil
}

// MustDefault returns the default device or panics.
func MustDefault() gpu.Device {
	d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}
