// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu defines the GPU binding textures draw through.
//
// A Device owns textures identified by opaque handles, much like texture
// names in OpenGL. Textures always have power-of-two dimensions and are
// created zeroed. Callers upload rows in the texture's packed pixel format
// and draw a sub-rectangle of the texture as a scaled quad.
//
// Implementations live under backend/: a software reference device, an
// ebiten device and a gpucontext device for the gogpu runtime.
package gpu

import (
	"errors"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/retro/pixfmt"
)

// Errors returned by Device implementations.
var (
	// ErrUnknownHandle is returned for a handle the device did not create
	// or has already destroyed.
	ErrUnknownHandle = errors.New("gpu: unknown texture handle")

	// ErrRegionOutOfBounds is returned when an upload rectangle does not
	// fit inside the texture.
	ErrRegionOutOfBounds = errors.New("gpu: region out of bounds")

	// ErrNoTarget is returned when a device is asked to draw before a
	// render target has been attached.
	ErrNoTarget = errors.New("gpu: no render target")
)

// Handle identifies a device texture. The zero Handle means "no texture".
type Handle uint32

// Valid reports whether h refers to a texture.
func (h Handle) Valid() bool { return h != 0 }

// Filter selects texel sampling for scaled draws.
type Filter = gputypes.FilterMode

// Sampling filters.
const (
	FilterNearest = gputypes.FilterModeNearest
	FilterLinear  = gputypes.FilterModeLinear
)

// TextureDesc describes a texture to create.
type TextureDesc struct {
	Size   gputypes.Extent3D
	Format pixfmt.Format
	Filter Filter
}

// Width returns the texture width in texels.
func (d TextureDesc) Width() int { return int(d.Size.Width) }

// Height returns the texture height in texels.
func (d TextureDesc) Height() int { return int(d.Size.Height) }

// DrawOp describes one textured quad.
type DrawOp struct {
	// Dst is the screen rectangle to cover.
	Dst image.Rectangle

	// Src is the texel rectangle to sample, usually the logical image
	// inside a larger power-of-two texture.
	Src image.Rectangle

	// TexSize is the full texture size, used to normalize Src.
	TexSize image.Point

	Filter Filter
}

// TexCoords returns Src normalized to [0,1] by TexSize.
func (op DrawOp) TexCoords() (u0, v0, u1, v1 float32) {
	if op.TexSize.X == 0 || op.TexSize.Y == 0 {
		return 0, 0, 0, 0
	}
	w, h := float32(op.TexSize.X), float32(op.TexSize.Y)
	return float32(op.Src.Min.X) / w, float32(op.Src.Min.Y) / h,
		float32(op.Src.Max.X) / w, float32(op.Src.Max.Y) / h
}

// Device is the GPU capability set textures need.
//
// Devices are not required to be safe for concurrent use; the texture
// layer calls them from a single render goroutine.
type Device interface {
	// CreateTexture allocates a zeroed texture.
	CreateTexture(desc TextureDesc) (Handle, error)

	// UploadRegion replaces the texels in r with data. data holds r.Dy()
	// rows in the texture's format, pitch bytes apart, starting at r.Min.
	UploadRegion(h Handle, r image.Rectangle, data []byte, pitch int) error

	// Draw renders op using texture h.
	Draw(h Handle, op DrawOp) error

	// DestroyTexture frees h. Unknown handles are ignored.
	DestroyTexture(h Handle)

	// Name returns a short backend identifier.
	Name() string
}
