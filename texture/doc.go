// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package texture mirrors CPU pixel surfaces on a GPU device.
//
// A Texture owns a CPU surface that is the source of truth and a GPU
// texture derived from it. Writes go to the surface and grow a dirty
// region; the GPU copy is brought up to date only inside the draw path,
// uploading just the dirty rectangle.
//
// # Variants
//
// Direct textures (Direct8888, Direct4444, Direct5551, Direct565) store
// pixels in the same format the GPU samples. Fake-palette textures
// (FakePalette565, FakePalette5551) present an 8-bit indexed surface with
// a 256-entry palette and expand indices to true color at upload time,
// for devices without palette support.
//
// # Lifecycle
//
//	tex := texture.New565(dev)
//	tex.AllocBuffer(100, 50)   // 128x64 GPU texture, all dirty
//	tex.FillBuffer(0xFFFF)
//	tex.DrawTexture(0, 0, 200, 100) // uploads once, then draws
//	tex.UpdateBuffer(10, 10, 5, 5, pix, 10)
//	tex.DirtyRect()            // (10,10)-(15,15)
//
// Release drops the GPU texture while keeping the surface, and Reinit
// recreates it and schedules a full upload. Use them around device loss.
//
// Textures are not safe for concurrent use. Call them from the goroutine
// that owns the device.
package texture
