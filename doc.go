// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package retro is a texture and sound layer for engines that emulate
// classic game hardware on top of a modern GPU.
//
// # Overview
//
// Game logic writes pixels into CPU-side surfaces in the packed formats the
// original hardware used (RGBA8888, RGBA4444, RGBA5551, RGB565 or 8-bit
// palette indices). Textures mirror those surfaces on a GPU device and only
// upload the changed region, lazily, right before a draw.
//
//	dev, _ := backend.Default()
//	tex := texture.New565(dev)
//	tex.AllocBuffer(320, 200)
//	tex.FillBuffer(0xFFFF)
//	tex.DrawTexture(0, 0, 640, 400)
//
// # Packages
//
//   - pixfmt: packed pixel formats and RGBA conversion
//   - surface: CPU pixel buffers with explicit pitch
//   - gpu: the device interface textures are drawn through
//   - texture: dirty-tracked direct and fake-palette textures
//   - palette: stock palettes and palette effects
//   - backend: device registry with software, ebiten and gogpu devices
//   - audio: sound clips over a channel mixer, with an oto mixer
//
// # Logging
//
// All packages log through the slog.Logger configured with [SetLogger].
// The default logger discards everything.
package retro
