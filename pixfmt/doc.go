// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixfmt describes packed pixel layouts used by emulated game
// surfaces and the GPU textures that display them.
//
// A Format records bytes per pixel plus the width and position of each
// channel inside the packed value:
//
//	| Format   | bpp | R | G | B | A | R-shift | G-shift | B-shift | A-shift |
//	|----------|-----|---|---|---|---|---------|---------|---------|---------|
//	| RGBA8888 |  4  | 8 | 8 | 8 | 8 |   24    |   16    |    8    |    0    |
//	| RGBA4444 |  2  | 4 | 4 | 4 | 4 |   12    |    8    |    4    |    0    |
//	| RGBA5551 |  2  | 5 | 5 | 5 | 1 |   11    |    6    |    1    |    0    |
//	| RGB565   |  2  | 5 | 6 | 5 | 0 |   11    |    5    |    0    |    0    |
//	| CLUT8    |  1  | - | - | - | - |    -    |    -    |    -    |    -    |
//
// Packed values are stored little-endian in byte buffers. Backends that
// only accept RGBA8 convert rows with ToRGBA or ConvertRect.
package pixfmt
