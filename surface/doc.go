// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the drawing primitive layer of the rug renderer.
//
// Surface is the rendering target abstraction that decouples drawing
// operations from their implementation. The same drawing code works with:
//
//   - ImageSurface: an offline *image.RGBA buffer
//   - the terminal surface in integration/termview
//   - any backend added through the registry
//
// On top of Surface sits Canvas, a small stateful API with fill and stroke
// state, a transform stack and shape helpers. Every Canvas call returns an
// error, and the first error is also kept in Err, so a long run of drawing
// calls can be checked once at the end.
//
// # Determinism
//
// Everything under a Surface is integer arithmetic once vertices are
// quantized: a fixed-point scanline rasterizer and 8-bit premultiplied
// blend functions. Curve and arc flattening uses the polynomial sine from
// internal/detmath. Together these make a render pixel-identical across
// operating systems and CPU architectures.
//
// # Registry
//
// Backends register by name and priority:
//
//	surface.Register("image", 10, factory, nil)
//
//	s, err := surface.NewSurfaceByName("image", 800, 1200)
//
// # Colors
//
// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa, rgb() and rgba().
// Malformed input fails with errs.CodeInvalidColor and is never replaced by
// a fallback color.
package surface
