// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// Surface is the core rendering target abstraction.
//
// A Surface represents a 2D canvas that can be drawn to. The weave and the
// aging overlay only ever talk to a Surface, never to a concrete backend,
// so the same drawing code targets an offline buffer or a live terminal.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(surface.White)
//	err := s.Fill(path, surface.FillStyle{Color: surface.RGB(255, 0, 0)})
//	img := s.Snapshot()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with the given color.
	Clear(c Color)

	// Fill fills the given path using the specified style.
	// The path is not modified or consumed. Non-finite or empty paths
	// fail with errs.CodeInvalidGeometry.
	Fill(path *Path, style FillStyle) error

	// Stroke strokes the given path using the specified style.
	// The path is not modified or consumed.
	Stroke(path *Path, style StrokeStyle) error

	// Flush ensures all pending drawing operations are complete and, for
	// presenting backends, visible.
	Flush() error

	// Snapshot returns the current surface contents as an RGBA image.
	// The returned image is a copy; modifications to it do not affect the surface.
	Snapshot() *image.RGBA

	// Close releases all resources associated with the surface.
	// After Close, the surface must not be used.
	// Close is idempotent; multiple calls are safe.
	Close() error
}
