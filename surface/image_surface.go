// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/internal/blend"
	"github.com/onchainrugs/rugweave/internal/raster"
)

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Coverage comes from the integer rasterizer and compositing from the
// integer blend functions, so the same sequence of calls produces the same
// bytes on every platform. This is the default surface implementation.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(surface.White)
//	path := surface.NewPath()
//	path.Circle(400, 300, 100)
//	err := s.Fill(path, surface.FillStyle{Color: surface.RGB(255, 0, 0)})
//
//	img := s.Snapshot()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	rast *raster.Rasterizer

	// closed tracks if Close has been called
	closed bool
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}

	return &ImageSurface{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		rast:   raster.NewRasterizer(width, height),
	}
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		width:  b.Dx(),
		height: b.Dy(),
		img:    img,
		rast:   raster.NewRasterizer(b.Dx(), b.Dy()),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Clear fills the entire surface with the given color.
func (s *ImageSurface) Clear(c Color) {
	if s.closed {
		return
	}
	r, g, b, a := c.Premultiplied()
	pix := s.img.Pix
	for y := 0; y < s.height; y++ {
		off := s.img.PixOffset(0, y)
		row := pix[off : off+s.width*4]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = r
			row[i+1] = g
			row[i+2] = b
			row[i+3] = a
		}
	}
}

// Fill fills the given path using the specified style.
func (s *ImageSurface) Fill(path *Path, style FillStyle) error {
	if s.closed {
		return errs.New(errs.CodeState, "fill on closed surface")
	}
	if err := path.Validate(); err != nil {
		return err
	}
	s.fill(path, style.Rule, style.Color, style.Blend)
	return nil
}

// Stroke strokes the given path using the specified style.
func (s *ImageSurface) Stroke(path *Path, style StrokeStyle) error {
	if s.closed {
		return errs.New(errs.CodeState, "stroke on closed surface")
	}
	if err := path.Validate(); err != nil {
		return err
	}
	outline, err := expandStroke(path, style)
	if err != nil {
		return err
	}
	s.fill(outline, FillRuleNonZero, style.Color, style.Blend)
	return nil
}

func (s *ImageSurface) fill(path *Path, rule FillRule, c Color, mode BlendMode) {
	if c.A == 0 && mode != BlendCopy {
		return
	}
	sr, sg, sb, sa := c.Premultiplied()
	fn := blend.GetBlendFunc(mode.internal())

	s.rast.AddPath(path)
	s.rast.Fill(rule.raster(), func(y, x int, coverage []uint8) {
		off := s.img.PixOffset(x, y)
		pix := s.img.Pix[off : off+len(coverage)*4]
		for i, cov := range coverage {
			r, g, b, a := blend.Scale(sr, sg, sb, sa, cov)
			p := pix[i*4 : i*4+4 : i*4+4]
			p[0], p[1], p[2], p[3] = fn(r, g, b, a, p[0], p[1], p[2], p[3])
		}
	})
}

// Flush is a no-op for the CPU surface.
func (s *ImageSurface) Flush() error {
	return nil
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		src := s.img.PixOffset(0, y)
		copy(out.Pix[y*out.Stride:y*out.Stride+s.width*4], s.img.Pix[src:src+s.width*4])
	}
	return out
}

// Close releases resources. It is idempotent.
func (s *ImageSurface) Close() error {
	s.closed = true
	s.rast = nil
	return nil
}

// Image returns the backing image. Drawing after this call is visible
// through the returned value.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Verify ImageSurface implements Surface.
var _ Surface = (*ImageSurface)(nil)
