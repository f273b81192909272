// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"testing"

	"github.com/onchainrugs/rugweave/errs"
)

func pixel(s *ImageSurface, x, y int) [4]uint8 {
	off := s.Image().PixOffset(x, y)
	p := s.Image().Pix[off : off+4]
	return [4]uint8{p[0], p[1], p[2], p[3]}
}

func TestImageSurfaceClear(t *testing.T) {
	s := NewImageSurface(4, 3)
	defer s.Close()

	s.Clear(RGB(10, 20, 30))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := pixel(s, x, y); got != [4]uint8{10, 20, 30, 255} {
				t.Fatalf("pixel (%d,%d) = %v", x, y, got)
			}
		}
	}
}

func TestImageSurfaceMinimumSize(t *testing.T) {
	s := NewImageSurface(0, -3)
	if s.Width() != 1 || s.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", s.Width(), s.Height())
	}
}

func TestImageSurfaceFillRect(t *testing.T) {
	s := NewImageSurface(8, 8)
	s.Clear(White)

	p := NewPath()
	p.Rectangle(2, 2, 4, 4)
	if err := s.Fill(p, FillStyle{Color: RGB(255, 0, 0)}); err != nil {
		t.Fatal(err)
	}

	if got := pixel(s, 3, 3); got != [4]uint8{255, 0, 0, 255} {
		t.Errorf("inside = %v", got)
	}
	if got := pixel(s, 0, 0); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("outside = %v", got)
	}
}

func TestImageSurfaceFillTranslucent(t *testing.T) {
	s := NewImageSurface(2, 2)
	s.Clear(White)

	p := NewPath()
	p.Rectangle(0, 0, 2, 2)
	if err := s.Fill(p, FillStyle{Color: RGBA(0, 0, 0, 128)}); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 1, 1); got != [4]uint8{127, 127, 127, 255} {
		t.Errorf("half black over white = %v", got)
	}
}

func TestImageSurfaceMultiply(t *testing.T) {
	s := NewImageSurface(2, 2)
	s.Clear(RGB(200, 100, 50))

	p := NewPath()
	p.Rectangle(0, 0, 2, 2)
	if err := s.Fill(p, FillStyle{Color: White, Blend: BlendMultiply}); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 0, 0); got != [4]uint8{200, 100, 50, 255} {
		t.Errorf("multiply by white changed the pixel: %v", got)
	}
}

func TestImageSurfaceInvalidGeometry(t *testing.T) {
	s := NewImageSurface(4, 4)

	tests := []struct {
		name  string
		build func(p *Path)
	}{
		{"empty", func(*Path) {}},
		{"nan", func(p *Path) { p.Rectangle(math.NaN(), 0, 1, 1) }},
		{"inf", func(p *Path) { p.Rectangle(0, 0, math.Inf(1), 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.build(p)
			err := s.Fill(p, DefaultFillStyle())
			if !errs.Is(err, errs.CodeInvalidGeometry) {
				t.Errorf("Fill error = %v, want INVALID_GEOMETRY", err)
			}
		})
	}
}

func TestImageSurfaceStroke(t *testing.T) {
	s := NewImageSurface(10, 10)
	s.Clear(White)

	p := NewPath()
	p.MoveTo(1, 5)
	p.LineTo(9, 5)
	if err := s.Stroke(p, StrokeStyle{Color: Black, Width: 2, Cap: LineCapButt}); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 5, 4); got != [4]uint8{0, 0, 0, 255} {
		t.Errorf("on the line = %v", got)
	}
	if got := pixel(s, 5, 7); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("off the line = %v", got)
	}

	if err := s.Stroke(p, StrokeStyle{Color: Black, Width: 0}); !errs.Is(err, errs.CodeInvalidGeometry) {
		t.Errorf("zero width error = %v", err)
	}
}

func TestImageSurfaceClosed(t *testing.T) {
	s := NewImageSurface(2, 2)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal("Close should be idempotent")
	}
	p := NewPath()
	p.Rectangle(0, 0, 1, 1)
	if err := s.Fill(p, DefaultFillStyle()); !errs.Is(err, errs.CodeState) {
		t.Errorf("fill after close = %v", err)
	}
}

func TestImageSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewImageSurface(2, 2)
	s.Clear(Black)
	snap := s.Snapshot()
	snap.Pix[0] = 99
	if pixel(s, 0, 0)[0] != 0 {
		t.Error("modifying the snapshot changed the surface")
	}
}
