// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"testing"

	"github.com/onchainrugs/rugweave/internal/raster"
)

func TestPathRectangle(t *testing.T) {
	p := NewPath()
	p.Rectangle(1, 2, 3, 4)

	wantVerbs := []raster.PathVerb{raster.VerbMoveTo, raster.VerbLineTo, raster.VerbLineTo, raster.VerbLineTo, raster.VerbClose}
	if len(p.Verbs()) != len(wantVerbs) {
		t.Fatalf("verbs = %v", p.Verbs())
	}
	minX, minY, maxX, maxY := p.Bounds()
	if minX != 1 || minY != 2 || maxX != 4 || maxY != 6 {
		t.Errorf("Bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}

func TestPathCurvesAreFlattened(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.CubicTo(10, 40, 90, 40, 100, 0)
	p.QuadTo(120, 20, 140, 0)

	for _, v := range p.Verbs() {
		if v != raster.VerbMoveTo && v != raster.VerbLineTo && v != raster.VerbClose {
			t.Fatalf("unexpected verb %v", v)
		}
	}
	if got := p.CurrentPoint(); got != Pt(140, 0) {
		t.Errorf("end point = %v", got)
	}
	if n := len(p.Points()); n < 1+minCurveSegments*2 {
		t.Errorf("too few points: %d", n)
	}
}

func TestPathEllipseStaysOnCurve(t *testing.T) {
	p := NewPath()
	p.Ellipse(50, 50, 20, 10)
	for _, pt := range p.Points() {
		dx, dy := (pt.X-50)/20, (pt.Y-50)/10
		if r := dx*dx + dy*dy; math.Abs(r-1) > 1e-9 {
			t.Fatalf("point %v off ellipse (%v)", pt, r)
		}
	}
}

func TestPathWedgeWrapsNegativeSweep(t *testing.T) {
	p := NewPath()
	// From +π/2 to -π/2 sweeps through π: the left half.
	p.Wedge(0, 0, 10, 10, math.Pi/2, -math.Pi/2)
	minX, _, maxX, _ := p.Bounds()
	if maxX > 1e-9 {
		t.Errorf("left wedge reaches x=%v", maxX)
	}
	if minX > -9.9 {
		t.Errorf("left wedge only reaches x=%v", minX)
	}
}

func TestPathTransformAndClone(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 1, 1)
	c := p.Clone()
	p.Transform(Identity().Translate(10, 20).Scale(2, 3))

	minX, minY, maxX, maxY := p.Bounds()
	if minX != 10 || minY != 20 || maxX != 12 || maxY != 23 {
		t.Errorf("transformed bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
	if _, _, cx, _ := c.Bounds(); cx != 1 {
		t.Error("Clone shares storage with the original")
	}
}

func TestPathClear(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 1, 1)
	p.Clear()
	if !p.IsEmpty() || p.Validate() == nil {
		t.Error("cleared path should be empty and invalid")
	}
}
