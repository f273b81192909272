// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/internal/raster"
)

// expandStroke converts a stroked path into a fillable outline.
//
// Every segment becomes its own quad, all wound the same way, so filling
// the result with the non-zero rule yields the union of the segments.
// With LineCapSquare each quad is extended by half the width at both ends,
// which also closes the gaps at polyline corners.
func expandStroke(path *Path, style StrokeStyle) (*Path, error) {
	if !(style.Width > 0) || math.IsInf(style.Width, 0) {
		return nil, errs.New(errs.CodeInvalidGeometry, "stroke width %v must be positive", style.Width)
	}
	hw := style.Width / 2
	out := NewPath()

	pts := path.Points()
	var (
		idx         int
		start, last raster.Point
		have        bool
	)
	for _, v := range path.Verbs() {
		switch v {
		case raster.VerbMoveTo:
			start, last = pts[idx], pts[idx]
			have = true
			idx++
		case raster.VerbLineTo:
			pt := pts[idx]
			idx++
			if have {
				strokeSegment(out, last, pt, hw, style.Cap)
			}
			last, have = pt, true
		case raster.VerbClose:
			if have {
				strokeSegment(out, last, start, hw, style.Cap)
				last = start
			}
		}
	}
	if out.IsEmpty() {
		return nil, errs.New(errs.CodeInvalidGeometry, "stroke has no non-degenerate segment")
	}
	return out, nil
}

func strokeSegment(out *Path, p0, p1 raster.Point, hw float64, lineCap LineCap) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := math.Sqrt(float64(dx*dx) + float64(dy*dy))
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	nx, ny := float64(-uy*hw), float64(ux*hw)

	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	if lineCap == LineCapSquare {
		ex, ey := float64(ux*hw), float64(uy*hw)
		x0, y0 = x0-ex, y0-ey
		x1, y1 = x1+ex, y1+ey
	}
	out.MoveTo(x0+nx, y0+ny)
	out.LineTo(x1+nx, y1+ny)
	out.LineTo(x1-nx, y1-ny)
	out.LineTo(x0-nx, y0-ny)
	out.Close()
}
