// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/internal/detmath"
	"github.com/onchainrugs/rugweave/internal/raster"
)

// Curve and arc flattening limits. Segment counts depend only on the
// geometry, never on the host.
const (
	minCurveSegments = 4
	maxCurveSegments = 64
	curveSegmentLen  = 4.0

	minArcSegments = 8
	maxArcSegments = 256
	arcSegmentLen  = 1.5
)

// Path represents a vector path for drawing operations.
//
// Curves and arcs are flattened into line segments as they are added, so
// a Path always holds only MoveTo, LineTo and Close verbs and can be handed
// straight to the rasterizer.
//
// Example:
//
//	p := surface.NewPath()
//	p.MoveTo(100, 100)
//	p.LineTo(200, 100)
//	p.LineTo(150, 200)
//	p.Close()
//
//	s.Fill(p, style)
type Path struct {
	verbs  []raster.PathVerb
	points []raster.Point
	start  raster.Point
	cur    raster.Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]raster.PathVerb, 0, 16),
		points: make([]raster.Point, 0, 16),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.verbs = append(p.verbs, raster.VerbMoveTo)
	p.points = append(p.points, raster.Point{X: x, Y: y})
	p.start = raster.Point{X: x, Y: y}
	p.cur = p.start
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return
	}
	p.verbs = append(p.verbs, raster.VerbLineTo)
	p.points = append(p.points, raster.Point{X: x, Y: y})
	p.cur = raster.Point{X: x, Y: y}
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(cx, cy)
	}
	x0, y0 := p.cur.X, p.cur.Y
	n := curveSegments(math.Hypot(cx-x0, cy-y0) + math.Hypot(x-cx, y-cy))
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		ax, ay := lerp(x0, cx, t), lerp(y0, cy, t)
		bx, by := lerp(cx, x, t), lerp(cy, y, t)
		p.LineTo(lerp(ax, bx, t), lerp(ay, by, t))
	}
	p.LineTo(x, y)
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	x0, y0 := p.cur.X, p.cur.Y
	n := curveSegments(math.Hypot(c1x-x0, c1y-y0) + math.Hypot(c2x-c1x, c2y-c1y) + math.Hypot(x-c2x, y-c2y))
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		ax, ay := lerp(x0, c1x, t), lerp(y0, c1y, t)
		bx, by := lerp(c1x, c2x, t), lerp(c1y, c2y, t)
		cx, cy := lerp(c2x, x, t), lerp(c2y, y, t)
		abx, aby := lerp(ax, bx, t), lerp(ay, by, t)
		bcx, bcy := lerp(bx, cx, t), lerp(by, cy, t)
		p.LineTo(lerp(abx, bcx, t), lerp(aby, bcy, t))
	}
	p.LineTo(x, y)
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.verbs) == 0 {
		return
	}
	p.verbs = append(p.verbs, raster.VerbClose)
	p.cur = p.start
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start, p.cur = raster.Point{}, raster.Point{}
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the path verbs.
func (p *Path) Verbs() []raster.PathVerb {
	return p.verbs
}

// Points returns the path points.
func (p *Path) Points() []raster.Point {
	return p.points
}

// Verify Path implements raster.PathLike.
var _ raster.PathLike = (*Path)(nil)

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{
		verbs:  make([]raster.PathVerb, len(p.verbs)),
		points: make([]raster.Point, len(p.points)),
		start:  p.start,
		cur:    p.cur,
	}
	copy(c.verbs, p.verbs)
	copy(c.points, p.points)
	return c
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return Point{X: p.cur.X, Y: p.cur.Y}
}

// Transform maps every point through m in place.
func (p *Path) Transform(m Matrix) {
	for i, pt := range p.points {
		x, y := m.Apply(pt.X, pt.Y)
		p.points[i] = raster.Point{X: x, Y: y}
	}
	p.start.X, p.start.Y = m.Apply(p.start.X, p.start.Y)
	p.cur.X, p.cur.Y = m.Apply(p.cur.X, p.cur.Y)
}

// Rectangle adds an axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Polygon adds a closed polygon through pts.
func (p *Path) Polygon(pts []Point) {
	if len(pts) == 0 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// Circle adds a circle.
func (p *Path) Circle(cx, cy, r float64) {
	p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse with radii rx and ry.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	n := arcSegments(max(math.Abs(rx), math.Abs(ry)), detmath.TwoPi)
	for i := 0; i < n; i++ {
		a := float64(detmath.TwoPi*float64(i)) / float64(n)
		x := cx + float64(rx*detmath.Cos(a))
		y := cy + float64(ry*detmath.Sin(a))
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
}

// Arc adds an open elliptical arc from angle a0 to a1 (radians, clockwise
// in screen space). When a1 < a0 the arc continues through 2π, as canvas
// arcs do.
func (p *Path) Arc(cx, cy, rx, ry, a0, a1 float64) {
	p.arcPoints(cx, cy, rx, ry, a0, a1, true)
}

// Wedge adds a closed pie slice: the center, the arc, and back. This is
// the shape a filled canvas arc produces.
func (p *Path) Wedge(cx, cy, rx, ry, a0, a1 float64) {
	p.MoveTo(cx, cy)
	p.arcPoints(cx, cy, rx, ry, a0, a1, false)
	p.Close()
}

func (p *Path) arcPoints(cx, cy, rx, ry, a0, a1 float64, move bool) {
	for a1 < a0 {
		a1 += detmath.TwoPi
	}
	sweep := a1 - a0
	if sweep > detmath.TwoPi {
		sweep = detmath.TwoPi
	}
	n := arcSegments(max(math.Abs(rx), math.Abs(ry)), sweep)
	for i := 0; i <= n; i++ {
		a := a0 + float64(sweep*float64(i))/float64(n)
		x := cx + float64(rx*detmath.Cos(a))
		y := cy + float64(ry*detmath.Sin(a))
		if i == 0 && move {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
}

// Bounds returns the bounding box of the path.
func (p *Path) Bounds() (minX, minY, maxX, maxY float64) {
	if len(p.points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = p.points[0].X, p.points[0].Y
	maxX, maxY = minX, minY
	for _, pt := range p.points[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return minX, minY, maxX, maxY
}

// Validate reports an errs.CodeInvalidGeometry error if the path is empty
// or holds a non-finite coordinate.
func (p *Path) Validate() error {
	if p == nil || len(p.verbs) == 0 {
		return errs.New(errs.CodeInvalidGeometry, "empty path")
	}
	for i, pt := range p.points {
		if !finite(pt.X) || !finite(pt.Y) {
			return errs.New(errs.CodeInvalidGeometry, "point %d is not finite (%v, %v)", i, pt.X, pt.Y)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func lerp(a, b, t float64) float64 {
	return a + float64((b-a)*t)
}

func curveSegments(length float64) int {
	if !finite(length) {
		return minCurveSegments
	}
	n := int(math.Ceil(length / curveSegmentLen))
	return min(max(n, minCurveSegments), maxCurveSegments)
}

func arcSegments(radius, sweep float64) int {
	if !finite(radius) || !finite(sweep) {
		return minArcSegments
	}
	n := int(math.Ceil(float64(radius*sweep) / arcSegmentLen))
	return min(max(n, minArcSegments), maxArcSegments)
}
