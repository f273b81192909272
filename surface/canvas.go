// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"

	"github.com/onchainrugs/rugweave/errs"
)

// drawState is the part of the canvas saved by Push and restored by Pop.
type drawState struct {
	fill     Color
	doFill   bool
	stroke   Color
	doStroke bool
	weight   float64
	blend    BlendMode
	m        Matrix
}

// Canvas is a stateful drawing API over a Surface, modeled on the
// immediate-mode sketch APIs generative artwork is usually written
// against: set fill and stroke, then emit shapes.
//
// Coordinates pass through the current transform before they reach the
// surface. Every drawing call returns an error; the first one is also kept
// and reported by Err.
//
// A Canvas is not safe for concurrent use.
type Canvas struct {
	s     Surface
	st    drawState
	stack []drawState

	shape   []Point
	inShape bool

	err error
}

// NewCanvas wraps s. The initial state fills white, strokes black at one
// unit wide, composites source-over and uses the identity transform.
func NewCanvas(s Surface) *Canvas {
	return &Canvas{
		s: s,
		st: drawState{
			fill:     White,
			doFill:   true,
			stroke:   Black,
			doStroke: true,
			weight:   1,
			m:        Identity(),
		},
	}
}

// Surface returns the underlying surface.
func (c *Canvas) Surface() Surface { return c.s }

// Width returns the device width.
func (c *Canvas) Width() int { return c.s.Width() }

// Height returns the device height.
func (c *Canvas) Height() int { return c.s.Height() }

// Err returns the first error any drawing call produced.
func (c *Canvas) Err() error { return c.err }

func (c *Canvas) fail(err error) error {
	if err != nil && c.err == nil {
		c.err = err
	}
	return err
}

// Background clears the whole surface, ignoring the transform.
func (c *Canvas) Background(col Color) {
	c.s.Clear(col)
}

// SetFill enables filling with col.
func (c *Canvas) SetFill(col Color) {
	c.st.fill = col
	c.st.doFill = true
}

// NoFill disables filling.
func (c *Canvas) NoFill() { c.st.doFill = false }

// SetStroke enables stroking with col.
func (c *Canvas) SetStroke(col Color) {
	c.st.stroke = col
	c.st.doStroke = true
}

// NoStroke disables stroking.
func (c *Canvas) NoStroke() { c.st.doStroke = false }

// StrokeWeight sets the stroke width in local units.
func (c *Canvas) StrokeWeight(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "stroke weight %v must be positive", w))
	}
	c.st.weight = w
	return nil
}

// SetBlendMode selects the compositing mode for later shapes.
func (c *Canvas) SetBlendMode(m BlendMode) { c.st.blend = m }

// Push saves the drawing state.
func (c *Canvas) Push() {
	c.stack = append(c.stack, c.st)
}

// Pop restores the state saved by the matching Push.
func (c *Canvas) Pop() error {
	if len(c.stack) == 0 {
		return c.fail(errs.New(errs.CodeState, "pop without matching push"))
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// Translate moves the origin.
func (c *Canvas) Translate(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "translate(%v, %v) is not finite", dx, dy))
	}
	c.st.m = c.st.m.Translate(dx, dy)
	return nil
}

// Scale scales the axes.
func (c *Canvas) Scale(sx, sy float64) error {
	if !finite(sx) || !finite(sy) || sx == 0 || sy == 0 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "scale(%v, %v) is degenerate", sx, sy))
	}
	c.st.m = c.st.m.Scale(sx, sy)
	return nil
}

// Transform returns the current transform.
func (c *Canvas) Transform() Matrix { return c.st.m }

// Rect draws an axis-aligned rectangle with its corner at (x, y).
// Negative sizes extend left or up.
func (c *Canvas) Rect(x, y, w, h float64) error {
	if !allFinite(x, y, w, h) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "rect(%v, %v, %v, %v) is not finite", x, y, w, h))
	}
	if w == 0 || h == 0 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "rect has zero size %vx%v", w, h))
	}
	p := NewPath()
	p.Rectangle(x, y, w, h)
	p.Transform(c.st.m)
	return c.draw(p)
}

// Ellipse draws an ellipse centered at (cx, cy) with diameters w and h.
func (c *Canvas) Ellipse(cx, cy, w, h float64) error {
	if !allFinite(cx, cy, w, h) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "ellipse(%v, %v, %v, %v) is not finite", cx, cy, w, h))
	}
	if w == 0 || h == 0 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "ellipse has zero size %vx%v", w, h))
	}
	dx, dy := c.st.m.Apply(cx, cy)
	p := NewPath()
	p.Ellipse(dx, dy, math.Abs(float64(w*c.st.m.SX))/2, math.Abs(float64(h*c.st.m.SY))/2)
	return c.draw(p)
}

// Arc draws part of an ellipse centered at (cx, cy) with diameters w and
// h, from angle a0 to a1 in radians. The fill is the pie wedge and the
// stroke is the open arc.
func (c *Canvas) Arc(cx, cy, w, h, a0, a1 float64) error {
	if !allFinite(cx, cy, w, h, a0, a1) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "arc(%v, %v, %v, %v, %v, %v) is not finite", cx, cy, w, h, a0, a1))
	}
	if w == 0 || h == 0 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "arc has zero size %vx%v", w, h))
	}
	dx, dy := c.st.m.Apply(cx, cy)
	rx := math.Abs(float64(w*c.st.m.SX)) / 2
	ry := math.Abs(float64(h*c.st.m.SY)) / 2

	if c.st.doFill {
		p := NewPath()
		p.Wedge(dx, dy, rx, ry, a0, a1)
		if err := c.s.Fill(p, c.fillStyle()); err != nil {
			return c.fail(err)
		}
	}
	if c.st.doStroke {
		p := NewPath()
		p.Arc(dx, dy, rx, ry, a0, a1)
		if err := c.s.Stroke(p, c.strokeStyle()); err != nil {
			return c.fail(err)
		}
	}
	return nil
}

// Line strokes a segment. Lines are never filled.
func (c *Canvas) Line(x1, y1, x2, y2 float64) error {
	if !allFinite(x1, y1, x2, y2) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "line(%v, %v, %v, %v) is not finite", x1, y1, x2, y2))
	}
	if x1 == x2 && y1 == y2 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "line has zero length"))
	}
	if !c.st.doStroke {
		return nil
	}
	p := NewPath()
	p.MoveTo(x1, y1)
	p.LineTo(x2, y2)
	p.Transform(c.st.m)
	return c.fail(c.s.Stroke(p, c.strokeStyle()))
}

// Polygon draws a closed polygon.
func (c *Canvas) Polygon(pts []Point) error {
	if len(pts) < 3 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "polygon needs at least 3 points, got %d", len(pts)))
	}
	for _, pt := range pts {
		if !allFinite(pt.X, pt.Y) {
			return c.fail(errs.New(errs.CodeInvalidGeometry, "polygon point (%v, %v) is not finite", pt.X, pt.Y))
		}
	}
	p := NewPath()
	p.Polygon(pts)
	p.Transform(c.st.m)
	return c.draw(p)
}

// Bezier draws a cubic curve from (x1, y1) to (x4, y4).
func (c *Canvas) Bezier(x1, y1, x2, y2, x3, y3, x4, y4 float64) error {
	if !allFinite(x1, y1, x2, y2, x3, y3, x4, y4) {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "bezier control point is not finite"))
	}
	p := NewPath()
	p.MoveTo(x1, y1)
	p.CubicTo(x2, y2, x3, y3, x4, y4)
	p.Transform(c.st.m)
	return c.drawOpen(p)
}

// BeginShape starts collecting vertices.
func (c *Canvas) BeginShape() {
	c.shape = c.shape[:0]
	c.inShape = true
}

// Vertex adds a vertex to the current shape.
func (c *Canvas) Vertex(x, y float64) {
	if !c.inShape {
		c.BeginShape()
	}
	c.shape = append(c.shape, Point{X: x, Y: y})
}

// EndShape draws the collected vertices. The fill always closes the
// outline; the stroke closes it only when closed is true.
func (c *Canvas) EndShape(closed bool) error {
	if !c.inShape {
		return c.fail(errs.New(errs.CodeState, "endShape without beginShape"))
	}
	c.inShape = false
	if len(c.shape) < 2 {
		return c.fail(errs.New(errs.CodeInvalidGeometry, "shape needs at least 2 vertices, got %d", len(c.shape)))
	}
	p := NewPath()
	for i, pt := range c.shape {
		if !allFinite(pt.X, pt.Y) {
			return c.fail(errs.New(errs.CodeInvalidGeometry, "shape vertex %d is not finite", i))
		}
		p.LineTo(pt.X, pt.Y)
	}
	if closed {
		p.Close()
	}
	p.Transform(c.st.m)
	return c.drawOpen(p)
}

func (c *Canvas) fillStyle() FillStyle {
	return FillStyle{Color: c.st.fill, Rule: FillRuleNonZero, Blend: c.st.blend}
}

func (c *Canvas) strokeStyle() StrokeStyle {
	return StrokeStyle{
		Color: c.st.stroke,
		Width: c.st.m.ScaleLength(c.st.weight),
		Cap:   LineCapSquare,
		Blend: c.st.blend,
	}
}

// draw fills then strokes a closed device-space path.
func (c *Canvas) draw(p *Path) error {
	if c.st.doFill {
		if err := c.s.Fill(p, c.fillStyle()); err != nil {
			return c.fail(err)
		}
	}
	if c.st.doStroke {
		if err := c.s.Stroke(p, c.strokeStyle()); err != nil {
			return c.fail(err)
		}
	}
	return nil
}

// drawOpen fills a possibly open path, which the rasterizer closes, and
// strokes it as given.
func (c *Canvas) drawOpen(p *Path) error {
	if c.st.doFill && len(p.Points()) >= 3 {
		if err := c.s.Fill(p, c.fillStyle()); err != nil {
			return c.fail(err)
		}
	}
	if c.st.doStroke {
		if err := c.s.Stroke(p, c.strokeStyle()); err != nil {
			return c.fail(err)
		}
	}
	return nil
}

func allFinite(vs ...float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}
