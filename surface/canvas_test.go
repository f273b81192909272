// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"testing"

	"github.com/onchainrugs/rugweave/errs"
)

func newTestCanvas(w, h int) (*Canvas, *ImageSurface) {
	s := NewImageSurface(w, h)
	c := NewCanvas(s)
	c.Background(White)
	return c, s
}

func TestCanvasRectUsesTransform(t *testing.T) {
	c, s := newTestCanvas(20, 20)
	c.NoStroke()
	c.SetFill(RGB(0, 0, 255))
	c.Push()
	if err := c.Translate(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := c.Scale(2, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Rect(0, 0, 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := c.Pop(); err != nil {
		t.Fatal(err)
	}

	if got := pixel(s, 12, 12); got != [4]uint8{0, 0, 255, 255} {
		t.Errorf("inside transformed rect = %v", got)
	}
	if got := pixel(s, 5, 5); got != [4]uint8{255, 255, 255, 255} {
		t.Errorf("outside = %v", got)
	}
	if c.Transform() != Identity() {
		t.Error("Pop did not restore the transform")
	}
}

func TestCanvasDegenerateInput(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		call func(c *Canvas) error
		code errs.Code
	}{
		{"zero rect", func(c *Canvas) error { return c.Rect(0, 0, 0, 5) }, errs.CodeInvalidGeometry},
		{"nan rect", func(c *Canvas) error { return c.Rect(nan, 0, 1, 1) }, errs.CodeInvalidGeometry},
		{"zero ellipse", func(c *Canvas) error { return c.Ellipse(1, 1, 0, 0) }, errs.CodeInvalidGeometry},
		{"zero line", func(c *Canvas) error { return c.Line(1, 1, 1, 1) }, errs.CodeInvalidGeometry},
		{"short polygon", func(c *Canvas) error { return c.Polygon([]Point{{0, 0}, {1, 1}}) }, errs.CodeInvalidGeometry},
		{"bad weight", func(c *Canvas) error { return c.StrokeWeight(-1) }, errs.CodeInvalidGeometry},
		{"inf translate", func(c *Canvas) error { return c.Translate(math.Inf(1), 0) }, errs.CodeInvalidGeometry},
		{"zero scale", func(c *Canvas) error { return c.Scale(0, 1) }, errs.CodeInvalidGeometry},
		{"pop empty", func(c *Canvas) error { return c.Pop() }, errs.CodeState},
		{"end without begin", func(c *Canvas) error { return c.EndShape(false) }, errs.CodeState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCanvas(4, 4)
			err := tt.call(c)
			if !errs.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if c.Err() != err {
				t.Error("Err() should report the first failure")
			}
		})
	}
}

func TestCanvasFirstErrorSticks(t *testing.T) {
	c, _ := newTestCanvas(4, 4)
	first := c.Rect(0, 0, 0, 1)
	_ = c.Line(0, 0, 0, 0)
	if c.Err() != first {
		t.Errorf("Err() = %v, want first error %v", c.Err(), first)
	}
}

func TestCanvasShape(t *testing.T) {
	c, s := newTestCanvas(10, 10)
	c.NoStroke()
	c.SetFill(Black)
	c.BeginShape()
	c.Vertex(0, 0)
	c.Vertex(10, 0)
	c.Vertex(10, 10)
	c.Vertex(0, 10)
	if err := c.EndShape(false); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 5, 5); got != [4]uint8{0, 0, 0, 255} {
		t.Errorf("shape interior = %v", got)
	}

	c.BeginShape()
	c.Vertex(1, 1)
	if err := c.EndShape(true); !errs.Is(err, errs.CodeInvalidGeometry) {
		t.Errorf("single-vertex shape error = %v", err)
	}
}

func TestCanvasArcFillsWedge(t *testing.T) {
	c, s := newTestCanvas(40, 40)
	c.NoStroke()
	c.SetFill(Black)
	// Right half of a circle.
	if err := c.Arc(20, 20, 30, 30, -math.Pi/2, math.Pi/2); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 28, 20); got[0] != 0 {
		t.Errorf("right half not filled: %v", got)
	}
	if got := pixel(s, 12, 20); got[0] != 255 {
		t.Errorf("left half filled: %v", got)
	}
}

func TestCanvasLineAndBezierStroke(t *testing.T) {
	c, s := newTestCanvas(20, 20)
	c.NoFill()
	c.SetStroke(Black)
	if err := c.StrokeWeight(2); err != nil {
		t.Fatal(err)
	}
	if err := c.Line(2, 10, 18, 10); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 10, 9); got[0] != 0 {
		t.Errorf("line pixel = %v", got)
	}
	if err := c.Bezier(2, 2, 6, 6, 12, 6, 18, 2); err != nil {
		t.Fatal(err)
	}
}

func TestCanvasBlendMode(t *testing.T) {
	c, s := newTestCanvas(4, 4)
	c.Background(RGB(100, 100, 100))
	c.NoStroke()
	c.SetBlendMode(BlendMultiply)
	c.SetFill(RGB(128, 128, 128))
	if err := c.Rect(0, 0, 4, 4); err != nil {
		t.Fatal(err)
	}
	if got := pixel(s, 1, 1); got[0] != 50 {
		t.Errorf("multiply result = %v, want 50", got)
	}
}
