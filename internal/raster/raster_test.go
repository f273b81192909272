package raster

import (
	"math"
	"testing"
)

type grid struct {
	w, h int
	px   []uint8
}

func newGrid(w, h int) *grid { return &grid{w: w, h: h, px: make([]uint8, w*h)} }

func (g *grid) span(y, x int, cov []uint8) {
	for i, c := range cov {
		g.px[y*g.w+x+i] = c
	}
}

func (g *grid) at(x, y int) uint8 { return g.px[y*g.w+x] }

func (g *grid) sum() float64 {
	var s float64
	for _, c := range g.px {
		s += float64(c) / 255
	}
	return s
}

func rect(x, y, w, h float64) []Point {
	return []Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

func TestFillAlignedRect(t *testing.T) {
	r := NewRasterizer(6, 6)
	g := newGrid(6, 6)
	r.AddPolygon(rect(1, 1, 2, 2))
	r.Fill(FillRuleNonZero, g.span)

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := uint8(0)
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = 255
			}
			if got := g.at(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFillPartialCoverage(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want uint8
	}{
		{"half width", rect(0, 0, 0.5, 1), 128},
		{"quarter height", rect(0, 0, 1, 0.25), 64},
		{"full", rect(0, 0, 1, 1), 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRasterizer(2, 2)
			g := newGrid(2, 2)
			r.AddPolygon(tt.pts)
			r.Fill(FillRuleNonZero, g.span)
			if got := g.at(0, 0); got != tt.want {
				t.Errorf("coverage = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFillRules(t *testing.T) {
	outer := rect(0, 0, 8, 8)
	inner := rect(2, 2, 4, 4)

	tests := []struct {
		name string
		rule FillRule
		want uint8
	}{
		{"nonzero same winding fills hole", FillRuleNonZero, 255},
		{"evenodd leaves hole", FillRuleEvenOdd, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRasterizer(8, 8)
			g := newGrid(8, 8)
			r.AddPolygon(outer)
			r.AddPolygon(inner)
			r.Fill(tt.rule, g.span)
			if got := g.at(4, 4); got != tt.want {
				t.Errorf("center = %d, want %d", got, tt.want)
			}
			if got := g.at(0, 0); got != 255 {
				t.Errorf("ring = %d, want 255", got)
			}
		})
	}
}

func TestFillClipsToBounds(t *testing.T) {
	r := NewRasterizer(4, 4)
	g := newGrid(4, 4)
	r.AddPolygon(rect(-10, -10, 12, 100))
	r.Fill(FillRuleNonZero, g.span)
	if got := g.at(1, 3); got != 255 {
		t.Errorf("inside clip = %d, want 255", got)
	}
	if got := g.at(2, 0); got != 0 {
		t.Errorf("outside shape = %d, want 0", got)
	}
}

func TestFillTriangleArea(t *testing.T) {
	r := NewRasterizer(64, 64)
	g := newGrid(64, 64)
	r.AddPolygon([]Point{{3.3, 2.1}, {60.7, 10.4}, {20.2, 58.9}})
	r.Fill(FillRuleNonZero, g.span)

	// Shoelace area.
	want := math.Abs((3.3*(10.4-58.9) + 60.7*(58.9-2.1) + 20.2*(2.1-10.4)) / 2)
	if got := g.sum(); math.Abs(got-want) > want*0.01 {
		t.Errorf("covered area = %.2f, want %.2f", got, want)
	}
}

func TestFillIsDeterministic(t *testing.T) {
	render := func() []uint8 {
		r := NewRasterizer(32, 32)
		g := newGrid(32, 32)
		r.AddPolygon([]Point{{1.37, 0.2}, {30.9, 5.55}, {17.01, 31.3}, {4.4, 20.123}})
		r.Fill(FillRuleNonZero, g.span)
		return g.px
	}
	a, b := render(), render()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs: %d != %d", i, a[i], b[i])
		}
	}
}

func TestFillResetsEdges(t *testing.T) {
	r := NewRasterizer(4, 4)
	r.AddPolygon(rect(0, 0, 2, 2))
	if r.EdgeCount() != 2 {
		t.Fatalf("EdgeCount = %d, want 2 (horizontal edges dropped)", r.EdgeCount())
	}
	r.Fill(FillRuleNonZero, func(int, int, []uint8) {})
	if r.EdgeCount() != 0 {
		t.Error("Fill should clear pending edges")
	}
	called := false
	r.Fill(FillRuleNonZero, func(int, int, []uint8) { called = true })
	if called {
		t.Error("empty fill should not emit spans")
	}
}

type testPath struct {
	verbs []PathVerb
	pts   []Point
}

func (p testPath) Verbs() []PathVerb { return p.verbs }
func (p testPath) Points() []Point   { return p.pts }

func TestAddPathClosesContours(t *testing.T) {
	p := testPath{
		verbs: []PathVerb{VerbMoveTo, VerbLineTo, VerbLineTo, VerbLineTo},
		pts:   rect(0, 0, 3, 3),
	}
	r := NewRasterizer(4, 4)
	g := newGrid(4, 4)
	r.AddPath(p)
	r.Fill(FillRuleNonZero, g.span)
	if got := g.at(1, 1); got != 255 {
		t.Errorf("open contour not closed: %d", got)
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want int32
	}{
		{"zero", 0, 0},
		{"one", 1, 256},
		{"half step rounds up", 0.5 / 256, 1},
		{"negative", -1.25, -320},
		{"clamped", 1e12, maxCoord * 256},
		{"nan", math.NaN(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantize(tt.v); got != tt.want {
				t.Errorf("Quantize(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func TestCatchOverflow(t *testing.T) {
	tests := []struct {
		acc  int32
		want uint8
	}{
		{-5, 0},
		{0, 0},
		{512, 128},
		{fullCoverage, 255},
		{fullCoverage * 2, 255},
	}
	for _, tt := range tests {
		if got := CatchOverflow(tt.acc); got != tt.want {
			t.Errorf("CatchOverflow(%d) = %d, want %d", tt.acc, got, tt.want)
		}
	}
}
