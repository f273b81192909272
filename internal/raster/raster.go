// Package raster provides scanline rasterization for 2D paths.
//
// Coverage is computed with integer arithmetic only. Vertices are quantized
// once to 24.8 fixed point, every pixel row is sampled at four sub-scanlines,
// and horizontal coverage is accumulated exactly in 1/256 pixel units. The
// same path therefore yields the same coverage bytes on every host, which
// floating-point analytic coverage cannot promise once the compiler is free
// to fuse multiply-add.
package raster

import (
	"math"
	"slices"
)

const (
	fixShift = 8
	fixOne   = 1 << fixShift

	// subSamples is the number of sub-scanlines per pixel row.
	subSamples = 4
	subStep    = fixOne / subSamples

	// maxCoord bounds vertices to ±2^22 pixels so that edge products fit
	// in int64 and positions fit in int32.
	maxCoord = 1 << 22

	// fullCoverage is the accumulator value of a fully covered pixel.
	fullCoverage = fixOne * subSamples
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero fills where the winding number is non-zero.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd fills where the winding number is odd.
	FillRuleEvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Point is a device-space vertex.
type Point struct {
	X, Y float64
}

// PathVerb is a flattened path command.
type PathVerb uint8

const (
	VerbMoveTo PathVerb = iota // consumes one point
	VerbLineTo                 // consumes one point
	VerbClose                  // consumes none
)

// PathLike is a flattened path the rasterizer can consume.
type PathLike interface {
	Verbs() []PathVerb
	Points() []Point
}

// SpanFunc receives one run of non-zero coverage on row y starting at
// pixel x. The slice is only valid for the duration of the call.
type SpanFunc func(y, x int, coverage []uint8)

type edge struct {
	x0, y0, x1, y1 int32 // y0 < y1
	dir            int8
}

type crossing struct {
	x   int32
	dir int8
}

// Rasterizer accumulates edges and converts them to coverage spans.
//
// Buffers grow as needed and are never shrunk, so a Rasterizer reused
// across fills allocates nothing in steady state. It is not safe for
// concurrent use.
type Rasterizer struct {
	width, height int

	edges     []edge
	crossings []crossing
	acc       []int32
	cov       []uint8

	minY, maxY int32
}

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{}
	r.Resize(width, height)
	return r
}

// Resize changes the clip size and clears pending edges.
func (r *Rasterizer) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width, r.height = width, height
	if cap(r.acc) < width+1 {
		r.acc = make([]int32, width+1)
		r.cov = make([]uint8, width+1)
	}
	r.acc = r.acc[:width+1]
	r.cov = r.cov[:width+1]
	r.Reset()
}

// Width returns the clip width.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the clip height.
func (r *Rasterizer) Height() int { return r.height }

// Reset discards pending edges.
func (r *Rasterizer) Reset() {
	r.edges = r.edges[:0]
	r.minY = math.MaxInt32
	r.maxY = math.MinInt32
}

// EdgeCount reports the number of non-horizontal edges pending.
func (r *Rasterizer) EdgeCount() int { return len(r.edges) }

// Quantize converts a device coordinate to 24.8 fixed point, rounding half
// up and clamping to the supported range. NaN maps to zero.
func Quantize(v float64) int32 {
	if v != v {
		return 0
	}
	if v > maxCoord {
		v = maxCoord
	} else if v < -maxCoord {
		v = -maxCoord
	}
	return int32(math.Floor(float64(v*fixOne) + 0.5))
}

// AddLine adds one edge. Horizontal edges are dropped.
func (r *Rasterizer) AddLine(p0, p1 Point) {
	r.addFixed(Quantize(p0.X), Quantize(p0.Y), Quantize(p1.X), Quantize(p1.Y))
}

func (r *Rasterizer) addFixed(x0, y0, x1, y1 int32) {
	if y0 == y1 {
		return
	}
	var dir int8 = 1
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
		dir = -1
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dir: dir})
	r.minY = min(r.minY, y0)
	r.maxY = max(r.maxY, y1)
}

// AddPolygon adds a closed contour.
func (r *Rasterizer) AddPolygon(pts []Point) {
	if len(pts) < 2 {
		return
	}
	for i := range pts {
		j := i + 1
		if j == len(pts) {
			j = 0
		}
		r.AddLine(pts[i], pts[j])
	}
}

// AddPath adds every contour of p. Open contours are closed implicitly,
// as fills always are.
func (r *Rasterizer) AddPath(p PathLike) {
	pts := p.Points()
	var (
		idx         int
		start, last Point
		have        bool
	)
	for _, v := range p.Verbs() {
		switch v {
		case VerbMoveTo:
			if have {
				r.AddLine(last, start)
			}
			start, last = pts[idx], pts[idx]
			have = true
			idx++
		case VerbLineTo:
			pt := pts[idx]
			idx++
			if !have {
				start, last, have = pt, pt, true
				continue
			}
			r.AddLine(last, pt)
			last = pt
		case VerbClose:
			if have {
				r.AddLine(last, start)
				last = start
			}
		}
	}
	if have {
		r.AddLine(last, start)
	}
}

// Fill rasterizes the pending edges with the given rule, calls span for
// every run of covered pixels, and clears the edge list.
func (r *Rasterizer) Fill(rule FillRule, span SpanFunc) {
	defer r.Reset()
	if len(r.edges) == 0 {
		return
	}

	rowStart := int(floorDiv(r.minY, fixOne))
	rowEnd := int(ceilDiv(r.maxY, fixOne))
	rowStart = max(rowStart, 0)
	rowEnd = min(rowEnd, r.height)

	limit := int32(r.width) * fixOne
	for y := rowStart; y < rowEnd; y++ {
		lo, hi := r.width, -1
		for k := 0; k < subSamples; k++ {
			sy := int32(y)*fixOne + subStep/2 + int32(k)*subStep
			r.collect(sy)
			if len(r.crossings) < 2 {
				continue
			}
			var winding int
			var startX int32
			for _, c := range r.crossings {
				was := inside(winding, rule)
				winding += int(c.dir)
				now := inside(winding, rule)
				switch {
				case !was && now:
					startX = c.x
				case was && !now:
					a, b := clampX(startX, limit), clampX(c.x, limit)
					if b > a {
						l, h := r.accumulate(a, b)
						lo, hi = min(lo, l), max(hi, h)
					}
				}
			}
		}
		if hi < lo {
			continue
		}
		r.emit(y, lo, hi, span)
	}
}

// collect gathers and sorts the edge crossings of sub-scanline sy.
func (r *Rasterizer) collect(sy int32) {
	r.crossings = r.crossings[:0]
	for _, e := range r.edges {
		if sy < e.y0 || sy >= e.y1 {
			continue
		}
		dy := int64(e.y1 - e.y0)
		x := int64(e.x0) + int64(sy-e.y0)*int64(e.x1-e.x0)/dy
		r.crossings = append(r.crossings, crossing{x: int32(x), dir: e.dir})
	}
	slices.SortFunc(r.crossings, func(a, b crossing) int {
		if a.x != b.x {
			if a.x < b.x {
				return -1
			}
			return 1
		}
		return int(a.dir) - int(b.dir)
	})
}

// accumulate adds the covered interval [a, b) of one sub-scanline and
// returns the touched pixel range.
func (r *Rasterizer) accumulate(a, b int32) (int, int) {
	p0 := int(a >> fixShift)
	p1 := int(b >> fixShift)
	if p0 == p1 {
		r.acc[p0] += b - a
		return p0, p0
	}
	r.acc[p0] += fixOne - (a & (fixOne - 1))
	for p := p0 + 1; p < p1; p++ {
		r.acc[p] += fixOne
	}
	last := p1
	if frac := b & (fixOne - 1); frac != 0 {
		r.acc[p1] += frac
	} else {
		last = p1 - 1
	}
	return p0, last
}

// emit converts accumulated coverage in [lo, hi] to bytes, reports the
// non-empty runs and clears the accumulator.
func (r *Rasterizer) emit(y, lo, hi int, span SpanFunc) {
	runStart := -1
	for x := lo; x <= hi; x++ {
		a := r.acc[x]
		r.acc[x] = 0
		c := CatchOverflow(a)
		r.cov[x] = c
		if c != 0 {
			if runStart < 0 {
				runStart = x
			}
			continue
		}
		if runStart >= 0 {
			span(y, runStart, r.cov[runStart:x])
			runStart = -1
		}
	}
	if runStart >= 0 {
		span(y, runStart, r.cov[runStart:hi+1])
	}
}

// CatchOverflow converts an accumulator value to a coverage byte. A fully
// covered pixel maps to exactly 255.
func CatchOverflow(acc int32) uint8 {
	if acc <= 0 {
		return 0
	}
	if acc >= fullCoverage {
		return 255
	}
	return uint8((acc*255 + fullCoverage/2) / fullCoverage)
}

func inside(winding int, rule FillRule) bool {
	if rule == FillRuleEvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

func clampX(x, limit int32) int32 {
	if x < 0 {
		return 0
	}
	if x > limit {
		return limit
	}
	return x
}

func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int32) int32 {
	return -floorDiv(-a, b)
}
