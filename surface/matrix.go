// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

// Matrix is a 2D affine transform without rotation or shear:
//
//	x' = SX*x + TX
//	y' = SY*y + TY
//
// The renderer only ever translates and scales, and keeping the transform
// axis-aligned keeps rectangles axis-aligned in device space.
type Matrix struct {
	SX, SY float64
	TX, TY float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{SX: 1, SY: 1} }

// Apply maps a point.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return float64(m.SX*x) + m.TX, float64(m.SY*y) + m.TY
}

// Translate returns m followed by a translation in m's local space.
func (m Matrix) Translate(dx, dy float64) Matrix {
	m.TX += float64(m.SX * dx)
	m.TY += float64(m.SY * dy)
	return m
}

// Scale returns m followed by a scale in m's local space.
func (m Matrix) Scale(sx, sy float64) Matrix {
	m.SX = float64(m.SX * sx)
	m.SY = float64(m.SY * sy)
	return m
}

// ScaleLength converts a local length to device pixels using the mean
// of the two axis scales.
func (m Matrix) ScaleLength(l float64) float64 {
	s := float64(abs(m.SX)+abs(m.SY)) / 2
	return float64(l * s)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
