// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"github.com/onchainrugs/rugweave/internal/blend"
	"github.com/onchainrugs/rugweave/internal/raster"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// FillRuleNonZero uses the non-zero winding rule.
	// A point is inside if the winding number is non-zero.
	FillRuleNonZero FillRule = iota

	// FillRuleEvenOdd uses the even-odd rule.
	// A point is inside if it crosses an odd number of path segments.
	FillRuleEvenOdd
)

func (r FillRule) raster() raster.FillRule {
	if r == FillRuleEvenOdd {
		return raster.FillRuleEvenOdd
	}
	return raster.FillRuleNonZero
}

// BlendMode specifies how source and destination colors are combined.
type BlendMode uint8

const (
	// BlendSourceOver is the default Porter-Duff source-over mode.
	BlendSourceOver BlendMode = iota
	// BlendMultiply darkens the destination by the source.
	BlendMultiply
	// BlendScreen lightens the destination by the source.
	BlendScreen
	// BlendCopy replaces the destination.
	BlendCopy
)

func (m BlendMode) internal() blend.BlendMode {
	switch m {
	case BlendMultiply:
		return blend.BlendMultiply
	case BlendScreen:
		return blend.BlendScreen
	case BlendCopy:
		return blend.BlendSource
	default:
		return blend.BlendSourceOver
	}
}

// String returns the canvas name of the mode.
func (m BlendMode) String() string { return m.internal().String() }

// LineCap specifies the shape of line endpoints.
type LineCap uint8

const (
	// LineCapButt ends the line exactly at the endpoint.
	LineCapButt LineCap = iota

	// LineCapSquare extends the line by half the line width.
	LineCapSquare
)

// FillStyle defines how to fill a path.
type FillStyle struct {
	Color Color
	Rule  FillRule
	Blend BlendMode
}

// DefaultFillStyle is opaque black, non-zero, source-over.
func DefaultFillStyle() FillStyle {
	return FillStyle{Color: Black}
}

// StrokeStyle defines how to stroke a path.
type StrokeStyle struct {
	Color Color
	// Width is in device pixels and must be positive.
	Width float64
	Cap   LineCap
	Blend BlendMode
}

// Point is a position in device pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Options configures surface creation.
type Options struct {
	Width, Height int

	// Background is the initial fill. The zero value leaves the surface
	// transparent.
	Background Color
}
