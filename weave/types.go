// Package weave draws the body of a rug: warp and weft cells per stripe,
// the woven text, a multiply texture pass, the fringe along the short
// edges and the selvedge loops along the long ones.
//
// Everything is drawn in rug space through a surface.Canvas. The only
// sources of variation are the seeded noise.Random stream and the
// noise.Perlin field handed to New, consumed in a fixed order, so equal
// inputs always produce equal draw calls.
package weave

import (
	"strings"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/glyph"
	"github.com/onchainrugs/rugweave/surface"
)

// WeaveType selects how weft colors are derived for a stripe.
type WeaveType string

const (
	Solid    WeaveType = "solid"
	Textured WeaveType = "textured"
	Mixed    WeaveType = "mixed"
)

// ParseWeaveType accepts the long names and the one-letter script codes.
// The empty string is solid.
func ParseWeaveType(s string) (WeaveType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "s", "solid":
		return Solid, nil
	case "t", "textured":
		return Textured, nil
	case "m", "mixed":
		return Mixed, nil
	}
	return "", errs.New(errs.CodeValidation, "unknown weave type %q", s)
}

// Code returns the one-letter form used in on-chain scripts.
func (w WeaveType) Code() string {
	switch w {
	case Textured:
		return "t"
	case Mixed:
		return "m"
	}
	return "s"
}

// DefaultWeaveValue is used when a stripe carries no weave value.
const DefaultWeaveValue = 0.3

// Stripe is one horizontal band of the body with its colors resolved.
type Stripe struct {
	Y, Height    float64
	Primary      surface.Color
	Secondary    surface.Color
	HasSecondary bool
	Weave        WeaveType
	WeaveValue   float64
}

// Input is everything the generator draws from besides the noise engines.
type Input struct {
	Stripes       []Stripe
	TextRows      []string
	Glyphs        glyph.Map
	WarpThickness int
	// Palette feeds the fringe colors and the text contrast colors.
	Palette []surface.Color
}

// Dimensions fixes the body size and the margins around it.
type Dimensions struct {
	Width         int
	Height        int
	Fringe        int
	WeftThickness int
	TextScale     int
	FrameMargin   int
}

// Size returns the full rug space: body, two fringe lengths on every side
// and the frame margin.
func (d Dimensions) Size() (w, h float64) {
	pad := float64(4*d.Fringe + 2*d.FrameMargin)
	return float64(d.Width) + pad, float64(d.Height) + pad
}

// Origin returns the top-left corner of the body in rug space.
func (d Dimensions) Origin() (x, y float64) {
	o := float64(d.FrameMargin + 2*d.Fringe)
	return o, o
}

// Validate rejects non-positive sizes.
func (d Dimensions) Validate() error {
	switch {
	case d.Width <= 0 || d.Height <= 0:
		return errs.New(errs.CodeValidation, "body size %dx%d must be positive", d.Width, d.Height)
	case d.WeftThickness <= 0:
		return errs.New(errs.CodeValidation, "weft thickness %d must be positive", d.WeftThickness)
	case d.TextScale <= 0:
		return errs.New(errs.CodeValidation, "text scale %d must be positive", d.TextScale)
	case d.Fringe < 0 || d.FrameMargin < 0:
		return errs.New(errs.CodeValidation, "fringe %d and frame margin %d must not be negative", d.Fringe, d.FrameMargin)
	}
	return nil
}
