// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/internal/blend"
)

// Color is a straight-alpha 8-bit RGBA color.
//
// Channel math on colors follows the p5 conventions the rug artwork was
// designed with: values are computed as floats, then rounded half up and
// clamped to a byte.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{}
)

// RGB builds an opaque color from float channels.
func RGB(r, g, b float64) Color {
	return Color{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: 255}
}

// RGBA builds a color from float channels; alpha is also on the 0-255 scale.
func RGBA(r, g, b, a float64) Color {
	return Color{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: clamp255(a)}
}

// Gray builds an opaque gray.
func Gray(v float64) Color { return RGB(v, v, v) }

// ParseColor parses a CSS-style color: #rgb, #rgba, #rrggbb, #rrggbbaa,
// rgb(r,g,b) or rgba(r,g,b,a) with a in [0,1]. Anything else fails with
// errs.CodeInvalidColor.
func ParseColor(s string) (Color, error) {
	in := strings.TrimSpace(s)
	if strings.HasPrefix(in, "#") {
		return parseHex(s, in[1:])
	}
	lower := strings.ToLower(in)
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		return parseFunc(s, lower[5:len(lower)-1], true)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseFunc(s, lower[4:len(lower)-1], false)
	}
	return Color{}, errs.New(errs.CodeInvalidColor, "unrecognized color %q", s)
}

// MustParseColor is like ParseColor but panics on error. It is meant for
// package-level tables of known-good literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(orig, hex string) (Color, error) {
	for _, r := range hex {
		if !isHexDigit(r) {
			return Color{}, errs.New(errs.CodeInvalidColor, "bad hex digit in %q", orig)
		}
	}
	c := Color{A: 255}
	switch len(hex) {
	case 3, 4:
		c.R = hexNibble(hex[0]) * 17
		c.G = hexNibble(hex[1]) * 17
		c.B = hexNibble(hex[2]) * 17
		if len(hex) == 4 {
			c.A = hexNibble(hex[3]) * 17
		}
	case 6, 8:
		c.R = hexNibble(hex[0])<<4 | hexNibble(hex[1])
		c.G = hexNibble(hex[2])<<4 | hexNibble(hex[3])
		c.B = hexNibble(hex[4])<<4 | hexNibble(hex[5])
		if len(hex) == 8 {
			c.A = hexNibble(hex[6])<<4 | hexNibble(hex[7])
		}
	default:
		return Color{}, errs.New(errs.CodeInvalidColor, "hex color %q must have 3, 4, 6 or 8 digits", orig)
	}
	return c, nil
}

func parseFunc(orig, body string, withAlpha bool) (Color, error) {
	parts := strings.Split(body, ",")
	want := 3
	if withAlpha {
		want = 4
	}
	if len(parts) != want {
		return Color{}, errs.New(errs.CodeInvalidColor, "%q needs %d components", orig, want)
	}
	var ch [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Color{}, errs.New(errs.CodeInvalidColor, "bad component %q in %q", p, orig)
		}
		ch[i] = v
	}
	for i := 0; i < 3; i++ {
		if ch[i] < 0 || ch[i] > 255 {
			return Color{}, errs.New(errs.CodeInvalidColor, "component %v out of range in %q", ch[i], orig)
		}
	}
	a := 255.0
	if withAlpha {
		if ch[3] < 0 || ch[3] > 1 {
			return Color{}, errs.New(errs.CodeInvalidColor, "alpha %v out of range in %q", ch[3], orig)
		}
		a = float64(ch[3] * 255)
	}
	return RGBA(ch[0], ch[1], ch[2], a), nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexNibble(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// Hex returns #rrggbb, or #rrggbbaa when the color is not opaque.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// RGBA implements color.Color with 16-bit premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	pr, pg, pb, pa := c.Premultiplied()
	r = uint32(pr) * 0x101
	g = uint32(pg) * 0x101
	b = uint32(pb) * 0x101
	a = uint32(pa) * 0x101
	return r, g, b, a
}

// Premultiplied returns the 8-bit premultiplied channels.
func (c Color) Premultiplied() (r, g, b, a uint8) {
	return blend.Premultiply(c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Lerp interpolates every channel toward o by t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	l := func(a, b uint8) uint8 {
		return clamp255(float64(a) + float64(float64(int(b)-int(a))*t))
	}
	return Color{R: l(c.R, o.R), G: l(c.G, o.G), B: l(c.B, o.B), A: l(c.A, o.A)}
}

// Scale multiplies the color channels by f, leaving alpha alone.
func (c Color) Scale(f float64) Color {
	return Color{
		R: clamp255(float64(float64(c.R) * f)),
		G: clamp255(float64(float64(c.G) * f)),
		B: clamp255(float64(float64(c.B) * f)),
		A: c.A,
	}
}

// Offset adds per-channel deltas, clamping each result.
func (c Color) Offset(dr, dg, db float64) Color {
	return Color{
		R: clamp255(float64(c.R) + dr),
		G: clamp255(float64(c.G) + dg),
		B: clamp255(float64(c.B) + db),
		A: c.A,
	}
}

// Brightness is the channel mean (r+g+b)/3 on the 0-255 scale.
func (c Color) Brightness() float64 {
	return float64(int(c.R)+int(c.G)+int(c.B)) / 3
}

// clamp255 rounds half up and clamps to [0, 255]. NaN maps to 0.
func clamp255(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Floor(v + 0.5))
}
