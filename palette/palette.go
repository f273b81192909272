// Package palette defines the named color universes a rug draws from.
package palette

import (
	"slices"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/surface"
)

// Palette is a named, ordered list of CSS color strings.
type Palette struct {
	Name        string   `json:"name" toml:"name" mapstructure:"name"`
	Colors      []string `json:"colors" toml:"colors" mapstructure:"colors"`
	Description string   `json:"description,omitempty" toml:"description,omitempty" mapstructure:"description"`
}

// Parse converts the color strings. It fails on an empty palette or on
// the first string that is not a color.
func (p Palette) Parse() ([]surface.Color, error) {
	if len(p.Colors) == 0 {
		return nil, errs.Field(errs.CodeValidation, "palette.colors", "palette %q has no colors", p.Name)
	}
	out := make([]surface.Color, len(p.Colors))
	for i, s := range p.Colors {
		c, err := surface.ParseColor(s)
		if err != nil {
			return nil, errs.Wrap(errs.CodeInvalidColor, err, "palette %q color %d", p.Name, i)
		}
		out[i] = c
	}
	return out, nil
}

// Clone returns a copy that shares no slices with p.
func (p Palette) Clone() Palette {
	p.Colors = slices.Clone(p.Colors)
	return p
}

// Extremes returns the darkest and lightest colors by channel mean.
// Ties keep the earlier entry. colors must not be empty.
func Extremes(colors []surface.Color) (darkest, lightest surface.Color) {
	darkest, lightest = colors[0], colors[0]
	lo, hi := darkest.Brightness(), lightest.Brightness()
	for _, c := range colors[1:] {
		b := c.Brightness()
		if b < lo {
			lo, darkest = b, c
		}
		if b > hi {
			hi, lightest = b, c
		}
	}
	return darkest, lightest
}

var builtin = []Palette{
	{
		Name:        "Desert Sunset",
		Colors:      []string{"#D2691E", "#CD853F", "#F4A460", "#DEB887", "#F5DEB3", "#8B4513"},
		Description: "Warm earth tones inspired by desert landscapes",
	},
	{
		Name:        "Ocean Depths",
		Colors:      []string{"#191970", "#4169E1", "#4682B4", "#5F9EA0", "#87CEEB", "#B0E0E6"},
		Description: "Deep blues and teals reminiscent of ocean waters",
	},
	{
		Name:        "Forest Floor",
		Colors:      []string{"#228B22", "#32CD32", "#90EE90", "#98FB98", "#006400", "#228B22"},
		Description: "Rich greens inspired by forest vegetation",
	},
	{
		Name:        "Autumn Leaves",
		Colors:      []string{"#FF4500", "#FF6347", "#FF7F50", "#FF8C00", "#FFA500", "#DAA520"},
		Description: "Warm oranges and reds like autumn foliage",
	},
	{
		Name:        "Midnight Mystery",
		Colors:      []string{"#2F2F2F", "#4A4A4A", "#696969", "#808080", "#A9A9A9", "#C0C0C0"},
		Description: "Sophisticated grays and silvers",
	},
	{
		Name:        "Berry Patch",
		Colors:      []string{"#8B008B", "#9932CC", "#BA55D3", "#DA70D6", "#DDA0DD", "#E6E6FA"},
		Description: "Rich purples and soft lavenders",
	},
	{
		Name:        "Golden Hour",
		Colors:      []string{"#FFD700", "#FFA500", "#FF8C00", "#FF6347", "#FF4500", "#FF1493"},
		Description: "Warm golds and vibrant oranges",
	},
	{
		Name:        "Mountain Mist",
		Colors:      []string{"#F0F8FF", "#E6E6FA", "#D3D3D3", "#C0C0C0", "#A9A9A9", "#808080"},
		Description: "Soft whites and cool grays",
	},
}

var fallback = Palette{
	Name:        "Arctic Ice",
	Colors:      []string{"#F0F8FF", "#E6E6FA", "#B0C4DE", "#87CEEB", "#B0E0E6", "#F0FFFF", "#E0FFFF", "#F5F5F5"},
	Description: "Pale blues used when no palette is given",
}

// All returns copies of the built-in palettes in their canonical order.
// Seeded generation indexes into this order, so it must not change.
func All() []Palette {
	out := make([]Palette, len(builtin))
	for i, p := range builtin {
		out[i] = p.Clone()
	}
	return out
}

// Default returns the fallback palette.
func Default() Palette { return fallback.Clone() }

// ByName looks up a built-in palette, including the fallback.
func ByName(name string) (Palette, bool) {
	for _, p := range builtin {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	if name == fallback.Name {
		return Default(), true
	}
	return Palette{}, false
}
