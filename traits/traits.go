// Package traits derives the collectible attributes of a rug from its
// parameters: text, palette and stripe statistics with their rarity tiers.
package traits

import (
	"slices"
	"unicode/utf8"

	"github.com/onchainrugs/rugweave/weave"
)

// Rarity is a collectible tier.
type Rarity string

const (
	Common    Rarity = "Common"
	Uncommon  Rarity = "Uncommon"
	Rare      Rarity = "Rare"
	Epic      Rarity = "Epic"
	Legendary Rarity = "Legendary"
)

// Color returns the display color of the tier.
func (r Rarity) Color() string {
	switch r {
	case Legendary:
		return "#ff6b35"
	case Epic:
		return "#8a2be2"
	case Rare:
		return "#007bff"
	case Uncommon:
		return "#28a745"
	}
	return "#6c757d"
}

// Complexity grades how much weave variation a rug's stripes carry.
type Complexity string

const (
	Basic       Complexity = "Basic"
	Simple      Complexity = "Simple"
	Moderate    Complexity = "Moderate"
	Complex     Complexity = "Complex"
	VeryComplex Complexity = "Very Complex"
)

// Rarity maps the grade to its tier.
func (c Complexity) Rarity() Rarity {
	switch c {
	case Simple:
		return Uncommon
	case Moderate:
		return Rare
	case Complex:
		return Epic
	case VeryComplex:
		return Legendary
	}
	return Common
}

// StripeKind is the part of a stripe the traits look at.
type StripeKind struct {
	Weave        weave.WeaveType
	HasSecondary bool
}

// Input is what Compute reads.
type Input struct {
	TextRows    []string
	PaletteName string
	Stripes     []StripeKind
}

// Traits is the computed attribute set.
type Traits struct {
	TextLines        int        `json:"textLines"`
	TotalCharacters  int        `json:"totalCharacters"`
	PaletteName      string     `json:"paletteName"`
	PaletteRarity    Rarity     `json:"paletteRarity"`
	StripeCount      int        `json:"stripeCount"`
	StripeComplexity Complexity `json:"stripeComplexity"`
}

// Compute derives the traits of in.
func Compute(in Input) Traits {
	t := Traits{
		TextLines:        len(in.TextRows),
		PaletteName:      in.PaletteName,
		PaletteRarity:    PaletteRarity(in.PaletteName),
		StripeCount:      len(in.Stripes),
		StripeComplexity: StripeComplexity(in.Stripes),
	}
	if t.PaletteName == "" {
		t.PaletteName = "Unknown"
	}
	for _, row := range in.TextRows {
		t.TotalCharacters += utf8.RuneCountInString(row)
	}
	return t
}

// Rarities returns the tier of every graded trait, keyed by trait name.
func (t Traits) Rarities() map[string]Rarity {
	return map[string]Rarity{
		"textLines":        TextLinesRarity(t.TextLines),
		"totalCharacters":  CharacterRarity(t.TotalCharacters),
		"paletteName":      t.PaletteRarity,
		"stripeCount":      StripeCountRarity(t.StripeCount),
		"stripeComplexity": t.StripeComplexity.Rarity(),
	}
}

var paletteTiers = []struct {
	rarity Rarity
	names  []string
}{
	{Legendary, []string{"Buddhist", "Maurya Empire", "Chola Dynasty", "Indigo Famine", "Bengal Famine", "Jamakalam"}},
	{Epic, []string{"Indian Peacock", "Flamingo", "Toucan", "Madras Checks", "Kanchipuram Silk", "Natural Dyes", "Bleeding Vintage"}},
	{Rare, []string{"Tamil Classical", "Sangam Era", "Pandya Dynasty", "Maratha Empire", "Rajasthani"}},
	{Uncommon, []string{"Tamil Nadu Temple", "Kerala Onam", "Chettinad Spice", "Chennai Monsoon", "Bengal Indigo"}},
}

// PaletteRarity returns the tier of a palette name. Unlisted palettes,
// including every built-in one, are Common.
func PaletteRarity(name string) Rarity {
	for _, tier := range paletteTiers {
		if slices.Contains(tier.names, name) {
			return tier.rarity
		}
	}
	return Common
}

// StripeComplexity grades stripes by their weave mix. Mixed stripes score
// 2, textured 1.5 and a secondary color adds 1, out of 3 per stripe.
func StripeComplexity(stripes []StripeKind) Complexity {
	if len(stripes) == 0 {
		return Basic
	}
	var score float64
	solid := 0
	for _, s := range stripes {
		switch s.Weave {
		case weave.Mixed:
			score += 2
		case weave.Textured:
			score += 1.5
		default:
			solid++
		}
		if s.HasSecondary {
			score++
		}
	}
	n := float64(len(stripes))
	solidRatio := float64(solid) / n
	normalized := score / (n * 3)

	switch {
	case solidRatio > 0.9:
		return Basic
	case solidRatio > 0.75 && normalized < 0.15:
		return Simple
	case solidRatio > 0.6 && normalized < 0.3:
		return Moderate
	case normalized < 0.5:
		return Complex
	}
	return VeryComplex
}

// TextLinesRarity grades the number of text rows.
func TextLinesRarity(lines int) Rarity {
	switch {
	case lines <= 0:
		return Common
	case lines == 1:
		return Uncommon
	case lines == 2:
		return Rare
	case lines == 3:
		return Epic
	}
	return Legendary
}

// CharacterRarity grades the total character count.
func CharacterRarity(total int) Rarity {
	switch {
	case total <= 0:
		return Common
	case total <= 5:
		return Uncommon
	case total <= 15:
		return Rare
	case total <= 30:
		return Epic
	}
	return Legendary
}

// StripeCountRarity grades the stripe count; fewer stripes are rarer.
func StripeCountRarity(count int) Rarity {
	switch {
	case count < 20:
		return Legendary
	case count < 25:
		return Epic
	case count < 32:
		return Rare
	case count < 40:
		return Uncommon
	}
	return Common
}
