package traits

import (
	"testing"

	"github.com/onchainrugs/rugweave/weave"
)

func kinds(solid, textured, mixed, secondary int) []StripeKind {
	var out []StripeKind
	for i := 0; i < solid; i++ {
		out = append(out, StripeKind{Weave: weave.Solid})
	}
	for i := 0; i < textured; i++ {
		out = append(out, StripeKind{Weave: weave.Textured})
	}
	for i := 0; i < mixed; i++ {
		out = append(out, StripeKind{Weave: weave.Mixed})
	}
	for i := 0; i < secondary && i < len(out); i++ {
		out[i].HasSecondary = true
	}
	return out
}

func TestStripeComplexity(t *testing.T) {
	tests := []struct {
		name    string
		stripes []StripeKind
		want    Complexity
	}{
		{"empty", nil, Basic},
		{"all solid", kinds(20, 0, 0, 0), Basic},
		{"simple", kinds(8, 1, 0, 0), Simple},
		{"moderate", kinds(7, 3, 0, 0), Moderate},
		{"complex", kinds(5, 5, 5, 0), Complex},
		{"very complex", kinds(0, 0, 10, 10), VeryComplex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripeComplexity(tt.stripes); got != tt.want {
				t.Fatalf("StripeComplexity() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompute(t *testing.T) {
	got := Compute(Input{
		TextRows:    []string{"HELLO", "RUG"},
		PaletteName: "Flamingo",
		Stripes:     kinds(3, 0, 0, 0),
	})
	want := Traits{
		TextLines:        2,
		TotalCharacters:  8,
		PaletteName:      "Flamingo",
		PaletteRarity:    Epic,
		StripeCount:      3,
		StripeComplexity: Basic,
	}
	if got != want {
		t.Fatalf("Compute() = %+v, want %+v", got, want)
	}
	r := got.Rarities()
	if r["textLines"] != Rare || r["totalCharacters"] != Rare || r["stripeCount"] != Legendary {
		t.Fatalf("Rarities() = %v", r)
	}
	if Compute(Input{}).PaletteName != "Unknown" {
		t.Error("missing palette name should be Unknown")
	}
}

func TestRarityScales(t *testing.T) {
	tests := []struct {
		name string
		got  Rarity
		want Rarity
	}{
		{"no lines", TextLinesRarity(0), Common},
		{"four lines", TextLinesRarity(4), Legendary},
		{"five chars", CharacterRarity(5), Uncommon},
		{"thirty chars", CharacterRarity(30), Epic},
		{"thirty-one chars", CharacterRarity(31), Legendary},
		{"19 stripes", StripeCountRarity(19), Legendary},
		{"24 stripes", StripeCountRarity(24), Epic},
		{"31 stripes", StripeCountRarity(31), Rare},
		{"39 stripes", StripeCountRarity(39), Uncommon},
		{"40 stripes", StripeCountRarity(40), Common},
		{"builtin palette", PaletteRarity("Desert Sunset"), Common},
		{"legendary palette", PaletteRarity("Jamakalam"), Legendary},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if Legendary.Color() != "#ff6b35" || Rarity("x").Color() != "#6c757d" {
		t.Error("Color() is wrong")
	}
}
