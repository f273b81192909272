package weave

import "github.com/onchainrugs/rugweave/noise"

// Band is a generated stripe before its colors are parsed.
type Band struct {
	Y, Height  float64
	Primary    string
	Secondary  string
	Weave      WeaveType
	WeaveValue float64
}

// GenerateStripes fills height with seeded stripes drawn from colors.
//
// One draw first picks a density class: thin stripes (15-35), thick ones
// (50-90) or a mix of 20-80 where each stripe is again thin, medium or
// thick. Each stripe then draws its primary color, a 15% chance of a
// secondary color, a weave type weighted 60/20/20 toward solid and a weave
// value in [0.1, 0.5). The last stripe is clipped to height.
func GenerateStripes(rnd *noise.Random, colors []string, height float64) []Band {
	if len(colors) == 0 || !(height > 0) {
		return nil
	}
	density := rnd.Float()
	lo, hi := 20.0, 80.0
	switch {
	case density < 0.2:
		lo, hi = 15, 35
	case density < 0.4:
		lo, hi = 50, 90
	}

	var out []Band
	for y := 0.0; y < height; {
		var h float64
		if density >= 0.4 {
			v := rnd.Float()
			switch {
			case v < 0.3:
				h = rnd.Range(lo, lo+20)
			case v < 0.6:
				h = rnd.Range(lo+15, hi-15)
			default:
				h = rnd.Range(hi-25, hi)
			}
		} else {
			h = rnd.Range(lo, hi)
		}
		if y+h > height {
			h = height - y
		}

		b := Band{Y: y, Height: h, Primary: colors[rnd.Choice(len(colors))]}
		if rnd.Float() < 0.15 {
			b.Secondary = colors[rnd.Choice(len(colors))]
		}
		switch w := rnd.Float(); {
		case w < 0.6:
			b.Weave = Solid
		case w < 0.8:
			b.Weave = Textured
		default:
			b.Weave = Mixed
		}
		b.WeaveValue = rnd.Range(0.1, 0.5)

		out = append(out, b)
		y += h
	}
	return out
}
