package rugweave

import (
	"github.com/onchainrugs/rugweave/noise"
	"github.com/onchainrugs/rugweave/palette"
	"github.com/onchainrugs/rugweave/weave"
)

var warpChoices = []int{1, 2, 3, 4, 5, 6}

// GenerateParameters derives a complete, clean rug from seed the way the
// mint page does: a warp thickness, then a palette, then the stripes, all
// from one generator. The result always passes Validate(cfg).
func GenerateParameters(seed int64, cfg Config) RenderParameters {
	rnd := noise.NewRandom(uint32(seed))

	warp := min(warpChoices[rnd.Choice(len(warpChoices))], cfg.MaxWarpThickness)
	all := palette.All()
	pal := all[rnd.Choice(len(all))]

	bands := weave.GenerateStripes(rnd, pal.Colors, float64(cfg.DoormatHeight))
	if len(bands) > cfg.MaxStripes {
		bands = bands[:cfg.MaxStripes]
	}
	rows := make([]StripeRow, len(bands))
	for i, b := range bands {
		wv := b.WeaveValue
		rows[i] = StripeRow{
			Y:              b.Y,
			Height:         b.Height,
			PrimaryColor:   b.Primary,
			SecondaryColor: b.Secondary,
			WeaveType:      b.Weave,
			WeaveValue:     &wv,
		}
	}
	return RenderParameters{
		Seed:          seed,
		Palette:       pal,
		StripeRows:    rows,
		WarpThickness: warp,
	}
}
