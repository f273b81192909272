package rugweave

import (
	"github.com/onchainrugs/rugweave/traits"
	"github.com/onchainrugs/rugweave/weave"
)

// Traits computes the collectible attributes of p. Unparseable weave
// types count as solid; run Validate first to reject them.
func (p RenderParameters) Traits() traits.Traits {
	kinds := make([]traits.StripeKind, len(p.StripeRows))
	for i, s := range p.StripeRows {
		wt, err := weave.ParseWeaveType(string(s.WeaveType))
		if err != nil {
			wt = weave.Solid
		}
		kinds[i] = traits.StripeKind{Weave: wt, HasSecondary: s.SecondaryColor != ""}
	}
	return traits.Compute(traits.Input{
		TextRows:    p.TextRows,
		PaletteName: p.Palette.Name,
		Stripes:     kinds,
	})
}
