package rugweave

import (
	"math"
	"unicode/utf8"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/surface"
	"github.com/onchainrugs/rugweave/weave"
)

// Validate checks p against the limits in cfg. Caps are enforced, never
// truncated: anything over a limit is a VALIDATION error. Unknown
// characters are UNSUPPORTED_GLYPH and bad colors INVALID_COLOR.
func (p RenderParameters) Validate(cfg Config) error {
	_, err := p.prepare(cfg)
	return err
}

// prepare validates p and resolves it into generator input.
func (p RenderParameters) prepare(cfg Config) (weave.Input, error) {
	var in weave.Input

	if p.Mode != ModeInteractive && p.Mode != ModePreview {
		return in, errs.Field(errs.CodeValidation, "mode", "unknown render mode %d", int(p.Mode))
	}
	if p.WarpThickness < 1 || p.WarpThickness > cfg.MaxWarpThickness {
		return in, errs.Field(errs.CodeValidation, "warpThickness",
			"warp thickness %d not in [1, %d]", p.WarpThickness, cfg.MaxWarpThickness)
	}
	if len(p.TextRows) > cfg.MaxTextRows {
		return in, errs.Field(errs.CodeValidation, "textRows",
			"%d text rows exceed the limit of %d", len(p.TextRows), cfg.MaxTextRows)
	}
	for i, row := range p.TextRows {
		if n := utf8.RuneCountInString(row); n > cfg.MaxChars {
			return in, errs.Field(errs.CodeValidation, "textRows",
				"text row %d has %d characters, limit is %d", i, n, cfg.MaxChars)
		}
	}
	if len(p.StripeRows) == 0 {
		return in, errs.Field(errs.CodeValidation, "stripeData", "at least one stripe is required")
	}
	if len(p.StripeRows) > cfg.MaxStripes {
		return in, errs.Field(errs.CodeValidation, "stripeData",
			"%d stripes exceed the limit of %d", len(p.StripeRows), cfg.MaxStripes)
	}
	// Previews never draw wear, so their aging state is not checked.
	if p.Mode == ModeInteractive {
		if err := p.Aging.Validate(); err != nil {
			return in, err
		}
	}

	colors, err := p.Palette.Parse()
	if err != nil {
		return in, err
	}

	stripes := make([]weave.Stripe, len(p.StripeRows))
	for i, row := range p.StripeRows {
		st, err := resolveStripe(i, row, float64(cfg.DoormatHeight))
		if err != nil {
			return in, err
		}
		stripes[i] = st
	}

	glyphs := p.Glyphs()
	if err := glyphs.Validate(); err != nil {
		return in, err
	}
	if err := glyphs.Check(p.TextRows); err != nil {
		return in, err
	}

	in = weave.Input{
		Stripes:       stripes,
		TextRows:      p.TextRows,
		Glyphs:        glyphs,
		WarpThickness: p.WarpThickness,
		Palette:       colors,
	}
	return in, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// stripeSlack absorbs rounding in stripe tables whose heights were summed
// in floating point.
const stripeSlack = 1e-6

// resolveStripe checks one stripe and converts it for the generator. A
// stripe must lie within the body, [0, bodyHeight].
func resolveStripe(i int, row StripeRow, bodyHeight float64) (weave.Stripe, error) {
	var st weave.Stripe
	if !finite(row.Y) || !finite(row.Height) || row.Y < 0 {
		return st, errs.Field(errs.CodeValidation, "stripeData",
			"stripe %d has position y=%v h=%v", i, row.Y, row.Height)
	}
	if !(row.Height > 0) {
		return st, errs.Field(errs.CodeValidation, "stripeData", "stripe %d height %v must be positive", i, row.Height)
	}
	if row.Y >= bodyHeight || row.Y+row.Height > bodyHeight+stripeSlack {
		return st, errs.Field(errs.CodeValidation, "stripeData",
			"stripe %d spans y=%v..%v outside the body height %v", i, row.Y, row.Y+row.Height, bodyHeight)
	}
	wt, err := weave.ParseWeaveType(string(row.WeaveType))
	if err != nil {
		return st, errs.Wrap(errs.CodeValidation, err, "stripe %d", i)
	}
	primary, err := surface.ParseColor(row.PrimaryColor)
	if err != nil {
		return st, errs.Wrap(errs.CodeInvalidColor, err, "stripe %d primary color", i)
	}
	st = weave.Stripe{
		Y:          row.Y,
		Height:     row.Height,
		Primary:    primary,
		Weave:      wt,
		WeaveValue: weave.DefaultWeaveValue,
	}
	if row.SecondaryColor != "" {
		sc, err := surface.ParseColor(row.SecondaryColor)
		if err != nil {
			return st, errs.Wrap(errs.CodeInvalidColor, err, "stripe %d secondary color", i)
		}
		st.Secondary, st.HasSecondary = sc, true
	}
	if row.WeaveValue != nil {
		if !finite(*row.WeaveValue) {
			return st, errs.Field(errs.CodeValidation, "stripeData", "stripe %d weave value is not finite", i)
		}
		st.WeaveValue = *row.WeaveValue
	}
	return st, nil
}
