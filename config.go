package rugweave

import (
	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/surface"
	"github.com/onchainrugs/rugweave/weave"
)

// Config holds the render constants. It is passed by value and never
// modified by the renderer.
type Config struct {
	DoormatWidth     int    `toml:"doormat_width" mapstructure:"doormat_width"`
	DoormatHeight    int    `toml:"doormat_height" mapstructure:"doormat_height"`
	FringeLength     int    `toml:"fringe_length" mapstructure:"fringe_length"`
	WeftThickness    int    `toml:"weft_thickness" mapstructure:"weft_thickness"`
	TextScale        int    `toml:"text_scale" mapstructure:"text_scale"`
	MaxChars         int    `toml:"max_chars" mapstructure:"max_chars"`
	MaxTextRows      int    `toml:"max_text_rows" mapstructure:"max_text_rows"`
	FrameMargin      int    `toml:"frame_margin" mapstructure:"frame_margin"`
	MaxWarpThickness int    `toml:"max_warp_thickness" mapstructure:"max_warp_thickness"`
	MaxStripes       int    `toml:"max_stripes" mapstructure:"max_stripes"`
	PreviewWidth     int    `toml:"preview_width" mapstructure:"preview_width"`
	PreviewHeight    int    `toml:"preview_height" mapstructure:"preview_height"`
	MaxCanvasSide    int    `toml:"max_canvas_side" mapstructure:"max_canvas_side"`
	NoiseOctaves     int    `toml:"noise_octaves" mapstructure:"noise_octaves"`
	FastNoiseOctaves int    `toml:"fast_noise_octaves" mapstructure:"fast_noise_octaves"`
	Background       string `toml:"background" mapstructure:"background"`
}

// DefaultConfig returns the constants of the published collection.
func DefaultConfig() Config {
	return Config{
		DoormatWidth:     800,
		DoormatHeight:    1200,
		FringeLength:     30,
		WeftThickness:    8,
		TextScale:        2,
		MaxChars:         11,
		MaxTextRows:      5,
		FrameMargin:      55,
		MaxWarpThickness: 16,
		MaxStripes:       512,
		PreviewWidth:     800,
		PreviewHeight:    1200,
		MaxCanvasSide:    4096,
		NoiseOctaves:     4,
		FastNoiseOctaves: 2,
		Background:       "#DEDEDE",
	}
}

// Validate rejects non-positive sizes and limits and a bad background.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"doormat_width", c.DoormatWidth},
		{"doormat_height", c.DoormatHeight},
		{"weft_thickness", c.WeftThickness},
		{"text_scale", c.TextScale},
		{"max_chars", c.MaxChars},
		{"max_text_rows", c.MaxTextRows},
		{"max_warp_thickness", c.MaxWarpThickness},
		{"max_stripes", c.MaxStripes},
		{"preview_width", c.PreviewWidth},
		{"preview_height", c.PreviewHeight},
		{"max_canvas_side", c.MaxCanvasSide},
		{"noise_octaves", c.NoiseOctaves},
		{"fast_noise_octaves", c.FastNoiseOctaves},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return errs.Field(errs.CodeValidation, p.name, "config %s must be positive, got %d", p.name, p.v)
		}
	}
	if c.FringeLength < 0 || c.FrameMargin < 0 {
		return errs.New(errs.CodeValidation, "config fringe_length and frame_margin must not be negative")
	}
	if c.PreviewWidth > c.MaxCanvasSide || c.PreviewHeight > c.MaxCanvasSide {
		return errs.New(errs.CodeValidation, "config preview size %dx%d exceeds max_canvas_side %d",
			c.PreviewWidth, c.PreviewHeight, c.MaxCanvasSide)
	}
	if _, err := surface.ParseColor(c.Background); err != nil {
		return errs.Wrap(errs.CodeValidation, err, "config background")
	}
	return nil
}

// Dimensions returns the rug geometry for c.
func (c Config) Dimensions() weave.Dimensions {
	return weave.Dimensions{
		Width:         c.DoormatWidth,
		Height:        c.DoormatHeight,
		Fringe:        c.FringeLength,
		WeftThickness: c.WeftThickness,
		TextScale:     c.TextScale,
		FrameMargin:   c.FrameMargin,
	}
}
