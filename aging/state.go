// Package aging composites wear onto a drawn rug: a dirt wash with
// speckles, fiber texture and a decorative frame in the margin.
//
// The overlay only reads its State. It is applied to interactive renders
// only; previews are always drawn clean.
package aging

import (
	"encoding/json"
	"strings"

	"github.com/onchainrugs/rugweave/errs"
)

// FrameLevel is the frame a rug has earned.
type FrameLevel string

const (
	FrameNone    FrameLevel = "None"
	FrameBronze  FrameLevel = "Bronze"
	FrameSilver  FrameLevel = "Silver"
	FrameGold    FrameLevel = "Gold"
	FrameDiamond FrameLevel = "Diamond"
)

// Frames lists the levels from lowest to highest.
var Frames = []FrameLevel{FrameNone, FrameBronze, FrameSilver, FrameGold, FrameDiamond}

// ParseFrameLevel accepts level names in any case and the one-letter
// script codes B, S, G and D. The empty string is FrameNone.
func ParseFrameLevel(s string) (FrameLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "n":
		return FrameNone, nil
	case "bronze", "b":
		return FrameBronze, nil
	case "silver", "s":
		return FrameSilver, nil
	case "gold", "g":
		return FrameGold, nil
	case "diamond", "d":
		return FrameDiamond, nil
	}
	return "", errs.Field(errs.CodeValidation, "frame", "unknown frame level %q", s)
}

// Rank is the numeric level, 0 for None through 4 for Diamond.
// Unknown levels rank -1.
func (f FrameLevel) Rank() int {
	for i, l := range Frames {
		if l == f {
			return i
		}
	}
	return -1
}

// Code is the one-letter script code, empty for None.
func (f FrameLevel) Code() string {
	if f == FrameNone || f.Rank() < 0 {
		return ""
	}
	return string(f[:1])
}

// UnmarshalText implements encoding.TextUnmarshaler, so JSON, TOML and
// viper all accept the short codes.
func (f *FrameLevel) UnmarshalText(b []byte) error {
	v, err := ParseFrameLevel(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalJSON additionally accepts the numeric rank.
func (f *FrameLevel) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if n < 0 || n >= len(Frames) {
			return errs.Field(errs.CodeValidation, "frame", "frame rank %d out of range", n)
		}
		*f = Frames[n]
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.Wrap(errs.CodeValidation, err, "frame level")
	}
	return f.UnmarshalText([]byte(s))
}

// Limits for State fields.
const (
	MaxDirtLevel    = 2
	MaxTextureLevel = 10
)

// State is the wear of one rug, owned by the caller.
type State struct {
	TextureLevel int        `json:"textureLevel" toml:"texture_level" mapstructure:"texture_level"`
	DirtLevel    int        `json:"dirtLevel" toml:"dirt_level" mapstructure:"dirt_level"`
	Frame        FrameLevel `json:"frameLevel" toml:"frame" mapstructure:"frame"`
}

// Validate checks the levels against their ranges.
func (s State) Validate() error {
	if s.DirtLevel < 0 || s.DirtLevel > MaxDirtLevel {
		return errs.Field(errs.CodeValidation, "aging.dirtLevel", "dirt level %d not in [0, %d]", s.DirtLevel, MaxDirtLevel)
	}
	if s.TextureLevel < 0 || s.TextureLevel > MaxTextureLevel {
		return errs.Field(errs.CodeValidation, "aging.textureLevel", "texture level %d not in [0, %d]", s.TextureLevel, MaxTextureLevel)
	}
	if s.Frame != "" && s.Frame.Rank() < 0 {
		return errs.Field(errs.CodeValidation, "aging.frameLevel", "unknown frame level %q", s.Frame)
	}
	return nil
}

// Clean reports whether the overlay would draw nothing.
func (s State) Clean() bool {
	return s.DirtLevel == 0 && s.TextureLevel == 0 && (s.Frame == "" || s.Frame == FrameNone)
}
