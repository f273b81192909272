package rugweave

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/onchainrugs/rugweave/aging"
	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/glyph"
	"github.com/onchainrugs/rugweave/palette"
	"github.com/onchainrugs/rugweave/weave"
)

// Re-exported parameter types.
type (
	Palette    = palette.Palette
	AgingState = aging.State
	FrameLevel = aging.FrameLevel
	WeaveType  = weave.WeaveType
)

// Frame levels.
const (
	FrameNone    = aging.FrameNone
	FrameBronze  = aging.FrameBronze
	FrameSilver  = aging.FrameSilver
	FrameGold    = aging.FrameGold
	FrameDiamond = aging.FrameDiamond
)

// RenderMode selects the canvas size and whether aging is drawn.
type RenderMode int

const (
	// ModeInteractive draws at the requested size with aging.
	ModeInteractive RenderMode = iota
	// ModePreview draws at the configured preview size without aging.
	ModePreview
)

func (m RenderMode) String() string {
	switch m {
	case ModeInteractive:
		return "interactive"
	case ModePreview:
		return "preview"
	}
	return "unknown"
}

// ParseRenderMode accepts "interactive" and "preview" in any case.
func ParseRenderMode(s string) (RenderMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interactive":
		return ModeInteractive, nil
	case "preview", "og":
		return ModePreview, nil
	}
	return 0, errs.Field(errs.CodeValidation, "mode", "unknown render mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m RenderMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *RenderMode) UnmarshalText(b []byte) error {
	v, err := ParseRenderMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// StripeRow is one stripe as stored on chain.
type StripeRow struct {
	Y              float64   `json:"y" toml:"y"`
	Height         float64   `json:"h" toml:"h"`
	PrimaryColor   string    `json:"pc" toml:"pc"`
	SecondaryColor string    `json:"sc,omitempty" toml:"sc,omitempty"`
	WeaveType      WeaveType `json:"wt,omitempty" toml:"wt,omitempty"`
	WeaveValue     *float64  `json:"wv,omitempty" toml:"wv,omitempty"`
}

// RenderParameters is everything one render reads.
type RenderParameters struct {
	// TokenID only labels logs and cache keys.
	TokenID uint64 `json:"tokenId" toml:"token_id"`
	// Seed is the only source of randomness; its low 32 bits are used.
	Seed          int64       `json:"seed" toml:"seed"`
	Palette       Palette     `json:"palette" toml:"palette"`
	StripeRows    []StripeRow `json:"stripeData" toml:"stripes"`
	TextRows      []string    `json:"textRows" toml:"text_rows"`
	WarpThickness int         `json:"warpThickness" toml:"warp_thickness"`
	// CharacterMap is the glyph alphabet. Nil means glyph.Default().
	CharacterMap glyph.Map  `json:"characterMap,omitempty" toml:"-"`
	Aging        AgingState `json:"aging" toml:"aging"`
	Mode         RenderMode `json:"mode" toml:"mode"`
}

// Clone returns a deep copy.
func (p RenderParameters) Clone() RenderParameters {
	p.Palette = p.Palette.Clone()
	p.StripeRows = slices.Clone(p.StripeRows)
	for i, s := range p.StripeRows {
		if s.WeaveValue != nil {
			v := *s.WeaveValue
			p.StripeRows[i].WeaveValue = &v
		}
	}
	p.TextRows = slices.Clone(p.TextRows)
	if p.CharacterMap != nil {
		p.CharacterMap = p.CharacterMap.Clone()
	}
	return p
}

// Glyphs returns the character map, defaulting to glyph.Default().
func (p RenderParameters) Glyphs() glyph.Map {
	if p.CharacterMap == nil {
		return glyph.Default()
	}
	return p.CharacterMap
}

// ParseParametersJSON decodes parameters from JSON.
func ParseParametersJSON(data []byte) (RenderParameters, error) {
	var p RenderParameters
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		if errs.GetCode(err) != "" {
			return RenderParameters{}, err
		}
		return RenderParameters{}, errs.Wrap(errs.CodeValidation, err, "decode parameters")
	}
	return p, nil
}

// ParseParametersTOML decodes parameters from TOML.
func ParseParametersTOML(data []byte) (RenderParameters, error) {
	var p RenderParameters
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		if errs.GetCode(err) != "" {
			return RenderParameters{}, err
		}
		return RenderParameters{}, errs.Wrap(errs.CodeValidation, err, "decode parameters")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return RenderParameters{}, errs.New(errs.CodeValidation, "unknown parameter key %q", undecoded[0].String())
	}
	return p, nil
}

// LoadParameters reads a parameter file, choosing TOML for .toml files
// and JSON otherwise.
func LoadParameters(path string) (RenderParameters, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return RenderParameters{}, err
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseParametersTOML(data)
	}
	return ParseParametersJSON(data)
}
