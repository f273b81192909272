package rugweave

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/onchainrugs/rugweave/glyph"
)

const hiJSON = `{
  "tokenId": 7,
  "seed": 42,
  "palette": {"name": "Test", "colors": ["#aa0000", "#004400", "#f0e0d0"]},
  "stripeData": [
    {"y": 0, "h": 100, "pc": "#aa0000"},
    {"y": 100, "h": 100, "pc": "#004400", "wt": "solid", "wv": 0.5}
  ],
  "textRows": ["HI"],
  "warpThickness": 8,
  "aging": {"textureLevel": 2, "dirtLevel": 1, "frameLevel": "Gold"},
  "mode": "preview"
}`

const hiTOML = `
token_id = 7
seed = 42
text_rows = ["HI"]
warp_thickness = 8
mode = "preview"

[palette]
name = "Test"
colors = ["#aa0000", "#004400", "#f0e0d0"]

[[stripes]]
y = 0
h = 100
pc = "#aa0000"

[[stripes]]
y = 100
h = 100
pc = "#004400"
wt = "solid"
wv = 0.5

[aging]
texture_level = 2
dirt_level = 1
frame = "Gold"
`

func TestParseParameters(t *testing.T) {
	tests := []struct {
		name  string
		parse func([]byte) (RenderParameters, error)
		data  string
	}{
		{"json", ParseParametersJSON, hiJSON},
		{"toml", ParseParametersTOML, hiTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.parse([]byte(tt.data))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if p.TokenID != 7 || p.Seed != 42 || p.WarpThickness != 8 {
				t.Errorf("scalars = %d/%d/%d", p.TokenID, p.Seed, p.WarpThickness)
			}
			if p.Mode != ModePreview {
				t.Errorf("mode = %v, want preview", p.Mode)
			}
			if len(p.StripeRows) != 2 || p.StripeRows[1].WeaveType != "solid" {
				t.Fatalf("stripes = %+v", p.StripeRows)
			}
			if p.StripeRows[0].WeaveValue != nil || p.StripeRows[1].WeaveValue == nil || *p.StripeRows[1].WeaveValue != 0.5 {
				t.Errorf("weave values not decoded as given")
			}
			want := AgingState{TextureLevel: 2, DirtLevel: 1, Frame: FrameGold}
			if p.Aging != want {
				t.Errorf("aging = %+v, want %+v", p.Aging, want)
			}
			if err := p.Validate(DefaultConfig()); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestParseParametersRejectsUnknownKeys(t *testing.T) {
	if _, err := ParseParametersJSON([]byte(`{"seed": 1, "sede": 2}`)); ErrorCodeOf(err) != CodeValidation {
		t.Errorf("json: %v, want VALIDATION", err)
	}
	if _, err := ParseParametersTOML([]byte("seed = 1\nsede = 2\n")); ErrorCodeOf(err) != CodeValidation {
		t.Errorf("toml: %v, want VALIDATION", err)
	}
	if _, err := ParseParametersJSON([]byte(`{"mode": "fullscreen"}`)); ErrorCodeOf(err) != CodeValidation {
		t.Errorf("bad mode: %v, want VALIDATION", err)
	}
}

func TestLoadParameters(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{"rug.json": hiJSON, "rug.toml": hiTOML} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		p, err := LoadParameters(path)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if p.Seed != 42 {
			t.Errorf("%s: seed = %d", name, p.Seed)
		}
	}
	if _, err := LoadParameters(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := hiParams()
	p.StripeRows[0].WeaveValue = ptr(0.4)
	p.CharacterMap = glyph.Map{'H': {"1"}}
	c := p.Clone()

	c.Palette.Colors[0] = "#000000"
	c.StripeRows[0].PrimaryColor = "#000000"
	*c.StripeRows[0].WeaveValue = 0.9
	c.TextRows[0] = "XX"
	c.CharacterMap['H'][0] = "0"

	if !reflect.DeepEqual(p.Palette.Colors, hiParams().Palette.Colors) {
		t.Error("palette shared")
	}
	if p.StripeRows[0].PrimaryColor != "#aa0000" || *p.StripeRows[0].WeaveValue != 0.4 {
		t.Error("stripes shared")
	}
	if p.TextRows[0] != "HI" {
		t.Error("text rows shared")
	}
	if p.CharacterMap['H'][0] != "1" {
		t.Error("character map shared")
	}
}

func TestGlyphsDefault(t *testing.T) {
	var p RenderParameters
	if len(p.Glyphs()) == 0 {
		t.Fatal("nil character map did not fall back to the default alphabet")
	}
	if _, err := p.Glyphs().Lookup('A'); err != nil {
		t.Errorf("default alphabet lacks A: %v", err)
	}
}

func TestCustomCharacterMap(t *testing.T) {
	p := hiParams()
	p.TextRows = []string{"a"}
	p.CharacterMap = glyph.Map{
		'a': {"10101", "01010", "10101", "01010", "10101", "01010", "10101"},
		' ': {"00000", "00000", "00000", "00000", "00000", "00000", "00000"},
	}
	if err := p.Validate(DefaultConfig()); err != nil {
		t.Fatalf("custom lowercase glyph rejected: %v", err)
	}
	p.TextRows = []string{"A"}
	if err := p.Validate(DefaultConfig()); ErrorCodeOf(err) != CodeUnsupportedGlyph {
		t.Errorf("A with custom map = %v, want UNSUPPORTED_GLYPH", err)
	}
}

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"", ModeInteractive, false},
		{"interactive", ModeInteractive, false},
		{"Preview", ModePreview, false},
		{"og", ModePreview, false},
		{"full", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRenderMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	w, h := cfg.Dimensions().Size()
	if w != 1030 || h != 1430 {
		t.Errorf("rug space = %vx%v, want 1030x1430", w, h)
	}

	bad := cfg
	bad.PreviewWidth = cfg.MaxCanvasSide + 1
	if err := bad.Validate(); ErrorCodeOf(err) != CodeValidation {
		t.Errorf("oversized preview = %v, want VALIDATION", err)
	}
	bad = cfg
	bad.FringeLength = -1
	if err := bad.Validate(); ErrorCodeOf(err) != CodeValidation {
		t.Errorf("negative fringe = %v, want VALIDATION", err)
	}
}

func TestGenerateParameters(t *testing.T) {
	cfg := DefaultConfig()
	for _, seed := range []int64{0, 1, 42, 1 << 40, -5} {
		a := GenerateParameters(seed, cfg)
		if err := a.Validate(cfg); err != nil {
			t.Errorf("seed %d: generated parameters invalid: %v", seed, err)
		}
		if a.WarpThickness < 1 || a.WarpThickness > 6 {
			t.Errorf("seed %d: warp %d outside 1..6", seed, a.WarpThickness)
		}
		b := GenerateParameters(seed, cfg)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("seed %d: generation is not deterministic", seed)
		}
	}
}
