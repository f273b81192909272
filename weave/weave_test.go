package weave

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/glyph"
	"github.com/onchainrugs/rugweave/noise"
	"github.com/onchainrugs/rugweave/surface"
)

var smallDims = Dimensions{
	Width:         40,
	Height:        60,
	Fringe:        4,
	WeftThickness: 8,
	TextScale:     2,
	FrameMargin:   2,
}

func smallInput() Input {
	red := surface.MustParseColor("#aa0000")
	green := surface.MustParseColor("#004400")
	blue := surface.MustParseColor("#2040c0")
	return Input{
		Stripes: []Stripe{
			{Y: 0, Height: 25, Primary: red, Weave: Textured, WeaveValue: DefaultWeaveValue},
			{Y: 25, Height: 35, Primary: green, Secondary: blue, HasSecondary: true, Weave: Mixed, WeaveValue: 0.4},
		},
		WarpThickness: 3,
		Palette:       []surface.Color{red, green, blue},
		Glyphs:        glyph.Default(),
	}
}

func drawSmall(t *testing.T, in Input, seed uint32) []byte {
	t.Helper()
	w, h := smallDims.Size()
	s := surface.NewImageSurface(int(w), int(h))
	defer s.Close()
	c := surface.NewCanvas(s)
	c.Background(surface.Gray(222))
	g := New(smallDims, in, noise.NewRandom(seed), noise.NewPerlin(seed, 4))
	if err := g.Draw(c); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	return s.Snapshot().Pix
}

func TestWarpOver(t *testing.T) {
	tests := []struct {
		i, j int
		want bool
	}{
		{0, 0, true},
		{1, 0, false},
		{0, 1, false},
		{1, 1, true},
		{7, 12, false},
		{8, 12, true},
	}
	for _, tt := range tests {
		if got := WarpOver(tt.i, tt.j); got != tt.want {
			t.Errorf("WarpOver(%d, %d) = %v, want %v", tt.i, tt.j, got, tt.want)
		}
	}
}

func TestSecondaryWeight(t *testing.T) {
	if got := SecondaryWeight(0, 0.3); got != 0.5 {
		t.Errorf("SecondaryWeight(0, 0.3) = %v, want 0.5", got)
	}
	if got := SecondaryWeight(1, 1); math.Abs(got-1) > 1e-9 {
		t.Errorf("SecondaryWeight(1, 1) = %v, want 1", got)
	}
	for i := 0; i < 200; i++ {
		got := SecondaryWeight(i, 0.37)
		if got < 0 || got > 1 {
			t.Fatalf("SecondaryWeight(%d) = %v out of [0, 1]", i, got)
		}
		if got != SecondaryWeight(i, 0.37) {
			t.Fatalf("SecondaryWeight(%d) is not stable", i)
		}
	}
}

func TestParseWeaveType(t *testing.T) {
	tests := []struct {
		in   string
		want WeaveType
		ok   bool
	}{
		{"", Solid, true},
		{"s", Solid, true},
		{"solid", Solid, true},
		{"T", Textured, true},
		{"textured", Textured, true},
		{"m", Mixed, true},
		{" Mixed ", Mixed, true},
		{"plaid", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeaveType(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("ParseWeaveType(%q) error = %v", tt.in, err)
			}
			if err != nil && !errs.Is(err, errs.CodeValidation) {
				t.Fatalf("ParseWeaveType(%q) code = %s", tt.in, errs.GetCode(err))
			}
			if got != tt.want {
				t.Fatalf("ParseWeaveType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPlanCountsRowsAcrossStripes(t *testing.T) {
	in := Input{
		Stripes: []Stripe{
			{Y: 0, Height: 100},
			{Y: 100, Height: 100},
		},
		WarpThickness: 8,
	}
	dims := Dimensions{Width: 800, Height: 1200, Fringe: 30, WeftThickness: 8, TextScale: 2, FrameMargin: 55}
	g, err := Plan(dims, in)
	if err != nil {
		t.Fatalf("Plan() = %v", err)
	}
	if g.Cols != 89 {
		t.Errorf("Cols = %d, want 89", g.Cols)
	}
	first, second := g.StripeRows(0), g.StripeRows(1)
	if len(first) != 12 || len(second) != 12 {
		t.Fatalf("rows per stripe = %d, %d, want 12, 12", len(first), len(second))
	}
	if second[0].J != 12 || second[0].Y != 100 {
		t.Errorf("second stripe starts at J=%d Y=%v, want J=12 Y=100", second[0].J, second[0].Y)
	}
	for i := 0; i < g.Cols; i++ {
		for _, r := range g.Rows {
			if got := g.Cell(i, r).Over; got != WarpOver(i, r.J) {
				t.Fatalf("Cell(%d, row %d).Over = %v", i, r.J, got)
			}
		}
	}
	if g.StripeRows(5) != nil {
		t.Error("StripeRows of a missing stripe should be nil")
	}
}

func TestPlanClipsRowsToBody(t *testing.T) {
	dims := Dimensions{Width: 800, Height: 1200, Fringe: 30, WeftThickness: 8, TextScale: 2, FrameMargin: 55}
	in := Input{
		Stripes: []Stripe{
			{Y: 0, Height: 100},
			{Y: 1190, Height: 1e18},
			{Y: 1e18, Height: 5},
			{Y: math.Inf(1), Height: 5},
		},
		WarpThickness: 8,
	}
	g, err := Plan(dims, in)
	if err != nil {
		t.Fatalf("Plan() = %v", err)
	}
	if n := len(g.StripeRows(0)); n != 12 {
		t.Errorf("stripe 0 rows = %d, want 12", n)
	}
	tail := g.StripeRows(1)
	if len(tail) != 2 || tail[1].Y != 1199 {
		t.Errorf("stripe 1 rows = %+v, want two rows ending at 1199", tail)
	}
	if n := len(g.StripeRows(2)) + len(g.StripeRows(3)); n != 0 {
		t.Errorf("stripes below the body produced %d rows", n)
	}
	for _, r := range g.Rows {
		if r.Y >= float64(dims.Height) {
			t.Errorf("row %d at y=%v lies below the body", r.J, r.Y)
		}
	}
}

func TestParityFollowsWarpOverInEveryStripe(t *testing.T) {
	type key struct{ i, j int }
	type event struct {
		pass Pass
		seq  int
	}
	seen := make(map[key][]event)
	seq := 0

	w, h := smallDims.Size()
	s := surface.NewImageSurface(int(w), int(h))
	defer s.Close()
	g := New(smallDims, smallInput(), noise.NewRandom(7), noise.NewPerlin(7, 4))
	g.Trace = func(p Pass, i, j int) {
		seen[key{i, j}] = append(seen[key{i, j}], event{p, seq})
		seq++
	}
	if err := g.Draw(surface.NewCanvas(s)); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	grid, err := g.Plan()
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.StripeRows(0)) != 3 || len(grid.StripeRows(1)) != 4 {
		t.Fatalf("unexpected row split %d/%d", len(grid.StripeRows(0)), len(grid.StripeRows(1)))
	}
	for _, r := range grid.Rows {
		for i := 0; i < grid.Cols; i++ {
			evs := seen[key{i, r.J}]
			var weft, over = -1, -1
			for _, e := range evs {
				switch e.pass {
				case PassWeft:
					weft = e.seq
				case PassOver:
					over = e.seq
				case PassShadow:
					if WarpOver(i, r.J) || r.J%2 != 0 {
						t.Errorf("shadow on (%d, %d)", i, r.J)
					}
				case PassHighlight:
					if !WarpOver(i, r.J) || r.J%2 != 1 {
						t.Errorf("highlight on (%d, %d)", i, r.J)
					}
				}
			}
			if weft < 0 {
				t.Fatalf("no weft for (%d, %d)", i, r.J)
			}
			if WarpOver(i, r.J) {
				if over < weft {
					t.Errorf("warp (%d, %d) should be redrawn after the weft", i, r.J)
				}
			} else if over >= 0 {
				t.Errorf("warp (%d, %d) is under but was redrawn", i, r.J)
			}
		}
	}
}

// TestCrossingsShowTopThread reads the finished pixels: a red warp over a
// blue weft must show red where the warp crosses over and blue where it
// passes under, in every stripe.
func TestCrossingsShowTopThread(t *testing.T) {
	dims := smallDims
	dims.Width = 80
	red := surface.MustParseColor("#cc0000")
	blue := surface.MustParseColor("#0000cc")
	solid := Stripe{Primary: red, Secondary: blue, HasSecondary: true, Weave: Solid, WeaveValue: 1}
	top, bottom := solid, solid
	top.Y, top.Height = 0, 27
	bottom.Y, bottom.Height = 27, 33
	in := Input{
		Stripes:       []Stripe{top, bottom},
		WarpThickness: 3,
		Palette:       []surface.Color{red, blue},
		Glyphs:        glyph.Default(),
	}

	w, h := dims.Size()
	s := surface.NewImageSurface(int(w), int(h))
	defer s.Close()
	c := surface.NewCanvas(s)
	c.Background(surface.Gray(222))
	g := New(dims, in, noise.NewRandom(11), noise.NewPerlin(11, 4))
	if err := g.Draw(c); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	img := s.Snapshot()

	grid, err := g.Plan()
	if err != nil {
		t.Fatal(err)
	}
	// Column 9 weights the weft fully to the secondary color and sits clear
	// of both selvedges. Sample inside the warp, mid-way down each row.
	const col = 9
	if wgt := SecondaryWeight(col, 1); math.Abs(wgt-1) > 1e-9 {
		t.Fatalf("SecondaryWeight(%d, 1) = %v, want 1", col, wgt)
	}
	ox, oy := dims.Origin()
	x := int(ox + float64(col)*grid.WarpSpacing + 1)
	for _, stripe := range []int{0, 1} {
		rows := grid.StripeRows(stripe)
		if len(rows) == 0 {
			t.Fatalf("stripe %d has no rows", stripe)
		}
		for _, r := range rows {
			y := int(math.Floor(oy + r.Y + 4))
			px := img.RGBAAt(x, y)
			over := WarpOver(col, r.J)
			if over && px.R <= px.B {
				t.Errorf("stripe %d row %d: warp is over but pixel %v is not red", stripe, r.J, px)
			}
			if !over && px.B <= px.R {
				t.Errorf("stripe %d row %d: warp is under but pixel %v is not blue", stripe, r.J, px)
			}
		}
	}
}

func TestDrawDeterministic(t *testing.T) {
	a := drawSmall(t, smallInput(), 42)
	b := drawSmall(t, smallInput(), 42)
	if !bytes.Equal(a, b) {
		t.Fatal("two draws with the same seed differ")
	}
	c := drawSmall(t, smallInput(), 43)
	if bytes.Equal(a, c) {
		t.Fatal("different seeds produced identical output")
	}
}

func TestDrawHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w, h := smallDims.Size()
	s := surface.NewImageSurface(int(w), int(h))
	g := New(smallDims, smallInput(), noise.NewRandom(1), noise.NewPerlin(1, 4))
	err := g.DrawContext(ctx, surface.NewCanvas(s))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("DrawContext() = %v, want context.Canceled", err)
	}
}

func TestDrawRejectsMissingGlyphBeforeDrawing(t *testing.T) {
	in := smallInput()
	in.TextRows = []string{"h"}
	w, h := smallDims.Size()
	s := surface.NewImageSurface(int(w), int(h))
	before := s.Snapshot().Pix
	g := New(smallDims, in, noise.NewRandom(1), noise.NewPerlin(1, 4))
	if err := g.Draw(surface.NewCanvas(s)); !errs.Is(err, errs.CodeUnsupportedGlyph) {
		t.Fatalf("Draw() = %v, want UNSUPPORTED_GLYPH", err)
	}
	if !bytes.Equal(before, s.Snapshot().Pix) {
		t.Fatal("pixels changed before the glyph error")
	}
}

func TestLayoutText(t *testing.T) {
	dims := Dimensions{Width: 800, Height: 1200, WeftThickness: 8, TextScale: 2}
	m, err := LayoutText(dims, 8, []string{"HI"}, glyph.Default())
	if err != nil {
		t.Fatalf("LayoutText() = %v", err)
	}
	// H has 17 set threads and I has 15.
	if m.Len() != 32 {
		t.Fatalf("Len() = %d, want 32", m.Len())
	}
	for _, r := range m.Rects() {
		if r.W != 18 || r.H != 18 {
			t.Fatalf("box size %vx%v, want 18x18", r.W, r.H)
		}
		if r.X < 337 || r.X+r.W > 337+126 {
			t.Fatalf("box x %v outside the centered row", r.X)
		}
	}
	// The first glyph sits lowest so the row reads bottom to top.
	hRects, iRects := m.Rects()[:17], m.Rects()[17:]
	for _, hr := range hRects {
		for _, ir := range iRects {
			if hr.Y <= ir.Y {
				t.Fatalf("H box at y=%v is not below I box at y=%v", hr.Y, ir.Y)
			}
		}
	}
	r0 := m.Rects()[0]
	if !m.Contains(r0.X, r0.Y) || !m.Contains(r0.X+17.9, r0.Y+17.9) {
		t.Error("Contains() misses a box it holds")
	}
	if m.Contains(0, 0) {
		t.Error("Contains(0, 0) should be false")
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	m, err := LayoutText(smallDims, 3, nil, nil)
	if err != nil || m.Len() != 0 || m.Contains(1, 1) {
		t.Fatalf("LayoutText(nil) = %v, %v", m, err)
	}
}

func TestLayoutTextUnsupported(t *testing.T) {
	_, err := LayoutText(smallDims, 3, []string{"OK", "NÖ"}, glyph.Default())
	if !errs.Is(err, errs.CodeUnsupportedGlyph) {
		t.Fatalf("LayoutText() = %v, want UNSUPPORTED_GLYPH", err)
	}
}

func TestGenerateStripes(t *testing.T) {
	colors := []string{"#D2691E", "#CD853F", "#F4A460"}
	a := GenerateStripes(noise.NewRandom(99), colors, 1200)
	b := GenerateStripes(noise.NewRandom(99), colors, 1200)
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("GenerateStripes lengths %d, %d", len(a), len(b))
	}
	y := 0.0
	for i, s := range a {
		if s != b[i] {
			t.Fatalf("stripe %d differs between runs", i)
		}
		if s.Y != y || !(s.Height > 0) {
			t.Fatalf("stripe %d at y=%v h=%v, want y=%v", i, s.Y, s.Height, y)
		}
		if s.WeaveValue < 0.1 || s.WeaveValue >= 0.5 {
			t.Fatalf("stripe %d weave value %v", i, s.WeaveValue)
		}
		y += s.Height
	}
	if math.Abs(y-1200) > 1e-9 {
		t.Fatalf("stripes cover %v, want 1200", y)
	}
	if GenerateStripes(noise.NewRandom(1), nil, 1200) != nil {
		t.Error("no colors should give no stripes")
	}
}

func TestDimensions(t *testing.T) {
	d := Dimensions{Width: 800, Height: 1200, Fringe: 30, WeftThickness: 8, TextScale: 2, FrameMargin: 55}
	w, h := d.Size()
	if w != 1030 || h != 1430 {
		t.Errorf("Size() = %v, %v, want 1030, 1430", w, h)
	}
	x, y := d.Origin()
	if x != 115 || y != 115 {
		t.Errorf("Origin() = %v, %v, want 115, 115", x, y)
	}
	if err := (Dimensions{Width: 1, Height: 1}).Validate(); !errs.Is(err, errs.CodeValidation) {
		t.Errorf("Validate() = %v, want VALIDATION", err)
	}
}
