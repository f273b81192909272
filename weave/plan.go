package weave

import (
	"math"

	"github.com/onchainrugs/rugweave/internal/detmath"
)

// WarpOver reports whether warp column i passes over weft row j.
// j counts weft rows across the whole body, so the checkerboard never
// restarts where a stripe begins.
func WarpOver(i, j int) bool {
	return (i+j)%2 == 0
}

// SecondaryWeight is the share of a stripe's secondary color at warp
// column i, a smooth function of the column and the stripe's weave value
// ranging over [0, 1].
func SecondaryWeight(i int, weaveValue float64) float64 {
	phase := float64(float64(i)*weaveValue) * detmath.HalfPi
	return 0.5 + float64(0.5*detmath.Sin(phase))
}

// Row is one weft row of the body.
type Row struct {
	// J is the row index counted across all stripes.
	J int
	// Stripe indexes Input.Stripes.
	Stripe int
	// Y is the body-space top of the row.
	Y float64
}

// Cell is one warp/weft crossing.
type Cell struct {
	I, J int
	X, Y float64
	// Over is true where the warp lies on top.
	Over bool
	// Text is true where the crossing is recolored for woven text.
	Text bool
}

// Grid is the crossing layout of a body.
type Grid struct {
	Rows        []Row
	Cols        int
	WarpSpacing float64
	WeftSpacing float64
	Text        *Mask
}

// Cell returns the crossing at warp column i of row r.
func (g *Grid) Cell(i int, r Row) Cell {
	x := float64(i) * g.WarpSpacing
	return Cell{
		I:    i,
		J:    r.J,
		X:    x,
		Y:    r.Y,
		Over: WarpOver(i, r.J),
		Text: g.Text.Contains(x, r.Y),
	}
}

// StripeRows returns the rows belonging to stripe s.
func (g *Grid) StripeRows(s int) []Row {
	lo, hi := -1, -1
	for k, r := range g.Rows {
		if r.Stripe == s {
			if lo < 0 {
				lo = k
			}
			hi = k + 1
		}
	}
	if lo < 0 {
		return nil
	}
	return g.Rows[lo:hi]
}

// Plan lays out the crossings and the text mask for in without drawing.
func Plan(dims Dimensions, in Input) (*Grid, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	mask, err := LayoutText(dims, in.WarpThickness, in.TextRows, in.Glyphs)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		WarpSpacing: float64(in.WarpThickness + 1),
		WeftSpacing: float64(dims.WeftThickness + 1),
		Text:        mask,
	}
	g.Cols = int(math.Ceil(float64(dims.Width) / g.WarpSpacing))
	// Rows are clipped to the body, so a stripe never yields more than
	// ceil(Height/WeftSpacing) rows whatever its declared extent.
	body := float64(dims.Height)
	j := 0
	for s, st := range in.Stripes {
		if !(st.Y >= 0) || !(st.Height > 0) {
			continue
		}
		end := min(st.Y+st.Height, body)
		for y := st.Y; y < end; y += g.WeftSpacing {
			g.Rows = append(g.Rows, Row{J: j, Stripe: s, Y: y})
			j++
		}
	}
	return g, nil
}
