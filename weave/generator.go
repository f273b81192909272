package weave

import (
	"context"

	"github.com/onchainrugs/rugweave/internal/detmath"
	"github.com/onchainrugs/rugweave/noise"
	"github.com/onchainrugs/rugweave/palette"
	"github.com/onchainrugs/rugweave/surface"
)

// Pass names a stage of stripe drawing, reported to Generator.Trace.
type Pass int

const (
	PassWarp Pass = iota
	PassWeft
	PassOver
	PassShadow
	PassHighlight
)

func (p Pass) String() string {
	switch p {
	case PassWarp:
		return "warp"
	case PassWeft:
		return "weft"
	case PassOver:
		return "over"
	case PassShadow:
		return "shadow"
	case PassHighlight:
		return "highlight"
	}
	return "unknown"
}

var (
	shadowColor    = surface.Color{A: 40}
	highlightColor = surface.Color{R: 255, G: 255, B: 255, A: 30}
	reliefLight    = surface.Color{R: 255, G: 255, B: 255, A: 25}
	reliefDark     = surface.Color{A: 20}
)

// Generator draws one rug. It consumes its random stream, so a Generator
// draws once; build a new one with a fresh stream to draw again.
type Generator struct {
	dims   Dimensions
	in     Input
	rnd    *noise.Random
	perlin *noise.Perlin

	lightText surface.Color
	darkText  surface.Color

	// Trace, when set, is called before every stripe cell is drawn.
	Trace func(pass Pass, i, j int)
}

// New returns a generator for in. rnd and perlin must be freshly seeded
// for the render and must not be shared.
func New(dims Dimensions, in Input, rnd *noise.Random, perlin *noise.Perlin) *Generator {
	g := &Generator{dims: dims, in: in, rnd: rnd, perlin: perlin}
	if len(in.Palette) > 0 {
		dark, light := palette.Extremes(in.Palette)
		g.lightText = light.Lerp(surface.White, 0.3)
		g.darkText = dark.Lerp(surface.Black, 0.4)
	}
	return g
}

// Plan returns the crossing layout the generator will draw.
func (g *Generator) Plan() (*Grid, error) {
	return Plan(g.dims, g.in)
}

// Draw renders the rug onto c.
func (g *Generator) Draw(c *surface.Canvas) error {
	return g.DrawContext(context.Background(), c)
}

// DrawContext renders the rug onto c, checking ctx between stripes.
// Cancellation is returned unchanged.
func (g *Generator) DrawContext(ctx context.Context, c *surface.Canvas) error {
	grid, err := g.Plan()
	if err != nil {
		return err
	}
	ox, oy := g.dims.Origin()

	c.Push()
	if err := c.Translate(ox, oy); err != nil {
		return err
	}
	for s := range g.in.Stripes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.drawStripe(c, grid, s); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.drawTextureOverlay(c); err != nil {
		return err
	}
	if err := c.Pop(); err != nil {
		return err
	}

	if err := g.drawFringe(c, true); err != nil {
		return err
	}
	if err := g.drawFringe(c, false); err != nil {
		return err
	}
	return g.drawSelvedge(c, grid)
}

func (g *Generator) trace(p Pass, i, j int) {
	if g.Trace != nil {
		g.Trace(p, i, j)
	}
}

// threadColor jitters base by ±spread per channel, drawing r, g, b in
// that order, and swaps in a text color on text cells.
func (g *Generator) threadColor(base surface.Color, spread float64, text bool) surface.Color {
	r := float64(base.R) + g.rnd.Range(-spread, spread)
	gr := float64(base.G) + g.rnd.Range(-spread, spread)
	b := float64(base.B) + g.rnd.Range(-spread, spread)
	if text {
		if (r+gr+b)/3 < 128 {
			return g.lightText
		}
		return g.darkText
	}
	return surface.RGB(r, gr, b)
}

func (g *Generator) weftColor(st Stripe, i int, x, y float64) surface.Color {
	c := st.Primary
	if st.HasSecondary {
		t := SecondaryWeight(i, st.WeaveValue)
		if st.Weave == Mixed {
			if t >= 0.5 {
				c = st.Secondary
			}
		} else {
			c = c.Lerp(st.Secondary, t)
		}
	}
	if st.Weave == Textured {
		n := g.perlin.Noise2(float64(x*0.05), float64(y*0.05))
		c = c.Lerp(surface.White, float64(n*0.15))
	}
	return c
}

func warpCurve(y float64) float64 { return float64(0.5 * detmath.Sin(float64(y*0.05))) }

func weftCurve(x float64) float64 { return float64(0.5 * detmath.Cos(float64(x*0.05))) }

func (g *Generator) drawStripe(c *surface.Canvas, grid *Grid, s int) error {
	st := g.in.Stripes[s]
	rows := grid.StripeRows(s)
	if len(rows) == 0 {
		return nil
	}
	wp := float64(g.in.WarpThickness)
	wt := float64(g.dims.WeftThickness)
	ws, wfs := grid.WarpSpacing, grid.WeftSpacing
	c.NoStroke()

	// Warp threads, column by column. Colors are kept for the over pass.
	warp := make([]surface.Color, len(rows)*grid.Cols)
	for i := 0; i < grid.Cols; i++ {
		for k, r := range rows {
			cell := grid.Cell(i, r)
			g.trace(PassWarp, i, r.J)
			col := g.threadColor(st.Primary, 15, cell.Text)
			warp[k*grid.Cols+i] = col
			c.SetFill(col)
			if err := c.Rect(cell.X+warpCurve(cell.Y), cell.Y, wp, wfs); err != nil {
				return err
			}
		}
	}

	// Weft threads, row by row.
	for _, r := range rows {
		for i := 0; i < grid.Cols; i++ {
			cell := grid.Cell(i, r)
			g.trace(PassWeft, i, r.J)
			c.SetFill(g.threadColor(g.weftColor(st, i, cell.X, cell.Y), 20, cell.Text))
			if err := c.Rect(cell.X, cell.Y+weftCurve(cell.X), ws, wt); err != nil {
				return err
			}
		}
	}

	// Warp segments that lie on top of the weft.
	for k, r := range rows {
		for i := 0; i < grid.Cols; i++ {
			cell := grid.Cell(i, r)
			if !cell.Over {
				continue
			}
			g.trace(PassOver, i, r.J)
			c.SetFill(warp[k*grid.Cols+i])
			if err := c.Rect(cell.X+warpCurve(cell.Y), cell.Y, wp, wfs); err != nil {
				return err
			}
		}
	}

	// Shade under-crossings on even rows and light over-crossings on odd ones.
	for _, r := range rows {
		for i := 0; i < grid.Cols; i++ {
			cell := grid.Cell(i, r)
			switch {
			case !cell.Over && r.J%2 == 0:
				if ws <= 2 || wfs <= 2 {
					continue
				}
				g.trace(PassShadow, i, r.J)
				c.SetFill(shadowColor)
				if err := c.Rect(cell.X+1, cell.Y+1, ws-2, wfs-2); err != nil {
					return err
				}
			case cell.Over && r.J%2 == 1:
				g.trace(PassHighlight, i, r.J)
				c.SetFill(highlightColor)
				if err := c.Rect(cell.X, cell.Y, ws-1, wfs-1); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// drawTextureOverlay multiplies a fine hatch and a coarser relief over the
// body. It consumes no randomness.
func (g *Generator) drawTextureOverlay(c *surface.Canvas) error {
	c.Push()
	c.SetBlendMode(surface.BlendMultiply)
	c.NoStroke()
	w, h := float64(g.dims.Width), float64(g.dims.Height)

	for x := 0.0; x < w; x += 2 {
		for y := 0.0; y < h; y += 2 {
			n := g.perlin.Noise2(float64(x*0.02), float64(y*0.02))
			a := detmath.Map(n, 0, 1, 0, 50)
			c.SetFill(surface.RGBA(0, 0, 0, a))
			if err := c.Rect(x, y, 2, 2); err != nil {
				return err
			}
		}
	}

	for x := 0.0; x < w; x += 6 {
		for y := 0.0; y < h; y += 6 {
			n := g.perlin.Noise2(float64(x*0.03), float64(y*0.03))
			switch {
			case n > 0.6:
				c.SetFill(reliefLight)
			case n < 0.4:
				c.SetFill(reliefDark)
			default:
				continue
			}
			if err := c.Rect(x, y, 6, 6); err != nil {
				return err
			}
		}
	}
	return c.Pop()
}
