package weave

import (
	"math"

	"github.com/onchainrugs/rugweave/internal/detmath"
	"github.com/onchainrugs/rugweave/surface"
)

const (
	strandSpan       = 12
	threadsPerStrand = 12
	fringeVertices   = 10
)

// drawFringe draws the warp ends hanging off the top or bottom of the body.
func (g *Generator) drawFringe(c *surface.Canvas, top bool) error {
	if g.dims.Fringe == 0 || len(g.in.Palette) == 0 {
		return nil
	}
	ox, oy := g.dims.Origin()
	w := float64(g.dims.Width)
	h := float64(g.dims.Fringe)
	y := oy + float64(g.dims.Height)
	startY, endY := y, y+h
	if top {
		y = oy - h
		startY, endY = y+h, y
	}

	strands := w / strandSpan
	strandWidth := w / strands
	count := int(math.Ceil(strands))

	c.Push()
	c.NoFill()
	for i := 0; i < count; i++ {
		strandX := ox + float64(float64(i)*strandWidth)
		col := g.in.Palette[g.rnd.Choice(len(g.in.Palette))].Scale(0.7)

		for j := 0; j < threadsPerStrand; j++ {
			threadX := strandX + g.rnd.Range(-strandWidth/6, strandWidth/6)
			amplitude := g.rnd.Range(1, 4)
			freq := g.rnd.Range(0.2, 0.8)
			direction := -1.0
			if g.rnd.Choice(2) == 1 {
				direction = 1
			}
			curl := g.rnd.Range(0.5, 2)
			length := g.rnd.Range(0.8, 1.2)

			c.SetStroke(col)
			if err := c.StrokeWeight(g.rnd.Range(0.5, 1.2)); err != nil {
				return err
			}
			c.BeginShape()
			for k := 0; k <= fringeVertices; k++ {
				t := float64(k) / fringeVertices
				yPos := detmath.Lerp(startY, endY, float64(t*length))
				wave := detmath.Sin(float64(float64(t*detmath.Pi) * freq))
				dx := float64(float64(float64(wave*amplitude)*t)*direction) * curl
				dx += g.rnd.Range(-1, 1)
				if g.rnd.Float() < 0.3 {
					dx += g.rnd.Range(-2, 2)
				}
				c.Vertex(threadX+dx, yPos)
			}
			if err := c.EndShape(false); err != nil {
				return err
			}
		}
	}
	return c.Pop()
}

// drawSelvedge draws a weft loop at both long edges for every row except
// the first and the last, the whole left side before the right.
func (g *Generator) drawSelvedge(c *surface.Canvas, grid *Grid) error {
	if len(grid.Rows) < 3 {
		return nil
	}
	rows := grid.Rows[1 : len(grid.Rows)-1]
	c.Push()
	c.NoStroke()
	for _, left := range []bool{true, false} {
		for _, r := range rows {
			if err := g.selvedgeLoop(c, r, left); err != nil {
				return err
			}
		}
	}
	return c.Pop()
}

type rgb struct{ r, g, b float64 }

func (v rgb) add(d float64) rgb { return rgb{v.r + d, v.g + d, v.b + d} }

func (v rgb) mul(f float64) rgb {
	return rgb{float64(v.r * f), float64(v.g * f), float64(v.b * f)}
}

func (v rgb) clamp() rgb {
	return rgb{detmath.Clamp(v.r, 0, 255), detmath.Clamp(v.g, 0, 255), detmath.Clamp(v.b, 0, 255)}
}

func (v rgb) color(alpha float64) surface.Color { return surface.RGBA(v.r, v.g, v.b, alpha) }

func (g *Generator) selvedgeLoop(c *surface.Canvas, r Row, left bool) error {
	st := g.in.Stripes[r.Stripe]
	base := st.Primary
	if st.HasSecondary && st.Weave == Mixed {
		t := float64(g.perlin.Noise1(float64(r.Y*0.1))*0.5) + 0.5
		base = base.Lerp(st.Secondary, t)
	}
	col := rgb{float64(base.R), float64(base.G), float64(base.B)}.mul(0.8)

	ox, oy := g.dims.Origin()
	wt := float64(g.dims.WeftThickness)
	edgeX := ox
	start, end := detmath.HalfPi, -detmath.HalfPi
	if !left {
		edgeX = ox + float64(g.dims.Width)
		start, end = -detmath.HalfPi, detmath.HalfPi
	}

	radius := float64(wt * g.rnd.Range(1.2, 1.8))
	cx := edgeX + g.rnd.Range(-2, 2)
	cy := oy + r.Y + wt/2 + g.rnd.Range(-1, 1)
	start += g.rnd.Range(-0.2, 0.2)
	end += g.rnd.Range(-0.2, 0.2)

	// Thread rings, alternately lighter and darker.
	threads := max(6, int(math.Floor(radius/1.2)))
	spacing := radius / float64(threads)
	for i := 0; i < threads; i++ {
		tr := radius - float64(float64(i)*spacing)
		shade := col.add(-20)
		if i%2 == 0 {
			shade = col.add(25)
		}
		shade = shade.clamp()
		shade = rgb{
			shade.r + g.rnd.Range(-10, 10),
			shade.g + g.rnd.Range(-10, 10),
			shade.b + g.rnd.Range(-10, 10),
		}.clamp()
		c.SetFill(shade.color(88))
		tx := cx + g.rnd.Range(-1, 1)
		ty := cy + g.rnd.Range(-1, 1)
		a0 := start + g.rnd.Range(-0.1, 0.1)
		a1 := end + g.rnd.Range(-0.1, 0.1)
		if err := c.Arc(tx, ty, tr*2, tr*2, a0, a1); err != nil {
			return err
		}
	}

	for i := 0; i < 3; i++ {
		dr := float64(radius * (0.3 + float64(i)*0.2))
		alpha := float64(180-40*i) * 0.7
		d := -15.0
		if i%2 == 0 {
			d = 15
		}
		c.SetFill(col.add(d).clamp().color(alpha))
		dx := cx + g.rnd.Range(-0.5, 0.5)
		dy := cy + g.rnd.Range(-0.5, 0.5)
		a0 := start + g.rnd.Range(-0.05, 0.05)
		a1 := end + g.rnd.Range(-0.05, 0.05)
		if err := c.Arc(dx, dy, dr*2, dr*2, a0, a1); err != nil {
			return err
		}
	}

	shadowOffset := -1.0
	if left {
		shadowOffset = 1
	}
	c.SetFill(col.mul(0.6).color(70))
	if err := c.Arc(cx+shadowOffset, cy+1, radius*2, radius*2, start, end); err != nil {
		return err
	}

	// Knots along the loop.
	for i := 0; i < 8; i++ {
		angle := g.rnd.Range(start, end)
		dr := float64(radius * g.rnd.Range(0.2, 0.7))
		kx := cx + float64(detmath.Cos(angle)*dr)
		ky := cy + float64(detmath.Sin(angle)*dr)
		if i%2 == 0 {
			c.SetFill(col.add(20).color(120))
		} else {
			c.SetFill(col.add(-15).color(120))
		}
		if err := c.Ellipse(kx, ky, g.rnd.Range(1.5, 3.5), g.rnd.Range(1.5, 3.5)); err != nil {
			return err
		}
	}
	return nil
}
