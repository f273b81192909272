package aging

import (
	"github.com/onchainrugs/rugweave/noise"
	"github.com/onchainrugs/rugweave/surface"
	"github.com/onchainrugs/rugweave/weave"
)

// SpecklesPerLevel is how many dirt speckles each dirt level adds.
const SpecklesPerLevel = 220

var (
	dirtColor    = surface.RGB(101, 67, 33)
	fiberColor   = surface.RGB(250, 244, 232)
	agedMultiply = surface.RGB(196, 184, 166)
)

// dirtWash is the wash alpha per dirt level, out of 1.
var dirtWash = [MaxDirtLevel + 1]float64{0, 0.06, 0.12}

// speckleAlpha is the speckle alpha per dirt level, out of 1.
var speckleAlpha = [MaxDirtLevel + 1]float64{0, 0.4, 0.7}

type speckle struct {
	x, y, w, h float64
}

// Overlay draws one rug's wear.
type Overlay struct {
	state  State
	dims   weave.Dimensions
	perlin *noise.Perlin

	speckles []speckle
}

// New prepares the overlay. All speckle positions are drawn from rnd here,
// for the highest dirt level, so that speckle k lands in the same place
// whatever the level.
func New(state State, dims weave.Dimensions, rnd *noise.Random, perlin *noise.Perlin) *Overlay {
	o := &Overlay{state: state, dims: dims, perlin: perlin}
	w, h := float64(dims.Width), float64(dims.Height)
	o.speckles = make([]speckle, MaxDirtLevel*SpecklesPerLevel)
	for k := range o.speckles {
		o.speckles[k] = speckle{
			x: rnd.Range(0, w),
			y: rnd.Range(0, h),
			w: rnd.Range(0.8, 3.2),
			h: rnd.Range(0.8, 3.2),
		}
	}
	return o
}

// State returns the state the overlay draws.
func (o *Overlay) State() State { return o.state }

// Apply draws dirt, then texture, then the frame. It leaves the canvas
// state as it found it.
func (o *Overlay) Apply(c *surface.Canvas) error {
	if err := o.state.Validate(); err != nil {
		return err
	}
	if err := o.drawDirt(c); err != nil {
		return err
	}
	if err := o.drawTexture(c); err != nil {
		return err
	}
	return o.drawFrame(c)
}

func (o *Overlay) drawDirt(c *surface.Canvas) error {
	level := o.state.DirtLevel
	if level == 0 {
		return nil
	}
	ox, oy := o.dims.Origin()
	c.Push()
	c.NoStroke()
	if err := c.Translate(ox, oy); err != nil {
		return err
	}
	c.SetFill(dirtColor.WithAlpha(alpha255(dirtWash[level])))
	if err := c.Rect(0, 0, float64(o.dims.Width), float64(o.dims.Height)); err != nil {
		return err
	}
	c.SetFill(dirtColor.WithAlpha(alpha255(speckleAlpha[level])))
	for _, s := range o.speckles[:level*SpecklesPerLevel] {
		if err := c.Ellipse(s.x, s.y, s.w, s.h); err != nil {
			return err
		}
	}
	return c.Pop()
}

// drawTexture lays short fibers on a 4 px lattice where the noise field
// clears a threshold that drops as the level rises, then multiplies a
// faint aged tint over the body.
func (o *Overlay) drawTexture(c *surface.Canvas) error {
	level := float64(o.state.TextureLevel)
	if level == 0 {
		return nil
	}
	ox, oy := o.dims.Origin()
	threshold := 1 - float64(0.045*level)
	c.Push()
	if err := c.Translate(ox, oy); err != nil {
		return err
	}
	c.NoFill()
	c.SetStroke(fiberColor.WithAlpha(uint8(8 + 6*o.state.TextureLevel)))
	if err := c.StrokeWeight(0.6); err != nil {
		return err
	}
	w, h := float64(o.dims.Width), float64(o.dims.Height)
	for y := 0.0; y < h; y += 4 {
		for x := 0.0; x < w; x += 4 {
			n := o.perlin.Noise(float64(x*0.08), float64(y*0.08), 7.3)
			if n <= threshold {
				continue
			}
			// Fibers lean with the noise so neighbours do not line up.
			lean := float64((n-threshold)*8) - 1
			if err := c.Line(x, y, x+3, y+lean); err != nil {
				return err
			}
		}
	}

	c.NoStroke()
	c.SetBlendMode(surface.BlendMultiply)
	c.SetFill(agedMultiply.WithAlpha(uint8(3 * o.state.TextureLevel)))
	if err := c.Rect(0, 0, w, h); err != nil {
		return err
	}
	return c.Pop()
}

func alpha255(a float64) uint8 {
	return surface.RGBA(0, 0, 0, float64(a*255)).A
}
