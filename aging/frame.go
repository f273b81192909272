package aging

import (
	"github.com/onchainrugs/rugweave/surface"
)

// FrameStyle is the look of one frame level. Levels do not interpolate.
type FrameStyle struct {
	Color surface.Color
	// Band is the stroke width of the main band.
	Band float64
	// Lines is the number of thin inner lines inside the band.
	Lines int
	// Corners adds square corner plates.
	Corners bool
	// Glint adds a highlight stroke across the top-left corner.
	Glint bool
}

// FrameStyles maps every frame level to its style. FrameNone draws nothing.
var FrameStyles = map[FrameLevel]FrameStyle{
	FrameNone:    {},
	FrameBronze:  {Color: surface.MustParseColor("#CD7F32"), Band: 6, Lines: 1},
	FrameSilver:  {Color: surface.MustParseColor("#C0C0C0"), Band: 8, Lines: 2, Corners: true},
	FrameGold:    {Color: surface.MustParseColor("#FFD700"), Band: 10, Lines: 2, Corners: true, Glint: true},
	FrameDiamond: {Color: surface.MustParseColor("#B9F2FF"), Band: 12, Lines: 3, Corners: true, Glint: true},
}

// drawFrame strokes the frame in the margin around the fringe, centered
// between the rug space edge and the fringe tips.
func (o *Overlay) drawFrame(c *surface.Canvas) error {
	style, ok := FrameStyles[o.state.Frame]
	if !ok || style.Band == 0 || o.dims.FrameMargin == 0 {
		return nil
	}
	w, h := o.dims.Size()
	m := float64(o.dims.FrameMargin)
	inset := m / 2
	// The band glows brighter with each level.
	glow := 0.3 + float64(0.1*float64(o.state.Frame.Rank()))

	c.Push()
	c.NoFill()
	c.SetStroke(style.Color.WithAlpha(alpha255(glow + 0.4)))
	if err := c.StrokeWeight(style.Band); err != nil {
		return err
	}
	if err := c.Rect(inset, inset, w-2*inset, h-2*inset); err != nil {
		return err
	}

	line := style.Color.Scale(0.7)
	if err := c.StrokeWeight(1); err != nil {
		return err
	}
	c.SetStroke(line)
	step := style.Band / float64(style.Lines+1)
	for i := 1; i <= style.Lines; i++ {
		d := inset - style.Band/2 + float64(float64(i)*step)
		if err := c.Rect(d, d, w-2*d, h-2*d); err != nil {
			return err
		}
	}

	if style.Corners {
		c.NoStroke()
		c.SetFill(line)
		size := float64(style.Band * 1.6)
		for _, p := range []surface.Point{
			{X: inset, Y: inset},
			{X: w - inset, Y: inset},
			{X: inset, Y: h - inset},
			{X: w - inset, Y: h - inset},
		} {
			if err := c.Rect(p.X-size/2, p.Y-size/2, size, size); err != nil {
				return err
			}
		}
	}

	if style.Glint {
		c.SetStroke(surface.White.WithAlpha(alpha255(glow)))
		if err := c.StrokeWeight(style.Band / 3); err != nil {
			return err
		}
		g := m * 1.5
		if err := c.Line(inset, inset+g, inset+g, inset); err != nil {
			return err
		}
	}
	return c.Pop()
}
