package weave

import (
	"math"
	"unicode/utf8"

	"github.com/onchainrugs/rugweave/glyph"
)

// Rect is an axis-aligned box in body space.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies in the half-open box.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Mask is the set of body-space boxes covered by woven text.
//
// Boxes are bucketed into horizontal bands one text cell tall so that a
// lookup only scans the boxes sharing its band.
type Mask struct {
	rects []Rect
	band  float64
	bands map[int][]int
}

// Rects returns the text boxes in layout order.
func (m *Mask) Rects() []Rect {
	if m == nil {
		return nil
	}
	return m.rects
}

// Len returns the number of text boxes.
func (m *Mask) Len() int {
	if m == nil {
		return 0
	}
	return len(m.rects)
}

// Contains reports whether a cell origin at (x, y) falls inside the text.
func (m *Mask) Contains(x, y float64) bool {
	if m == nil || len(m.rects) == 0 {
		return false
	}
	for _, i := range m.bands[int(math.Floor(y/m.band))] {
		if m.rects[i].Contains(x, y) {
			return true
		}
	}
	return false
}

func (m *Mask) add(r Rect) {
	i := len(m.rects)
	m.rects = append(m.rects, r)
	lo := int(math.Floor(r.Y / m.band))
	hi := int(math.Floor((r.Y + r.H) / m.band))
	for b := lo; b <= hi; b++ {
		m.bands[b] = append(m.bands[b], i)
	}
}

// LayoutText places rows side by side, centered on the body, each row
// reading bottom to top. Glyph bitmaps are turned a quarter so that a
// glyph's rows run across the body and its columns run down it; every set
// thread becomes one box of TextScale warp by TextScale weft cells.
//
// A rune missing from glyphs fails with UNSUPPORTED_GLYPH before any box is
// produced. No rows yields an empty mask.
func LayoutText(dims Dimensions, warpThickness int, rows []string, glyphs glyph.Map) (*Mask, error) {
	if err := glyphs.Check(rows); err != nil {
		return nil, err
	}
	scaledWarp := float64((warpThickness + 1) * dims.TextScale)
	scaledWeft := float64((dims.WeftThickness + 1) * dims.TextScale)
	m := &Mask{band: scaledWeft, bands: make(map[int][]int)}
	if len(rows) == 0 {
		return m, nil
	}

	gRows, gCols := glyphs.Size()
	charWidth := float64(gRows) * scaledWarp
	charHeight := float64(gCols) * scaledWeft
	spacing := scaledWeft
	rowSpacing := float64(charWidth * 1.5)

	n := float64(len(rows))
	total := float64(n*charWidth) + float64((n-1)*rowSpacing)
	baseX := (float64(dims.Width) - total) / 2

	for ri, row := range rows {
		count := utf8.RuneCountInString(row)
		if count == 0 {
			continue
		}
		startX := baseX + float64(float64(ri)*(charWidth+rowSpacing))
		textHeight := float64(float64(count)*(charHeight+spacing)) - spacing
		startY := (float64(dims.Height) - textHeight) / 2

		i := 0
		for _, r := range row {
			g := glyphs[r]
			charY := startY + float64(float64(count-1-i)*(charHeight+spacing))
			for gr := 0; gr < g.Rows(); gr++ {
				for gc := 0; gc < g.Cols(); gc++ {
					if !g.On(gr, gc) {
						continue
					}
					m.add(Rect{
						X: startX + float64(float64(gr)*scaledWarp),
						Y: charY + float64(float64(g.Cols()-1-gc)*scaledWeft),
						W: scaledWarp,
						H: scaledWeft,
					})
				}
			}
			i++
		}
	}
	return m, nil
}
