package server

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OG card geometry.
const (
	OGWidth  = 1200
	OGHeight = 630

	ogFontSize = 48
	// ogCaptionBaseline is the caption baseline measured up from the bottom.
	ogCaptionBaseline = 40
)

var ogBackground = color.RGBA{0xDE, 0xDE, 0xDE, 0xFF}

var (
	captionFont     *opentype.Font
	captionFontErr  error
	captionFontOnce sync.Once
)

// newCaptionFace returns a fresh face; faces cache glyph state and must
// not be shared between goroutines.
func newCaptionFace() (font.Face, error) {
	captionFontOnce.Do(func() {
		captionFont, captionFontErr = opentype.Parse(gobold.TTF)
	})
	if captionFontErr != nil {
		return nil, fmt.Errorf("parse caption font: %w", captionFontErr)
	}
	return opentype.NewFace(captionFont, &opentype.FaceOptions{
		Size:    ogFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// ComposeOG places rug on a 1200x630 social card: the image is scaled to
// fit 70% of the width and 90% of the height, centered, with the caption
// "OnchainRug #<id>" near the bottom edge.
func ComposeOG(rug image.Image, tokenID uint64) (*image.RGBA, error) {
	face, err := newCaptionFace()
	if err != nil {
		return nil, err
	}
	defer face.Close()

	card := image.NewRGBA(image.Rect(0, 0, OGWidth, OGHeight))
	draw.Draw(card, card.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	b := rug.Bounds()
	if b.Dx() > 0 && b.Dy() > 0 {
		scale := min(OGWidth*0.7/float64(b.Dx()), OGHeight*0.9/float64(b.Dy()))
		w := int(float64(b.Dx())*scale + 0.5)
		h := int(float64(b.Dy())*scale + 0.5)
		x0, y0 := (OGWidth-w)/2, (OGHeight-h)/2
		draw.CatmullRom.Scale(card, image.Rect(x0, y0, x0+w, y0+h), rug, b, draw.Over, nil)
	}

	d := &font.Drawer{Dst: card, Src: image.Black, Face: face}
	caption := fmt.Sprintf("OnchainRug #%d", tokenID)
	width := d.MeasureString(caption)
	d.Dot = fixed.Point26_6{
		X: (fixed.I(OGWidth) - width) / 2,
		Y: fixed.I(OGHeight - ogCaptionBaseline),
	}
	d.DrawString(caption)
	return card, nil
}
