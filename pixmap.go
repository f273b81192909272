package rugweave

import (
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
)

// Pixmap is a finished render: a rectangular RGBA buffer, 4 bytes per
// pixel, alpha premultiplied.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// newPixmap takes ownership of img's pixels, repacking them when the
// stride has padding.
func newPixmap(img *image.RGBA) *Pixmap {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	data := img.Pix
	if img.Stride != w*4 || len(data) != w*h*4 {
		data = make([]uint8, w*h*4)
		for y := 0; y < h; y++ {
			off := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(data[y*w*4:(y+1)*w*4], img.Pix[off:off+w*4])
		}
	}
	return &Pixmap{width: w, height: h, data: data}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// Image returns a copy of the pixels as an *image.RGBA.
func (p *Pixmap) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// Hash returns the hex SHA-256 of the pixel bytes. Equal renders hash
// equal on every platform.
func (p *Pixmap) Hash() string {
	sum := sha256.Sum256(p.data)
	return hex.EncodeToString(sum[:])
}

// EncodePNG writes the pixmap as PNG.
func (p *Pixmap) EncodePNG(w io.Writer) error {
	return png.Encode(w, p)
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.RGBA{}
	}
	i := (y*p.width + x) * 4
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
