// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"image"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/onchainrugs/rugweave/surface"
)

// Backend is the registry name of the terminal surface.
const Backend = "terminal"

// halfBlock paints the top half of a cell in the foreground color.
const halfBlock = '▀'

// Surface renders offscreen and presents to a tcell screen on Flush. All
// rows but the last are used; the last is left for a status line.
type Surface struct {
	*surface.ImageSurface
	screen tcell.Screen
}

// NewSurface returns a width x height surface presenting to screen.
func NewSurface(screen tcell.Screen, width, height int) *Surface {
	return &Surface{ImageSurface: surface.NewImageSurface(width, height), screen: screen}
}

// CellArea returns the cells available for the image on screen.
func CellArea(screen tcell.Screen) (cols, rows int) {
	w, h := screen.Size()
	return w, max(h-1, 0)
}

// Flush presents the current image.
func (s *Surface) Flush() error {
	s.Present()
	return nil
}

// Present scales the image to the cell area and writes it as half blocks.
func (s *Surface) Present() {
	cols, rows := CellArea(s.screen)
	if cols == 0 || rows == 0 {
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.Image(), s.Image().Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := dst.RGBAAt(x, 2*y)
			bottom := dst.RGBAAt(x, 2*y+1)
			st := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			s.screen.SetContent(x, y, halfBlock, nil, st)
		}
	}
	s.screen.Show()
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

var _ surface.Surface = (*Surface)(nil)

var (
	registerMu sync.Mutex
	registered tcell.Screen
)

// Register makes Backend allocate surfaces that present to screen. Only
// one screen can be registered at a time; a later call replaces it.
func Register(screen tcell.Screen) {
	registerMu.Lock()
	registered = screen
	registerMu.Unlock()

	surface.Register(Backend, 0, func(opts surface.Options) (surface.Surface, error) {
		registerMu.Lock()
		scr := registered
		registerMu.Unlock()
		s := NewSurface(scr, opts.Width, opts.Height)
		if opts.Background != (surface.Color{}) {
			s.Clear(opts.Background)
		}
		return s, nil
	}, func() bool {
		registerMu.Lock()
		defer registerMu.Unlock()
		return registered != nil
	})
}

// Unregister removes Backend from the registry.
func Unregister() {
	surface.Unregister(Backend)
	registerMu.Lock()
	registered = nil
	registerMu.Unlock()
}
