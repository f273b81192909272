// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/surface"
)

var errTest = errs.New(errs.CodeInvalidGeometry, "path has a NaN coordinate")

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func testParams() rugweave.RenderParameters {
	return rugweave.RenderParameters{
		TokenID: 7,
		Seed:    42,
		Palette: rugweave.Palette{Name: "Test", Colors: []string{"#aa0000", "#004400", "#f0e0d0"}},
		StripeRows: []rugweave.StripeRow{
			{Y: 0, Height: 100, PrimaryColor: "#aa0000"},
			{Y: 100, Height: 100, PrimaryColor: "#004400", WeaveType: "solid"},
		},
		TextRows:      []string{"HI"},
		WarpThickness: 8,
	}
}

func TestSurfacePresent(t *testing.T) {
	screen := newScreen(t, 4, 3)
	s := NewSurface(screen, 8, 8)
	s.Clear(surface.Color{R: 255, A: 255})
	if err := s.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	cols, rows := CellArea(screen)
	if cols != 4 || rows != 2 {
		t.Fatalf("CellArea = %dx%d, want 4x2", cols, rows)
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r, _, style, _ := screen.GetContent(x, y)
			if r != halfBlock {
				t.Fatalf("cell (%d,%d) = %q, want half block", x, y, r)
			}
			fg, bg, _ := style.Decompose()
			for _, c := range []tcell.Color{fg, bg} {
				cr, cg, cb := c.RGB()
				if cr != 255 || cg != 0 || cb != 0 {
					t.Errorf("cell (%d,%d) color = %d,%d,%d, want red", x, y, cr, cg, cb)
				}
			}
		}
	}
	if r, _, _, _ := screen.GetContent(0, 2); r == halfBlock {
		t.Error("status row was drawn over")
	}
}

func TestRegisterAllocatesTerminalSurface(t *testing.T) {
	screen := newScreen(t, 10, 6)
	Register(screen)
	defer Unregister()

	s, err := surface.NewSurfaceByName(Backend, 20, 20)
	if err != nil {
		t.Fatalf("NewSurfaceByName: %v", err)
	}
	defer s.Close()
	if _, ok := s.(*Surface); !ok {
		t.Fatalf("surface type = %T, want *Surface", s)
	}

	Unregister()
	if _, err := surface.NewSurfaceByName(Backend, 20, 20); err == nil {
		t.Error("expected an error after Unregister")
	}
}

func TestHandleKeys(t *testing.T) {
	screen := newScreen(t, 20, 10)
	v, err := NewViewer(screen, rugweave.DefaultConfig(), testParams())
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	defer v.Close()

	key := func(r rune) tcell.Event { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
	tests := []struct {
		name    string
		ev      tcell.Event
		quit    bool
		changed bool
		dirt    int
		texture int
		frame   rugweave.FrameLevel
	}{
		{"dirt up", key('d'), false, true, 1, 0, ""},
		{"dirt up again", key('d'), false, true, 2, 0, ""},
		{"dirt capped", key('d'), false, false, 2, 0, ""},
		{"texture up", key('t'), false, true, 2, 1, ""},
		{"frame up", key('f'), false, true, 2, 1, rugweave.FrameBronze},
		{"frame down", key('F'), false, true, 2, 1, rugweave.FrameNone},
		{"clean keeps frame", key('c'), false, true, 0, 0, rugweave.FrameNone},
		{"clean twice", key('c'), false, false, 0, 0, rugweave.FrameNone},
		{"dirt floor", key('D'), false, false, 0, 0, rugweave.FrameNone},
		{"unbound", key('x'), false, false, 0, 0, rugweave.FrameNone},
		{"quit", key('q'), true, false, 0, 0, rugweave.FrameNone},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, false, 0, 0, rugweave.FrameNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit, changed := v.handle(tt.ev)
			if quit != tt.quit || changed != tt.changed {
				t.Errorf("handle = (%v, %v), want (%v, %v)", quit, changed, tt.quit, tt.changed)
			}
			a := v.Aging()
			if a.DirtLevel != tt.dirt || a.TextureLevel != tt.texture || a.Frame != tt.frame {
				t.Errorf("aging = %+v, want dirt %d texture %d frame %q", a, tt.dirt, tt.texture, tt.frame)
			}
		})
	}
}

func TestViewerRun(t *testing.T) {
	screen := newScreen(t, 30, 12)
	v, err := NewViewer(screen, rugweave.DefaultConfig(), testParams(), WithFastNoise(true))
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	defer v.Close()

	screen.InjectKey(tcell.KeyRune, 'd', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := v.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatal("Run did not stop on q")
	}
	if got := v.Aging().DirtLevel; got != 1 {
		t.Errorf("DirtLevel = %d, want 1", got)
	}
}

func TestViewerDrawsAndShowsStatus(t *testing.T) {
	screen := newScreen(t, 30, 12)
	v, err := NewViewer(screen, rugweave.DefaultConfig(), testParams())
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	defer v.Close()

	if err := v.draw(context.Background()); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != halfBlock {
		t.Errorf("image cell = %q, want half block", r)
	}
	var status []rune
	for x := 0; x < 12; x++ {
		r, _, _, _ := screen.GetContent(x, 11)
		status = append(status, r)
	}
	if got := string(status); got != " #7  dirt 0/" {
		t.Errorf("status = %q", got)
	}
}

func TestNewViewerRejectsInvalidParams(t *testing.T) {
	screen := newScreen(t, 20, 10)
	p := testParams()
	p.TextRows = []string{"H~"}
	if _, err := NewViewer(screen, rugweave.DefaultConfig(), p); !rugweave.IsInputError(err) {
		t.Fatalf("err = %v, want an input error", err)
	}
	if _, err := surface.NewSurfaceByName(Backend, 4, 4); err == nil {
		t.Error("backend stayed registered after a rejected viewer")
	}
}

func TestPlaceholder(t *testing.T) {
	screen := newScreen(t, 40, 10)
	v, err := NewViewer(screen, rugweave.DefaultConfig(), testParams())
	if err != nil {
		t.Fatalf("NewViewer: %v", err)
	}
	defer v.Close()

	if err := v.settle(context.Canceled); err != nil {
		t.Fatalf("settle(Canceled) = %v", err)
	}
	if v.Err() != nil {
		t.Fatal("cancel recorded as a draw error")
	}

	if err := v.settle(errTest); err != nil {
		t.Fatalf("settle = %v", err)
	}
	if !errs.Is(v.Err(), errs.CodeInvalidGeometry) {
		t.Fatalf("Err = %v", v.Err())
	}
	found := false
	for y := 0; y < 9; y++ {
		var row []rune
		for x := 0; x < 40; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			row = append(row, r)
		}
		if strings.Contains(string(row), "rug unavailable") {
			found = true
		}
	}
	if !found {
		t.Error("placeholder card not drawn")
	}
}
