// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/onchainrugs/rugweave"
	"github.com/onchainrugs/rugweave/aging"
	"github.com/onchainrugs/rugweave/errs"
)

// Supersample is the offscreen pixels per half-block pixel on each axis.
const Supersample = 4

// Option configures a Viewer.
type Option func(*Viewer)

// WithLogger sets the logger passed to the orchestrator.
func WithLogger(l *slog.Logger) Option {
	return func(v *Viewer) { v.log = l }
}

// WithFastNoise trades noise detail for redraw speed.
func WithFastNoise(fast bool) Option {
	return func(v *Viewer) { v.fast = fast }
}

// Viewer shows one rug and redraws it when its wear changes or the
// terminal is resized. It owns the screen for the duration of Run.
type Viewer struct {
	screen tcell.Screen
	cfg    rugweave.Config
	params rugweave.RenderParameters
	log    *slog.Logger
	fast   bool

	orch    *rugweave.Orchestrator
	lastErr error
}

// NewViewer registers the terminal backend on screen and validates params.
func NewViewer(screen tcell.Screen, cfg rugweave.Config, params rugweave.RenderParameters, opts ...Option) (*Viewer, error) {
	v := &Viewer{screen: screen, cfg: cfg, params: params.Clone()}
	v.params.Mode = rugweave.ModeInteractive
	for _, opt := range opts {
		opt(v)
	}
	if v.log == nil {
		v.log = rugweave.Logger()
	}
	if err := v.params.Validate(cfg); err != nil {
		return nil, err
	}
	Register(screen)
	orch, err := rugweave.NewOrchestrator(cfg, rugweave.WithSurface(Backend), rugweave.WithLogger(v.log))
	if err != nil {
		Unregister()
		return nil, err
	}
	v.orch = orch
	return v, nil
}

// Aging returns the current wear.
func (v *Viewer) Aging() rugweave.AgingState { return v.params.Aging }

// Err returns the error of the last draw, if it failed.
func (v *Viewer) Err() error { return v.lastErr }

// Close releases the canvas and unregisters the backend.
func (v *Viewer) Close() error {
	err := v.orch.Close()
	Unregister()
	return err
}

// Run draws and handles keys until the user quits, the screen is finalized
// or ctx is done. A key pressed mid-draw abandons that draw.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	dirty := true
	var pending tcell.Event
	for {
		if dirty && pending == nil {
			ev, err := v.drawInterruptible(ctx, events)
			if err != nil {
				return err
			}
			dirty = ev != nil
			pending = ev
		}

		ev := pending
		pending = nil
		if ev == nil {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				ev = e
			}
		}
		quit, changed := v.handle(ev)
		if quit {
			return nil
		}
		dirty = dirty || changed
	}
}

// drawInterruptible draws in the background and returns early with the
// first event that arrives. A nil event means the draw finished.
func (v *Viewer) drawInterruptible(ctx context.Context, events <-chan tcell.Event) (tcell.Event, error) {
	drawCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	result := make(chan error, 1)
	go func() { result <- v.draw(drawCtx) }()

	select {
	case err := <-result:
		return nil, v.settle(err)
	case ev, ok := <-events:
		cancel()
		err := <-result
		if !ok {
			return nil, nil
		}
		if err := v.settle(err); err != nil {
			return nil, err
		}
		return ev, nil
	case <-ctx.Done():
		<-result
		return nil, nil
	}
}

// settle records a draw outcome. Render errors are shown, not returned.
// State errors end the loop.
func (v *Viewer) settle(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	if errs.Is(err, errs.CodeState) {
		return err
	}
	v.lastErr = err
	v.log.Warn("draw failed", "error", err)
	v.placeholder(err)
	return nil
}

func (v *Viewer) draw(ctx context.Context) error {
	v.lastErr = nil
	cols, rows := CellArea(v.screen)
	w := min(max(cols*Supersample, 1), v.cfg.MaxCanvasSide)
	h := min(max(rows*2*Supersample, 1), v.cfg.MaxCanvasSide)

	// A fresh orchestrator per draw picks up resizes.
	_ = v.orch.Close()
	orch, err := rugweave.NewOrchestrator(v.cfg, rugweave.WithSurface(Backend), rugweave.WithLogger(v.log))
	if err != nil {
		return err
	}
	v.orch = orch
	if err := orch.Create(rugweave.Target{Mode: rugweave.ModeInteractive, Width: w, Height: h, FastNoise: v.fast}); err != nil {
		return err
	}
	if err := orch.Configure(v.params); err != nil {
		return err
	}
	if err := orch.Draw(ctx); err != nil {
		return err
	}
	v.status()
	v.screen.Show()
	return nil
}

// handle applies one event and reports whether to quit and whether the
// image must be redrawn.
func (v *Viewer) handle(ev tcell.Event) (quit, changed bool) {
	a := &v.params.Aging
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		return false, true
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, false
		case tcell.KeyRune:
		default:
			return false, false
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return true, false
		case 'd':
			return false, step(&a.DirtLevel, 1, aging.MaxDirtLevel)
		case 'D':
			return false, step(&a.DirtLevel, -1, aging.MaxDirtLevel)
		case 't':
			return false, step(&a.TextureLevel, 1, aging.MaxTextureLevel)
		case 'T':
			return false, step(&a.TextureLevel, -1, aging.MaxTextureLevel)
		case 'f':
			return false, stepFrame(&a.Frame, 1)
		case 'F':
			return false, stepFrame(&a.Frame, -1)
		case 'c', 'C':
			if a.DirtLevel == 0 && a.TextureLevel == 0 {
				return false, false
			}
			a.DirtLevel, a.TextureLevel = 0, 0
			return false, true
		}
	}
	return false, false
}

func step(v *int, d, hi int) bool {
	n := min(max(*v+d, 0), hi)
	if n == *v {
		return false
	}
	*v = n
	return true
}

func stepFrame(f *rugweave.FrameLevel, d int) bool {
	i := slices.Index(aging.Frames, *f)
	if i < 0 {
		i = 0
	}
	n := min(max(i+d, 0), len(aging.Frames)-1)
	if aging.Frames[n] == *f {
		return false
	}
	*f = aging.Frames[n]
	return true
}

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)

// status writes the wear summary on the last row.
func (v *Viewer) status() {
	a := v.params.Aging
	frame := a.Frame
	if frame == "" {
		frame = rugweave.FrameNone
	}
	text := fmt.Sprintf(" #%d  dirt %d/%d  texture %d/%d  frame %s   d/t/f wear  c clean  q quit",
		v.params.TokenID, a.DirtLevel, aging.MaxDirtLevel, a.TextureLevel, aging.MaxTextureLevel, frame)
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	putLine(v.screen, 0, h-1, w, text, statusStyle)
}

// placeholder replaces the image with a card describing err.
func (v *Viewer) placeholder(err error) {
	w, h := v.screen.Size()
	v.screen.Clear()
	lines := []string{"rug unavailable", errs.UserMessage(err)}
	if code := errs.GetCode(err); code != "" {
		lines = append(lines, string(code))
	}
	top := max((h-1-len(lines))/2, 0)
	for i, line := range lines {
		line = runewidth.Truncate(line, w, "…")
		x := max((w-runewidth.StringWidth(line))/2, 0)
		putLine(v.screen, x, top+i, w-x, line, tcell.StyleDefault)
	}
	v.status()
	v.screen.Show()
}

// putLine writes text from (x, y), padded or truncated to width columns.
func putLine(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	text = runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)
	col := x
	for _, r := range text {
		screen.SetContent(col, y, r, nil, style)
		col += max(runewidth.RuneWidth(r), 1)
	}
}
