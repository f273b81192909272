package rugweave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/onchainrugs/rugweave/aging"
	"github.com/onchainrugs/rugweave/errs"
	"github.com/onchainrugs/rugweave/noise"
	"github.com/onchainrugs/rugweave/surface"
	"github.com/onchainrugs/rugweave/weave"
)

// State is a stage of the render lifecycle. Transitions only move forward;
// Reset is the one way back.
type State int

const (
	stateNew State = iota
	// StateCreated has a canvas and no parameters.
	StateCreated
	// StateConfigured holds validated parameters.
	StateConfigured
	// StateDrawn has a complete image on the canvas.
	StateDrawn
	// StateFinalized has handed out its buffer and released the canvas.
	StateFinalized
	// StateFailed rejected its parameters or aborted a draw. No buffer can
	// be taken from it.
	StateFailed
)

func (s State) String() string {
	switch s {
	case stateNew:
		return "new"
	case StateCreated:
		return "created"
	case StateConfigured:
		return "configured"
	case StateDrawn:
		return "drawn"
	case StateFinalized:
		return "finalized"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Target describes the canvas to render into.
type Target struct {
	Mode RenderMode
	// Width and Height size interactive canvases. Previews ignore them.
	Width, Height int
	// FastNoise trades noise octaves for speed on interactive redraws.
	FastNoise bool
}

// Option configures an Orchestrator.
type Option func(*orchestratorOptions)

type orchestratorOptions struct {
	logger  *slog.Logger
	surface string
}

// WithLogger sets the logger. The default is the package Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *orchestratorOptions) {
		o.logger = l
	}
}

// WithSurface selects the surface backend by registry name. The default
// is surface.ImageBackend.
func WithSurface(name string) Option {
	return func(o *orchestratorOptions) {
		o.surface = name
	}
}

// Orchestrator owns one canvas through Create, Configure, Draw and
// Finalize. It is not safe for concurrent use; use one per render.
type Orchestrator struct {
	cfg  Config
	opts orchestratorOptions
	log  *slog.Logger

	state  State
	target Target
	width  int
	height int
	surf   surface.Surface

	params RenderParameters
	input  weave.Input
	start  time.Time
}

// NewOrchestrator validates cfg and returns an orchestrator with no canvas.
func NewOrchestrator(cfg Config, opts ...Option) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := orchestratorOptions{surface: surface.ImageBackend}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}
	return &Orchestrator{cfg: cfg, opts: o, log: log}, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Size returns the canvas size chosen by Create.
func (o *Orchestrator) Size() (width, height int) { return o.width, o.height }

func (o *Orchestrator) transition(to State) {
	o.log.Debug("render state",
		"from", o.state.String(),
		"to", to.String(),
		"token_id", o.params.TokenID,
		"mode", o.target.Mode.String())
	o.state = to
}

func (o *Orchestrator) expect(op string, want State) error {
	if o.state != want {
		return errs.New(errs.CodeState, "%s called in state %s, want %s", op, o.state, want)
	}
	return nil
}

// fail releases the canvas and moves to StateFailed. Cancellation is
// logged at debug, anything else as a warning.
func (o *Orchestrator) fail(err error) error {
	if isCancel(err) {
		o.log.Debug("render cancelled", "token_id", o.params.TokenID, "mode", o.target.Mode.String())
	} else {
		o.log.Warn("render failed", "token_id", o.params.TokenID, "mode", o.target.Mode.String(), "error", err)
	}
	o.release()
	o.transition(StateFailed)
	return err
}

func (o *Orchestrator) release() {
	if o.surf != nil {
		_ = o.surf.Close()
		o.surf = nil
	}
}

// Create allocates the canvas for t.
func (o *Orchestrator) Create(t Target) error {
	if err := o.expect("Create", stateNew); err != nil {
		return err
	}
	w, h := t.Width, t.Height
	switch t.Mode {
	case ModePreview:
		w, h = o.cfg.PreviewWidth, o.cfg.PreviewHeight
	case ModeInteractive:
		if w < 1 || h < 1 || w > o.cfg.MaxCanvasSide || h > o.cfg.MaxCanvasSide {
			return errs.Field(errs.CodeValidation, "target",
				"canvas %dx%d not within [1, %d]", w, h, o.cfg.MaxCanvasSide)
		}
	default:
		return errs.Field(errs.CodeValidation, "target", "unknown render mode %d", int(t.Mode))
	}
	s, err := surface.NewSurfaceByNameWithOptions(o.opts.surface, surface.Options{Width: w, Height: h})
	if err != nil {
		return err
	}
	o.target, o.width, o.height, o.surf = t, w, h, s
	o.transition(StateCreated)
	return nil
}

// Configure validates p in full and keeps a private copy. On failure the
// canvas is released and the orchestrator is Failed; nothing is drawn.
func (o *Orchestrator) Configure(p RenderParameters) error {
	if err := o.expect("Configure", StateCreated); err != nil {
		return err
	}
	p = p.Clone()
	if p.Mode == ModePreview {
		p.Aging = AgingState{}
	}
	o.params = p
	if p.Mode != o.target.Mode {
		return o.fail(errs.Field(errs.CodeValidation, "mode",
			"parameters are for %s but the target is %s", p.Mode, o.target.Mode))
	}
	in, err := p.prepare(o.cfg)
	if err != nil {
		return o.fail(err)
	}
	o.input = in
	o.transition(StateConfigured)
	return nil
}

// Draw renders the rug and, for interactive targets, its wear. The noise
// engines are rebuilt from the seed on every call. A cancelled ctx is
// returned as is.
func (o *Orchestrator) Draw(ctx context.Context) error {
	if err := o.expect("Draw", StateConfigured); err != nil {
		return err
	}
	o.start = time.Now()
	seed := uint32(o.params.Seed)
	octaves := o.cfg.NoiseOctaves
	if o.target.FastNoise && o.target.Mode == ModeInteractive {
		octaves = o.cfg.FastNoiseOctaves
	}
	rnd := noise.NewRandom(seed)
	perlin := noise.NewPerlin(seed, octaves)

	c := surface.NewCanvas(o.surf)
	c.Background(surface.MustParseColor(o.cfg.Background))
	if err := o.fit(c); err != nil {
		return o.fail(err)
	}

	dims := o.cfg.Dimensions()
	if err := weave.New(dims, o.input, rnd, perlin).DrawContext(ctx, c); err != nil {
		return o.fail(err)
	}
	if o.target.Mode == ModeInteractive && !o.params.Aging.Clean() {
		ov := aging.New(o.params.Aging, dims, rnd.Derive("aging"), perlin)
		if err := ov.Apply(c); err != nil {
			return o.fail(err)
		}
	}
	if err := o.surf.Flush(); err != nil {
		return o.fail(err)
	}
	o.transition(StateDrawn)
	return nil
}

// fit maps rug space onto the canvas with one uniform scale, centered.
func (o *Orchestrator) fit(c *surface.Canvas) error {
	rw, rh := o.cfg.Dimensions().Size()
	cw, ch := float64(o.width), float64(o.height)
	s := min(cw/rw, ch/rh)
	if err := c.Translate((cw-float64(rw*s))/2, (ch-float64(rh*s))/2); err != nil {
		return err
	}
	return c.Scale(s, s)
}

// Finalize extracts the finished image and releases the canvas.
func (o *Orchestrator) Finalize() (*Pixmap, error) {
	if err := o.expect("Finalize", StateDrawn); err != nil {
		return nil, err
	}
	pm := newPixmap(o.surf.Snapshot())
	o.release()
	o.transition(StateFinalized)
	o.log.Info("render complete",
		"token_id", o.params.TokenID,
		"mode", o.target.Mode.String(),
		"hash", pm.Hash(),
		"elapsed", time.Since(o.start))
	return pm, nil
}

// Reset returns to StateCreated with a fresh canvas for the same target.
func (o *Orchestrator) Reset() error {
	if o.state == stateNew {
		return errs.New(errs.CodeState, "Reset called before Create")
	}
	o.release()
	o.params, o.input = RenderParameters{}, weave.Input{}
	o.state = stateNew
	return o.Create(o.target)
}

// Close releases the canvas in any state. It is idempotent.
func (o *Orchestrator) Close() error {
	o.release()
	return nil
}

// isCancel reports whether err came from a cancelled or expired context.
func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
