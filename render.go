package rugweave

import "context"

// Render runs one full lifecycle for params into a fresh canvas described
// by t. The canvas is always released before returning.
func Render(ctx context.Context, cfg Config, params RenderParameters, t Target, opts ...Option) (*Pixmap, error) {
	o, err := NewOrchestrator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	defer o.Close()

	if err := o.Create(t); err != nil {
		return nil, err
	}
	if err := o.Configure(params); err != nil {
		return nil, err
	}
	if err := o.Draw(ctx); err != nil {
		return nil, err
	}
	return o.Finalize()
}

// RenderPreview renders the canonical preview image: the configured
// preview size, full noise octaves and no aging, whatever params.Mode and
// params.Aging say. Equal parameters give byte-identical pixels on every
// host.
func RenderPreview(ctx context.Context, cfg Config, params RenderParameters, opts ...Option) (*Pixmap, error) {
	params.Mode = ModePreview
	return Render(ctx, cfg, params, Target{Mode: ModePreview}, opts...)
}
