package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave"
)

// renderOpts holds the flags of render and hash.
type renderOpts struct {
	params paramOpts
	output string
	mode   string
	width  int
	height int
}

func (o *renderOpts) bind(cmd *cobra.Command) {
	o.params.bind(cmd, true)
	f := cmd.Flags()
	f.StringVarP(&o.mode, "mode", "m", "preview", "render mode: preview or interactive")
	f.IntVar(&o.width, "width", 800, "canvas width (interactive)")
	f.IntVar(&o.height, "height", 1200, "canvas height (interactive)")
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a rug to PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pm, err := runRender(cmd.Context(), &opts)
			if err != nil {
				return err
			}
			if err := pm.SavePNG(opts.output); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Info("wrote", "path", opts.output, "hash", pm.Hash())
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "rug.png", "output PNG path")
	return cmd
}

func newHashCmd() *cobra.Command {
	var opts renderOpts
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the SHA-256 of a render's pixels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pm, err := runRender(cmd.Context(), &opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pm.Hash())
			return nil
		},
	}
	opts.bind(cmd)
	return cmd
}

func runRender(ctx context.Context, opts *renderOpts) (*rugweave.Pixmap, error) {
	logger := loggerFromContext(ctx)
	cfg, err := renderConfig(ctx)
	if err != nil {
		return nil, err
	}
	mode, err := rugweave.ParseRenderMode(opts.mode)
	if err != nil {
		return nil, err
	}
	p, err := opts.params.resolve(cfg)
	if err != nil {
		return nil, err
	}
	p.Mode = mode

	prog := newProgress(logger)
	var pm *rugweave.Pixmap
	if mode == rugweave.ModePreview {
		pm, err = rugweave.RenderPreview(ctx, cfg, p)
	} else {
		pm, err = rugweave.Render(ctx, cfg, p, rugweave.Target{Mode: mode, Width: opts.width, Height: opts.height})
	}
	if err != nil {
		return nil, err
	}
	prog.done("rendered", "token_id", p.TokenID, "mode", mode, "size", fmt.Sprintf("%dx%d", pm.Width(), pm.Height()))
	return pm, nil
}
