package cli

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave/integration/termview"
)

func newViewCmd() *cobra.Command {
	var (
		opts paramOpts
		fast bool
	)
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a rug in the terminal",
		Long: `view draws the rug with half-block characters and redraws it as its wear changes.

Keys: d/D dirt up/down, t/T texture up/down, f/F frame up/down, c clean, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := renderConfig(ctx)
			if err != nil {
				return err
			}
			p, err := opts.resolve(cfg)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			// The screen owns the terminal; keep log lines off it.
			quiet := logger.WithPrefix("view")
			quiet.SetLevel(charmlog.ErrorLevel)

			v, err := termview.NewViewer(screen, cfg, p, termview.WithLogger(slogger(quiet)), termview.WithFastNoise(fast))
			if err != nil {
				return err
			}
			defer v.Close()
			return v.Run(ctx)
		},
	}
	opts.bind(cmd, true)
	cmd.Flags().BoolVar(&fast, "fast", true, "use fewer noise octaves for quicker redraws")
	return cmd
}
