package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed    int64
		tokenID uint64
		text    []string
		output  string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Derive rug parameters from a seed",
		Long:  `generate picks the palette, stripes and warp thickness of a rug from a seed and writes them as JSON or TOML.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := renderConfig(cmd.Context())
			if err != nil {
				return err
			}
			p := rugweave.GenerateParameters(seed, cfg)
			p.TokenID = tokenID
			p.TextRows = upperRows(text)
			if err := p.Validate(cfg); err != nil {
				return err
			}

			if format == "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output) //nolint:gosec // user-supplied output path
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeParams(w, p, format); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("generated", "seed", seed, "palette", p.Palette.Name, "stripes", len(p.StripeRows))
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 42, "generation seed")
	cmd.Flags().Uint64Var(&tokenID, "token", 0, "token id to record")
	cmd.Flags().StringSliceVar(&text, "text", nil, "text rows (upper-cased)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or toml; taken from the output extension when empty")
	return cmd
}

func writeParams(w io.Writer, p rugweave.RenderParameters, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "toml":
		return toml.NewEncoder(w).Encode(p)
	}
	return fmt.Errorf("unknown format %q (want json or toml)", format)
}
