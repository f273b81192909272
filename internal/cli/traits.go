package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave/traits"
)

func newTraitsCmd() *cobra.Command {
	var (
		opts   paramOpts
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "traits",
		Short: "Print the rarity traits of a rug",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := renderConfig(cmd.Context())
			if err != nil {
				return err
			}
			p, err := opts.resolve(cfg)
			if err != nil {
				return err
			}
			if err := p.Validate(cfg); err != nil {
				return err
			}
			t := p.Traits()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					traits.Traits
					Rarities map[string]traits.Rarity `json:"rarities"`
				}{t, t.Rarities()})
			}
			fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("OnchainRug #%d", p.TokenID)))
			fmt.Fprintln(out, traitsTable(t))
			return nil
		},
	}
	opts.bind(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func traitsTable(t traits.Traits) string {
	rarities := t.Rarities()
	rows := []struct {
		key, name, value string
	}{
		{"paletteName", "Palette", t.PaletteName},
		{"stripeCount", "Stripes", strconv.Itoa(t.StripeCount)},
		{"stripeComplexity", "Complexity", string(t.StripeComplexity)},
		{"textLines", "Text lines", strconv.Itoa(t.TextLines)},
		{"totalCharacters", "Characters", strconv.Itoa(t.TotalCharacters)},
	}
	tbl := newTable("Trait", "Value", "Rarity")
	for _, r := range rows {
		rarity := rarities[r.key]
		tier := lipgloss.NewStyle().Foreground(lipgloss.Color(rarity.Color())).Render(string(rarity))
		tbl.Row(r.name, r.value, tier)
	}
	return tbl.String()
}
