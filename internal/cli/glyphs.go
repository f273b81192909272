package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onchainrugs/rugweave/glyph"
)

func newGlyphsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "glyphs [text]",
		Short: "List the text alphabet, or show text as it is woven",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := glyph.Default()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, glyphTable(m))
				return nil
			}
			rows := upperRows(args)
			if err := m.Check(rows); err != nil {
				return err
			}
			fmt.Fprint(out, banner(m, rows[0]))
			return nil
		},
	}
}

func glyphTable(m glyph.Map) string {
	tbl := newTable("Rune", "Size")
	for _, r := range m.Runes() {
		g := m[r]
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		tbl.Row(name, strconv.Itoa(g.Cols())+"x"+strconv.Itoa(g.Rows()))
	}
	return tbl.String()
}

// banner draws text one glyph row at a time, set threads as blocks.
func banner(m glyph.Map, text string) string {
	rows, _ := m.Size()
	var b strings.Builder
	for y := 0; y < rows; y++ {
		var line strings.Builder
		for i, r := range text {
			if i > 0 {
				line.WriteByte(' ')
			}
			g := m[r]
			for x := 0; x < g.Cols(); x++ {
				if g.On(y, x) {
					line.WriteString("█")
				} else {
					line.WriteByte(' ')
				}
			}
		}
		b.WriteString(styleThread.Render(strings.TrimRight(line.String(), " ")))
		b.WriteByte('\n')
	}
	return b.String()
}
