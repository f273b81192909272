// Package glyph holds the bitmap alphabet woven into rug bodies.
//
// A Glyph is a small grid of on/off threads stored row by row as strings of
// '0' and '1'. A Map is a closed alphabet: text containing a rune the map
// does not carry is rejected, never substituted.
package glyph

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/onchainrugs/rugweave/errs"
)

// Glyph is a bitmap, one string per row. All rows have the same length.
type Glyph []string

// Rows returns the bitmap height.
func (g Glyph) Rows() int { return len(g) }

// Cols returns the bitmap width.
func (g Glyph) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// On reports whether the thread at (row, col) is set.
func (g Glyph) On(row, col int) bool {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return false
	}
	return g[row][col] == '1'
}

// Validate checks that g is a non-empty rectangle of '0' and '1'.
func (g Glyph) Validate() error {
	if len(g) == 0 || len(g[0]) == 0 {
		return errs.New(errs.CodeValidation, "glyph is empty")
	}
	w := len(g[0])
	for i, row := range g {
		if len(row) != w {
			return errs.New(errs.CodeValidation, "glyph row %d has width %d, want %d", i, len(row), w)
		}
		if strings.Trim(row, "01") != "" {
			return errs.New(errs.CodeValidation, "glyph row %d has characters other than 0 and 1", i)
		}
	}
	return nil
}

// Map is a closed glyph alphabet keyed by rune.
type Map map[rune]Glyph

// Lookup returns the glyph for r or an UNSUPPORTED_GLYPH error.
func (m Map) Lookup(r rune) (Glyph, error) {
	g, ok := m[r]
	if !ok {
		return nil, errs.New(errs.CodeUnsupportedGlyph, "character %q has no glyph", r)
	}
	return g, nil
}

// Validate checks every glyph and requires them all to share one size.
func (m Map) Validate() error {
	if len(m) == 0 {
		return errs.New(errs.CodeValidation, "glyph map is empty")
	}
	rows, cols := -1, -1
	for _, r := range m.Runes() {
		g := m[r]
		if err := g.Validate(); err != nil {
			return errs.Wrap(errs.CodeValidation, err, "glyph %q", r)
		}
		if rows < 0 {
			rows, cols = g.Rows(), g.Cols()
			continue
		}
		if g.Rows() != rows || g.Cols() != cols {
			return errs.New(errs.CodeValidation, "glyph %q is %dx%d, want %dx%d", r, g.Cols(), g.Rows(), cols, rows)
		}
	}
	return nil
}

// Check returns an UNSUPPORTED_GLYPH error naming the first rune in rows
// that m does not carry.
func (m Map) Check(rows []string) error {
	for i, row := range rows {
		if !utf8.ValidString(row) {
			return errs.New(errs.CodeUnsupportedGlyph, "text row %d is not valid UTF-8", i)
		}
		for _, r := range row {
			if _, ok := m[r]; !ok {
				return errs.Field(errs.CodeUnsupportedGlyph, "textRows",
					"character %q in row %d has no glyph", r, i)
			}
		}
	}
	return nil
}

// Size returns the shared glyph size. It is 0x0 for an empty map.
func (m Map) Size() (rows, cols int) {
	runes := m.Runes()
	if len(runes) == 0 {
		return 0, 0
	}
	g := m[runes[0]]
	return g.Rows(), g.Cols()
}

// Runes returns the runes in m in ascending order.
func (m Map) Runes() []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Filter returns the subset of m used by rows, compared in upper case.
// The space glyph is always kept when m has one.
func (m Map) Filter(rows []string) Map {
	out := make(Map)
	if g, ok := m[' ']; ok {
		out[' '] = g
	}
	for _, row := range rows {
		for _, r := range strings.ToUpper(row) {
			if g, ok := m[r]; ok {
				out[r] = g
			}
		}
	}
	return out
}

// Clone returns a deep copy of m.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for r, g := range m {
		out[r] = slices.Clone(g)
	}
	return out
}
