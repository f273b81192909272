package glyph

import (
	"encoding/json"
	"unicode/utf8"

	"github.com/onchainrugs/rugweave/errs"
)

// MarshalJSON writes the map keyed by one-character strings.
func (m Map) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(m))
	for r, g := range m {
		out[string(r)] = g
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads a map keyed by one-character strings, the form
// used by rug scripts.
func (m *Map) UnmarshalJSON(b []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return errs.Wrap(errs.CodeValidation, err, "character map")
	}
	out := make(Map, len(raw))
	for k, rows := range raw {
		r, size := utf8.DecodeRuneInString(k)
		if r == utf8.RuneError || size != len(k) {
			return errs.New(errs.CodeValidation, "character map key %q is not a single character", k)
		}
		out[r] = rows
	}
	*m = out
	return nil
}
