package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(CodeValidation, "too many rows: %d", 6), "VALIDATION: too many rows: 6"},
		{"field", Field(CodeInvalidColor, "palette[2]", "bad color %q", "#zz"), `INVALID_COLOR: palette[2]: bad color "#zz"`},
		{"wrapped", Wrap(CodeState, errors.New("closed"), "draw"), "INVALID_STATE: draw: closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsThroughWrapping(t *testing.T) {
	base := New(CodeUnsupportedGlyph, "no glyph for %q", '~')
	wrapped := fmt.Errorf("configure: %w", base)

	if !Is(wrapped, CodeUnsupportedGlyph) {
		t.Error("Is should see through fmt wrapping")
	}
	if Is(wrapped, CodeValidation) {
		t.Error("Is matched the wrong code")
	}
	if GetCode(wrapped) != CodeUnsupportedGlyph {
		t.Errorf("GetCode = %q", GetCode(wrapped))
	}
	if GetCode(errors.New("x")) != "" {
		t.Error("plain errors have no code")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Field(CodeValidation, "textRows", "at most %d rows", 5)); got != "textRows: at most 5 rows" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(errors.New("boom")); got != "boom" {
		t.Errorf("UserMessage = %q", got)
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{CodeValidation, true},
		{CodeUnsupportedGlyph, true},
		{CodeInvalidColor, true},
		{CodeInvalidGeometry, false},
		{CodeState, false},
	}
	for _, tt := range tests {
		if got := IsInputError(New(tt.code, "x")); got != tt.want {
			t.Errorf("IsInputError(%s) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
