package rugweave

import "github.com/onchainrugs/rugweave/errs"

// ErrorCode classifies a render failure. See package errs.
type ErrorCode = errs.Code

// Error codes returned by validation and rendering.
const (
	CodeValidation       = errs.CodeValidation
	CodeUnsupportedGlyph = errs.CodeUnsupportedGlyph
	CodeInvalidColor     = errs.CodeInvalidColor
	CodeInvalidGeometry  = errs.CodeInvalidGeometry
	CodeState            = errs.CodeState
)

// ErrorCodeOf returns the code carried by err, or "" for foreign errors
// such as context cancellation.
func ErrorCodeOf(err error) ErrorCode { return errs.GetCode(err) }

// IsInputError reports whether err blames the parameters rather than the
// renderer.
func IsInputError(err error) bool { return errs.IsInputError(err) }
