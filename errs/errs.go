// Package errs provides the structured error kinds reported by the rug
// renderer.
//
// Every failure that reaches a caller carries one of a small set of codes:
//   - VALIDATION: a parameter violates a cap or a shape constraint
//   - UNSUPPORTED_GLYPH: a text character has no bitmap
//   - INVALID_COLOR: a color string cannot be parsed
//   - INVALID_GEOMETRY: a primitive received non-finite or degenerate input
//   - INVALID_STATE: an orchestrator method was called out of order
//
// None of these are retryable. The same input always fails the same way.
//
// # Usage
//
//	err := errs.New(errs.CodeValidation, "text row %d has %d characters", i, n)
//	if errs.Is(err, errs.CodeValidation) {
//	    // reject the request
//	}
package errs

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes.
const (
	CodeValidation       Code = "VALIDATION"
	CodeUnsupportedGlyph Code = "UNSUPPORTED_GLYPH"
	CodeInvalidColor     Code = "INVALID_COLOR"
	CodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	CodeState            Code = "INVALID_STATE"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Field   string // Offending parameter, when known
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Field creates an Error attributed to a named parameter.
func Field(code Code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Field != "" {
			return e.Field + ": " + e.Message
		}
		return e.Message
	}
	return err.Error()
}

// IsInputError reports whether err was caused by the caller's input rather
// than a defect in the renderer.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case CodeValidation, CodeUnsupportedGlyph, CodeInvalidColor:
		return true
	}
	return false
}
