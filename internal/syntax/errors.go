package syntax

import (
	"errors"
	"fmt"
)

// ErrParseFailed indicates that the source could not be parsed into a
// complete tree. Check with errors.Is.
var ErrParseFailed = errors.New("parse failed")

// ParseError locates a syntax error in the snippet.
//
// Line is 1-indexed, Column is 0-indexed. Both may be 0 when the failure is
// not tied to a location (for example a nil tree from the parser).
type ParseError struct {
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error formats the error as "line:column: message" when a location is known.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// newParseError builds a ParseError that wraps ErrParseFailed.
func newParseError(line, column int, message string) *ParseError {
	return &ParseError{
		Line:    line,
		Column:  column,
		Message: message,
		Cause:   ErrParseFailed,
	}
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
