package query

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKeyword is returned when a clause names no registered predicate.
	ErrUnknownKeyword = errors.New("unknown keyword")
	// ErrMalformed is returned for wrong argument counts or values.
	ErrMalformed = errors.New("malformed arguments")
)

// ParseError reports which clause of an expression failed to parse.
type ParseError struct {
	Expression string
	Clause     string
	Err        error
}

func (e *ParseError) Error() string {
	if e.Clause == "" {
		return fmt.Sprintf("tile query %q: %v", e.Expression, e.Err)
	}
	return fmt.Sprintf("tile query %q: clause %q: %v", e.Expression, e.Clause, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// malformed wraps ErrMalformed with the keyword and a reason.
func malformed(keyword, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", keyword, fmt.Sprintf(format, args...), ErrMalformed)
}
