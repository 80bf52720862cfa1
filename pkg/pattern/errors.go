package pattern

import (
	"errors"
	"fmt"
)

// Sentinel errors for pattern compilation and matching.
var (
	// ErrMalformed is returned when a pattern string cannot be compiled.
	ErrMalformed = errors.New("pattern: malformed pattern")

	// ErrNoMatch is returned by Parse when a path does not match.
	ErrNoMatch = errors.New("pattern: no match")

	// ErrArgumentCount is returned by Reverse when too few arguments
	// are supplied for the pattern's capture groups.
	ErrArgumentCount = errors.New("pattern: argument count")
)

// SyntaxError describes a compile failure at a specific offset in the
// raw pattern string.
type SyntaxError struct {
	Pattern string
	Pos     int
	Reason  string
}

// Error returns the error message with pattern context.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pattern: %s at offset %d in %q", e.Reason, e.Pos, e.Pattern)
}

// Unwrap makes SyntaxError match ErrMalformed under errors.Is.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

func syntaxErr(raw string, pos int, reason string) error {
	return &SyntaxError{Pattern: raw, Pos: pos, Reason: reason}
}
