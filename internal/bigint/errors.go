package bigint

import (
	"errors"
	"fmt"
	"io"
)

// ErrDivisionByZero is returned by the division and remainder operations
// when the divisor is zero.
var ErrDivisionByZero = errors.New("bigint: division by zero")

// ErrEndOfInput is returned when a value is read from an exhausted stream.
// It wraps io.EOF so that ordinary read loops terminate on it.
var ErrEndOfInput = fmt.Errorf("bigint: end of input: %w", io.EOF)

// ParseError reports a malformed decimal string.
type ParseError struct {
	// Input is the string that failed to parse.
	Input string
	// Offset is the byte offset of the offending character.
	Offset int
	// Reason describes what was wrong at Offset.
	Reason string
}

// Error returns a message naming the input and the offending position.
func (e *ParseError) Error() string {
	return fmt.Sprintf("bigint: invalid decimal %q at offset %d: %s", e.Input, e.Offset, e.Reason)
}
