package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Any failure without a dedicated code.
	ExitErrorTimeout  = 2   // The evaluation exceeded --timeout.
	ExitErrorMismatch = 3   // Two engines disagreed on the result.
	ExitErrorConfig   = 4   // Invalid flags, environment or operands.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError is a user configuration error: a bad flag, environment
// variable or operand. The application cannot proceed.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while an engine evaluated an
// expression, such as a division by zero.
type CalculationError struct {
	// Engine is the name of the calculator that failed, if known.
	Engine string
	Cause  error
}

// Error returns the cause message, prefixed by the engine name when set.
func (e CalculationError) Error() string {
	if e.Engine == "" {
		return e.Cause.Error()
	}
	return e.Engine + ": " + e.Cause.Error()
}

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports an evaluation that ran past its deadline.
type TimeoutError struct {
	// Operation describes what timed out, e.g. "x * y".
	Operation string
	// Limit is the configured deadline.
	Limit time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap lets errors.Is(err, context.DeadlineExceeded) match a TimeoutError.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError reports an input that failed validation, naming the
// offending field ("x", "op", "timeout", ...).
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// OperandLimitError is returned when an operand exceeds the configured
// --max-digits limit.
type OperandLimitError struct {
	// Field is the operand name ("x" or "y").
	Field string
	// Digits is the digit count of the rejected operand.
	Digits int
	// Limit is the configured maximum.
	Limit int
}

func (e OperandLimitError) Error() string {
	return fmt.Sprintf("operand %s has %d digits, limit is %d", e.Field, e.Digits, e.Limit)
}

// WrapError adds context to err with fmt.Errorf and %w. It returns nil when
// err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a context cancellation or deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps err to a process exit code without printing anything.
func ExitCodeFor(err error) int {
	var (
		cfgErr   ConfigError
		valErr   ValidationError
		limitErr OperandLimitError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr), errors.As(err, &valErr), errors.As(err, &limitErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
