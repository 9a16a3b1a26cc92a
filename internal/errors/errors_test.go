package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("unknown engine %q", "fft"), `unknown engine "fft"`},
		{"calculation with engine", CalculationError{Engine: "karatsuba", Cause: bigint.ErrDivisionByZero}, "karatsuba: bigint: division by zero"},
		{"calculation without engine", CalculationError{Cause: errors.New("boom")}, "boom"},
		{"timeout", TimeoutError{Operation: "x * y", Limit: 2 * time.Second}, `operation "x * y" timed out after 2s`},
		{"validation", ValidationError{Field: "op", Message: "unknown operator"}, `validation error for "op": unknown operator`},
		{"operand limit", OperandLimitError{Field: "y", Digits: 12, Limit: 10}, "operand y has 12 digits, limit is 10"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("%s: Error() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestErrorChains(t *testing.T) {
	t.Parallel()

	calcErr := CalculationError{Engine: "mathbig", Cause: bigint.ErrDivisionByZero}
	if !errors.Is(calcErr, bigint.ErrDivisionByZero) {
		t.Error("CalculationError should unwrap to its cause")
	}

	timeout := CalculationError{Engine: "karatsuba", Cause: TimeoutError{Operation: "1 + 1", Limit: time.Millisecond}}
	var te TimeoutError
	if !errors.As(timeout, &te) || te.Limit != time.Millisecond {
		t.Errorf("errors.As through CalculationError failed: %v", timeout)
	}
	if !errors.Is(timeout, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}

	var ve ValidationError
	wrapped := WrapError(ValidationError{Field: "x", Message: "not an integer"}, "request %d", 7)
	if !errors.As(wrapped, &ve) || ve.Field != "x" {
		t.Errorf("errors.As through WrapError failed: %v", wrapped)
	}
	if wrapped.Error() != `request 7: validation error for "x": not an integer` {
		t.Errorf("WrapError message = %q", wrapped.Error())
	}
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	for _, err := range []error{
		context.Canceled,
		context.DeadlineExceeded,
		fmt.Errorf("engine: %w", context.Canceled),
		TimeoutError{},
	} {
		if !IsContextError(err) {
			t.Errorf("IsContextError(%v) = false", err)
		}
	}
	for _, err := range []error{nil, bigint.ErrDivisionByZero, NewConfigError("x")} {
		if IsContextError(err) {
			t.Errorf("IsContextError(%v) = true", err)
		}
	}
}

func TestExitCodeValues(t *testing.T) {
	t.Parallel()
	// Scripts depend on these values.
	codes := map[string][2]int{
		"success":  {ExitSuccess, 0},
		"generic":  {ExitErrorGeneric, 1},
		"timeout":  {ExitErrorTimeout, 2},
		"mismatch": {ExitErrorMismatch, 3},
		"config":   {ExitErrorConfig, 4},
		"canceled": {ExitErrorCanceled, 130},
	}
	for name, c := range codes {
		if c[0] != c[1] {
			t.Errorf("%s exit code = %d, want %d", name, c[0], c[1])
		}
	}
}
