package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
)

// ColorProvider supplies the ANSI sequences used to highlight error
// messages. An implementation returning empty strings disables colors.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleCalculationError prints a user-facing description of err to out and
// returns the matching exit code. duration is the elapsed time before the
// failure; it is shown for timeouts and cancellations when non-zero.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	elapsed := ""
	if duration > 0 {
		elapsed = fmt.Sprintf(" after %s", duration)
	}

	var parseErr *bigint.ParseError
	var timeoutErr TimeoutError
	switch {
	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "%sTimeout: %v%s.%s\n", colors.Yellow(), timeoutErr, elapsed, colors.Reset())
	case IsContextError(err) && ExitCodeFor(err) == ExitErrorTimeout:
		fmt.Fprintf(out, "%sTimeout: the evaluation exceeded its deadline%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case IsContextError(err):
		fmt.Fprintf(out, "%sCanceled%s.%s\n", colors.Yellow(), elapsed, colors.Reset())
	case errors.Is(err, bigint.ErrDivisionByZero):
		fmt.Fprintf(out, "%sError: division by zero.%s\n", colors.Red(), colors.Reset())
	case errors.As(err, &parseErr):
		fmt.Fprintf(out, "%sInvalid number: %v%s\n", colors.Red(), parseErr, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}

	code := ExitCodeFor(err)
	if parseErr != nil {
		code = ExitErrorConfig
	}
	return code
}
