package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
)

// CalculationResult is the outcome of one engine evaluating an expression.
// It is the type shared by the orchestration and presentation layers.
type CalculationResult struct {
	// Name is the engine identifier (e.g., "karatsuba").
	Name string
	// Value is the canonical decimal result, or "true"/"false" for a
	// comparison. It is empty when Err is set.
	Value string
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the evaluation error, if any.
	Err error
}

// PresentationOptions configures how the final result is shown.
type PresentationOptions struct {
	Expr    calc.Expression
	Verbose bool
	Details bool
}

// ProgressReporter displays progress while calculators run. The
// orchestration layer starts DisplayProgress in its own goroutine and
// closes progressChan once every calculator has returned;
// implementations must call wg.Done when they stop.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel without output. Used in quiet
// mode and by tests.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan until it is closed.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders the comparison table and the final result.
type ResultPresenter interface {
	PresentComparisonTable(results []CalculationResult, out io.Writer)
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports an evaluation error and returns the process exit
// code for it.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
