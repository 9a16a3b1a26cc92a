package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// ProgressBufferMultiplier sizes the progress channel per calculator. Each
// evaluation sends two updates, so the buffer never fills in practice.
const ProgressBufferMultiplier = 5

const tracerName = "bigcalc/orchestration"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// ExecuteCalculations evaluates expr with every calculator concurrently and
// returns one result per calculator, in the order given.
//
// A failing calculator does not cancel the others: each error is recorded
// in its CalculationResult. Every evaluation is wrapped in a span from the
// global OpenTelemetry tracer provider, which is a no-op unless the caller
// installs one.
func ExecuteCalculations(ctx context.Context, calculators []calc.Calculator, expr calc.Expression, progressReporter ProgressReporter, out io.Writer) []CalculationResult {
	ctx, span := tracer().Start(ctx, "orchestration.execute",
		trace.WithAttributes(
			attribute.String("calc.expression.op", string(expr.Op)),
			attribute.Int("calc.expression.digits", expr.Digits()),
			attribute.Int("calc.engines", len(calculators)),
		))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]CalculationResult, len(calculators))
	progressChan := make(chan calc.ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, c := range calculators {
		idx, calculator := i, c
		g.Go(func() error {
			results[idx] = evaluate(ctx, calculator, progressChan, idx, expr)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func evaluate(ctx context.Context, calculator calc.Calculator, progressChan chan<- calc.ProgressUpdate, idx int, expr calc.Expression) CalculationResult {
	ctx, span := tracer().Start(ctx, "orchestration.evaluate",
		trace.WithAttributes(attribute.String("calc.engine", calculator.Name())))
	defer span.End()

	start := time.Now()
	value, err := calculator.Evaluate(ctx, progressChan, idx, expr)
	duration := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int64("calc.duration_us", duration.Microseconds()))

	return CalculationResult{Name: calculator.Name(), Value: value, Duration: duration, Err: err}
}

// AnalyzeComparisonResults sorts results (successes first, fastest first),
// prints the comparison table and checks that every successful engine
// produced the same value.
//
// It returns ExitErrorMismatch when two engines disagree, the code chosen
// by errHandler when every engine failed, and ExitSuccess otherwise.
func AnalyzeComparisonResults(results []CalculationResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *CalculationResult
	var firstError error
	var firstErrorDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
				firstErrorDuration = results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could evaluate the expression.\n")
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && res.Value != firstValid.Value {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree.\n", firstValid.Name, res.Name)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
