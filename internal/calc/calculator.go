package calc

import (
	"context"
	"fmt"
)

// ProgressUpdate is sent by a calculator when it starts and finishes an
// evaluation. Value is 0 at the start and 1 on completion.
type ProgressUpdate struct {
	CalculatorIndex int
	Value           float64
}

// Calculator evaluates expressions with one arithmetic engine.
type Calculator interface {
	// Name returns the identifier shown in comparison tables.
	Name() string
	// Evaluate computes expr and returns its canonical decimal result, or
	// "true"/"false" for comparisons. Progress updates, if progressChan is
	// non-nil, carry calcIndex. Once ctx is done Evaluate returns ctx.Err();
	// the decimal engines stop computing before it returns.
	Evaluate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, expr Expression) (string, error)
}

// evalFunc is the synchronous core of an engine.
type evalFunc func(ctx context.Context, expr Expression) (string, error)

// engine adapts an evalFunc to the Calculator interface.
type engine struct {
	name string
	eval evalFunc
	// cooperative engines return soon after ctx is done, so Evaluate waits
	// for them. Others are abandoned and finish in the background.
	cooperative bool
}

func (e *engine) Name() string { return e.name }

func (e *engine) Evaluate(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, expr Expression) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	reportProgress(progressChan, calcIndex, 0)

	type outcome struct {
		value string
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%s: engine panic: %v", e.name, r)}
			}
		}()
		v, err := e.eval(ctx, expr)
		done <- outcome{v, err}
	}()

	select {
	case <-ctx.Done():
		if e.cooperative {
			<-done
		}
		return "", ctx.Err()
	case o := <-done:
		reportProgress(progressChan, calcIndex, 1)
		return o.value, o.err
	}
}

// reportProgress performs a non-blocking send so a slow consumer never
// stalls an engine.
func reportProgress(ch chan<- ProgressUpdate, idx int, v float64) {
	if ch == nil {
		return
	}
	select {
	case ch <- ProgressUpdate{CalculatorIndex: idx, Value: v}:
	default:
	}
}
