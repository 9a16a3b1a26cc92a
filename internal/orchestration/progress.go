package orchestration

import "github.com/agbru/bigcalc/internal/calc"

// ProgressAggregator folds per-calculator progress into one average.
// Both the CLI spinner and the TUI use it.
type ProgressAggregator struct {
	values []float64
}

// NewProgressAggregator returns an aggregator for numCalculators engines,
// or nil if numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{values: make([]float64, numCalculators)}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64
	AverageProgress float64
	Done            int
}

// Update records an update and returns the new aggregate. Updates with an
// out-of-range index are ignored.
func (a *ProgressAggregator) Update(update calc.ProgressUpdate) AggregatedProgress {
	if update.CalculatorIndex >= 0 && update.CalculatorIndex < len(a.values) {
		a.values[update.CalculatorIndex] = clamp(update.Value)
	}
	return AggregatedProgress{
		CalculatorIndex: update.CalculatorIndex,
		Value:           update.Value,
		AverageProgress: a.CalculateAverage(),
		Done:            a.Done(),
	}
}

// CalculateAverage returns the mean progress across all calculators.
func (a *ProgressAggregator) CalculateAverage() float64 {
	var sum float64
	for _, v := range a.values {
		sum += v
	}
	return sum / float64(len(a.values))
}

// Done returns how many calculators have reported completion.
func (a *ProgressAggregator) Done() int {
	n := 0
	for _, v := range a.values {
		if v >= 1 {
			n++
		}
	}
	return n
}

// NumCalculators returns the number of tracked calculators.
func (a *ProgressAggregator) NumCalculators() int {
	return len(a.values)
}

// IsMultiCalculator reports whether more than one calculator is tracked.
func (a *ProgressAggregator) IsMultiCalculator() bool {
	return len(a.values) > 1
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan calc.ProgressUpdate) {
	for range progressChan {
	}
}
