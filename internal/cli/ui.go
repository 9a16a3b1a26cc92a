//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count above which a result is shortened
	// on the terminal unless verbose output is requested.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// result is truncated.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and progress bar refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width of the progress bar in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts a terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an aggregated progress bar until
// progressChan is closed, then prints a final summary line. With no
// calculators it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%sDone:%s %s 100.00%%\n", ui.ColorGreen(), ui.ColorReset(), progressBar(1, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg))
		}
	}
}

func progressSuffix(agg *orchestration.ProgressAggregator) string {
	avg := agg.CalculateAverage()
	label := "Evaluating..."
	if agg.IsMultiCalculator() {
		label = fmt.Sprintf("Evaluating (%d/%d engines done)...", agg.Done(), agg.NumCalculators())
	}
	return fmt.Sprintf(" %s %s %6.2f%%", label, progressBar(avg, ProgressBarWidth), avg*100)
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length
// characters.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
