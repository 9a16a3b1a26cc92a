package tui

import (
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridge needs a pointer that survives the
// copies to Send messages from orchestration goroutines.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards aggregated progress as ProgressMsg.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan, sending one ProgressMsg per update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan calc.ProgressUpdate, numCalculators int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			Generation:      t.generation,
			AverageProgress: ap.AverageProgress,
			Done:            ap.Done,
			Total:           numCalculators,
		})
	}
}

// TUIResultPresenter collects what orchestration presents so the model
// can render it as one history entry.
type TUIResultPresenter struct {
	outcome evaluationOutcome
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable records the sorted per-engine results.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, _ io.Writer) {
	t.outcome.results = append([]orchestration.CalculationResult(nil), results...)
}

// PresentResult records the agreed result.
func (t *TUIResultPresenter) PresentResult(result orchestration.CalculationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.outcome.final = &result
}

// FormatDuration formats d like the CLI.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError records the CLI's description of err, without colors, and
// returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	var b strings.Builder
	code := apperrors.HandleCalculationError(err, duration, &b, plainColors{})
	t.outcome.errText = strings.TrimSpace(b.String())
	return code
}

// plainColors is an apperrors.ColorProvider that emits nothing.
type plainColors struct{}

func (plainColors) Red() string    { return "" }
func (plainColors) Yellow() string { return "" }
func (plainColors) Reset() string  { return "" }
