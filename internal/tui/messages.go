package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/orchestration"
)

// ProgressMsg carries aggregated progress of the running evaluation.
type ProgressMsg struct {
	Generation      uint64
	AverageProgress float64
	Done            int
	Total           int
}

// EvaluationDoneMsg is sent when every engine of an evaluation has
// returned.
type EvaluationDoneMsg struct {
	Generation uint64
	Entry      HistoryEntry
}

// TickMsg refreshes the elapsed time while an evaluation runs.
type TickMsg time.Time

// evaluationOutcome is what the bridge presenter collects from
// orchestration.AnalyzeComparisonResults.
type evaluationOutcome struct {
	results  []orchestration.CalculationResult
	final    *orchestration.CalculationResult
	errText  string
	exitCode int
}
