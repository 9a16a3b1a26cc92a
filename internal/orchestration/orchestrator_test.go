package orchestration

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// MockResultPresenter records what it was asked to present.
type MockResultPresenter struct {
	mu        sync.Mutex
	presented []CalculationResult
}

func (m *MockResultPresenter) PresentComparisonTable(results []CalculationResult, out io.Writer) {}

func (m *MockResultPresenter) PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presented = append(m.presented, result)
}

// MockErrorHandler always reports a generic failure.
type MockErrorHandler struct{}

func (MockErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.ExitErrorGeneric
}

// MockCalculator is a calc.Calculator whose behavior is set per test.
type MockCalculator struct {
	NameValue    string
	EvaluateFunc func(ctx context.Context, expr calc.Expression) (string, error)
}

func (m *MockCalculator) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *MockCalculator) Evaluate(ctx context.Context, progressChan chan<- calc.ProgressUpdate, index int, expr calc.Expression) (string, error) {
	if progressChan != nil {
		progressChan <- calc.ProgressUpdate{CalculatorIndex: index, Value: 0}
	}
	if m.EvaluateFunc == nil {
		return "0", nil
	}
	v, err := m.EvaluateFunc(ctx, expr)
	if progressChan != nil {
		progressChan <- calc.ProgressUpdate{CalculatorIndex: index, Value: 1}
	}
	return v, err
}

func mustExpr(t *testing.T, line string) calc.Expression {
	t.Helper()
	expr, err := calc.ParseExpression(line)
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", line, err)
	}
	return expr
}

func TestExecuteCalculations(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		calculators []calc.Calculator
		expectError []bool
	}{
		{
			name: "Single success",
			calculators: []calc.Calculator{
				&MockCalculator{EvaluateFunc: func(context.Context, calc.Expression) (string, error) { return "3", nil }},
			},
			expectError: []bool{false},
		},
		{
			name: "Single failure",
			calculators: []calc.Calculator{
				&MockCalculator{EvaluateFunc: func(context.Context, calc.Expression) (string, error) { return "", errors.New("mock error") }},
			},
			expectError: []bool{true},
		},
		{
			name: "Failure does not cancel the others",
			calculators: []calc.Calculator{
				&MockCalculator{NameValue: "bad", EvaluateFunc: func(context.Context, calc.Expression) (string, error) { return "", errors.New("mock error") }},
				&MockCalculator{NameValue: "good", EvaluateFunc: func(ctx context.Context, _ calc.Expression) (string, error) {
					time.Sleep(5 * time.Millisecond)
					return "3", ctx.Err()
				}},
			},
			expectError: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			results := ExecuteCalculations(context.Background(), tt.calculators, mustExpr(t, "1 + 2"), NullProgressReporter{}, io.Discard)
			if len(results) != len(tt.expectError) {
				t.Fatalf("expected %d results, got %d", len(tt.expectError), len(results))
			}
			for i, wantErr := range tt.expectError {
				if (results[i].Err != nil) != wantErr {
					t.Errorf("result %d: err = %v, want error %v", i, results[i].Err, wantErr)
				}
				if results[i].Name != tt.calculators[i].Name() {
					t.Errorf("result %d: name = %q, want %q", i, results[i].Name, tt.calculators[i].Name())
				}
			}
		})
	}
}

func TestExecuteCalculationsRealEngines(t *testing.T) {
	t.Parallel()
	factory := calc.NewDefaultFactory()
	calculators := GetCalculatorsToRun(AllEngines, factory)
	expr := mustExpr(t, "123456789012345678901234567890 * -987654321")

	results := ExecuteCalculations(context.Background(), calculators, expr, NullProgressReporter{}, io.Discard)
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Name, r.Err)
		}
		if r.Value != "-121932631124828532112482853211126352690" {
			t.Errorf("%s: got %s", r.Name, r.Value)
		}
	}
}

func TestExecuteCalculationsReportsProgress(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	var updates []calc.ProgressUpdate
	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, ch <-chan calc.ProgressUpdate, n int, _ io.Writer) {
		defer wg.Done()
		for u := range ch {
			mu.Lock()
			updates = append(updates, u)
			mu.Unlock()
		}
	})
	calculators := []calc.Calculator{&MockCalculator{}, &MockCalculator{EvaluateFunc: func(context.Context, calc.Expression) (string, error) { return "1", nil }}}

	ExecuteCalculations(context.Background(), calculators, mustExpr(t, "1 * 1"), reporter, io.Discard)

	mu.Lock()
	defer mu.Unlock()
	if len(updates) != 3 {
		t.Errorf("expected 3 progress updates, got %d", len(updates))
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []CalculationResult
		expectedStatus int
		expectedOutput string
	}{
		{
			name: "All success",
			results: []CalculationResult{
				{Name: "A", Value: "5", Duration: time.Millisecond},
				{Name: "B", Value: "5", Duration: 2 * time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectedOutput: "Success",
		},
		{
			name: "Mismatch",
			results: []CalculationResult{
				{Name: "A", Value: "5", Duration: time.Millisecond},
				{Name: "B", Value: "6", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
			expectedOutput: "disagree",
		},
		{
			name: "All failure",
			results: []CalculationResult{
				{Name: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Name: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
			expectedOutput: "Failure",
		},
		{
			name: "Mixed success/failure",
			results: []CalculationResult{
				{Name: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Name: "B", Value: "5", Duration: time.Millisecond},
			},
			expectedStatus: apperrors.ExitSuccess,
			expectedOutput: "Success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out strings.Builder
			presenter := &MockResultPresenter{}
			status := AnalyzeComparisonResults(tt.results, PresentationOptions{}, presenter, MockErrorHandler{}, &out)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if !strings.Contains(out.String(), tt.expectedOutput) {
				t.Errorf("output %q does not contain %q", out.String(), tt.expectedOutput)
			}
			if status == apperrors.ExitSuccess && len(presenter.presented) != 1 {
				t.Errorf("expected the result to be presented once, got %d", len(presenter.presented))
			}
		})
	}
}

func TestAnalyzeComparisonResultsSortsSuccessFirst(t *testing.T) {
	t.Parallel()
	results := []CalculationResult{
		{Name: "failed", Duration: time.Microsecond, Err: errors.New("fail")},
		{Name: "slow", Value: "1", Duration: time.Second},
		{Name: "fast", Value: "1", Duration: time.Millisecond},
	}
	AnalyzeComparisonResults(results, PresentationOptions{}, &MockResultPresenter{}, MockErrorHandler{}, io.Discard)

	want := []string{"fast", "slow", "failed"}
	for i, name := range want {
		if results[i].Name != name {
			t.Errorf("position %d: got %s, want %s", i, results[i].Name, name)
		}
	}
}

// TestOrchestrationNoDeadlockOnTimeout verifies that a calculator that
// never finishes on its own does not block ExecuteCalculations past the
// context deadline.
func TestOrchestrationNoDeadlockOnTimeout(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	blocking := &MockCalculator{EvaluateFunc: func(ctx context.Context, _ calc.Expression) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}

	done := make(chan []CalculationResult)
	go func() {
		done <- ExecuteCalculations(ctx, []calc.Calculator{blocking, &MockCalculator{}}, mustExpr(t, "2 * 2"), NullProgressReporter{}, io.Discard)
	}()

	select {
	case results := <-done:
		if !errors.Is(results[0].Err, context.DeadlineExceeded) {
			t.Errorf("expected deadline error, got %v", results[0].Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteCalculations deadlocked")
	}
}
