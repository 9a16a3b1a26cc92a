package orchestration

import (
	"testing"

	"github.com/agbru/bigcalc/internal/calc"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := calc.NewDefaultFactory()

	t.Run("Single engine returns one calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun(calc.KaratsubaName, factory)
		if len(calculators) != 1 {
			t.Fatalf("Expected 1 calculator, got %d", len(calculators))
		}
		if calculators[0].Name() != calc.KaratsubaName {
			t.Errorf("Expected %s, got %s", calc.KaratsubaName, calculators[0].Name())
		}
	})

	t.Run("All returns every engine in sorted order", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun(AllEngines, factory)
		if len(calculators) < 3 {
			t.Fatalf("Expected at least 3 calculators for 'all', got %d", len(calculators))
		}
		for i := 1; i < len(calculators); i++ {
			if calculators[i-1].Name() > calculators[i].Name() {
				t.Errorf("calculators not sorted: %s before %s", calculators[i-1].Name(), calculators[i].Name())
			}
		}
	})

	t.Run("Unknown engine returns nil", func(t *testing.T) {
		t.Parallel()
		if calculators := GetCalculatorsToRun("fft", factory); calculators != nil {
			t.Errorf("Expected nil, got %d calculators", len(calculators))
		}
	})
}
