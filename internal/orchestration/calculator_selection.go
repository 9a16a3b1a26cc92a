package orchestration

import "github.com/agbru/bigcalc/internal/calc"

// AllEngines selects every registered calculator.
const AllEngines = "all"

// GetCalculatorsToRun returns the calculators selected by algo, in sorted
// name order for "all". It returns nil for an unknown name.
func GetCalculatorsToRun(algo string, factory calc.CalculatorFactory) []calc.Calculator {
	if algo == AllEngines {
		names := factory.List()
		calculators := make([]calc.Calculator, 0, len(names))
		for _, name := range names {
			if c, err := factory.Get(name); err == nil {
				calculators = append(calculators, c)
			}
		}
		return calculators
	}
	if c, err := factory.Get(algo); err == nil {
		return []calc.Calculator{c}
	}
	return nil
}
