package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig prints the expression, the timeout, the runtime
// environment and the engine thresholds.
func PrintExecutionConfig(cfg config.AppConfig, expr calc.Expression, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %sx %s y%s on operands of %s%d%s and %s%d%s digits with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), expr.Op, ui.ColorReset(),
		ui.ColorCyan(), expr.X.Len(), ui.ColorReset(),
		ui.ColorCyan(), expr.Y.Len(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Engine thresholds: Karatsuba=%s%d%s digits, Parallel=%s%d%s digits.\n",
		ui.ColorCyan(), cfg.KaratsubaThreshold, ui.ColorReset(), ui.ColorCyan(), cfg.ParallelThreshold, ui.ColorReset())
	if cfg.MaxDigits > 0 {
		fmt.Fprintf(out, "Operand limit: %s%s%s digits.\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(cfg.MaxDigits)), ui.ColorReset())
	}
}

// PrintExecutionMode prints whether one engine runs or all engines are
// compared.
func PrintExecutionMode(calculators []calc.Calculator, out io.Writer) {
	var modeDesc string
	if len(calculators) > 1 {
		modeDesc = fmt.Sprintf("Parallel comparison of %d engines", len(calculators))
	} else {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s engine",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
