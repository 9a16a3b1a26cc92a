package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// printCalibrationResults prints one table of candidate timings, marking
// the selected threshold.
func printCalibrationResults(out io.Writer, title string, results []calibrationResult, bestThreshold int) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(out, "\n--- %s ---\n", title)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s\t│ %sBest of rounds%s\n", ui.ColorBold(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\n", strings.Repeat("─", 12), strings.Repeat("─", 24))
	for _, res := range results {
		label := fmt.Sprintf("%d digits", res.Threshold)
		if res.Threshold == 0 {
			label = "Sequential"
		}
		duration := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			duration = format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				duration = "< 1µs"
			}
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%s%s\t│ %s%s%s%s\n", ui.ColorCyan(), label, ui.ColorReset(), ui.ColorYellow(), duration, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the selected thresholds and the flags that
// reproduce them.
func printCalibrationOutput(out io.Writer, res Result) {
	fmt.Fprintf(out, "\n%sCalibration%s (%s): karatsuba=%s%d%s digits, parallel=%s%d%s digits\n",
		ui.ColorGreen(), ui.ColorReset(), format.FormatExecutionDuration(res.Elapsed),
		ui.ColorYellow(), res.Options.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorYellow(), res.Options.ParallelThreshold, ui.ColorReset())
	fmt.Fprintf(out, "Use: --karatsuba-threshold %d --parallel-threshold %d\n",
		res.Options.KaratsubaThreshold, res.Options.ParallelThreshold)
}
