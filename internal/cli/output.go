// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet bool
	// Verbose prints the full value instead of a truncated one.
	Verbose bool
	// Details adds digit counts and the grouped form.
	Details bool
}

// WriteResultToFile saves a result with a short commented header. Missing
// parent directories are created.
func WriteResultToFile(value string, expr calc.Expression, duration time.Duration, algo string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	fmt.Fprintf(file, "# bigcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Engine: %s\n", algo)
	fmt.Fprintf(file, "# Duration: %s\n", duration)
	fmt.Fprintf(file, "# Operator: %s\n", expr.Op)
	fmt.Fprintf(file, "# Digits: %d\n", format.DigitCount(value))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s =\n%s\n", expr, value)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult returns the bare value, for scripting.
func FormatQuietResult(value string) string {
	return value
}

// DisplayQuietResult prints the bare value on its own line.
func DisplayQuietResult(out io.Writer, value string) {
	fmt.Fprintln(out, FormatQuietResult(value))
}

// DisplayResult prints the value of expr. Long values are truncated unless
// verbose is set; details adds the evaluation time, digit counts and the
// grouped form of the value.
func DisplayResult(value string, expr calc.Expression, duration time.Duration, verbose, details bool, out io.Writer) {
	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Evaluation time:  %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Operand digits:   %s%d%s and %s%d%s\n",
			ui.ColorCyan(), expr.X.Len(), ui.ColorReset(), ui.ColorCyan(), expr.Y.Len(), ui.ColorReset())
		if !expr.Op.IsComparison() {
			fmt.Fprintf(out, "Number of digits: %s%d%s\n", ui.ColorCyan(), format.DigitCount(value), ui.ColorReset())
		}
	}

	fmt.Fprintf(out, "\n%s--- Result ---%s\n", ui.ColorBold(), ui.ColorReset())
	shown := value
	truncated := false
	if !verbose {
		shown = format.TruncateDigits(value, TruncationLimit, DisplayEdges)
		truncated = shown != value
	}
	x, y := expr.X.String(), expr.Y.String()
	if !verbose {
		x = format.TruncateDigits(x, TruncationLimit, DisplayEdges)
		y = format.TruncateDigits(y, TruncationLimit, DisplayEdges)
	}
	fmt.Fprintf(out, "%s%s %s %s%s =\n", ui.ColorMagenta(), x, expr.Op, y, ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "%s%s%s (truncated)\n", ui.ColorGreen(), shown, ui.ColorReset())
		fmt.Fprintf(out, "Tip: use %s-v%s to display the full value.\n", ui.ColorYellow(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), shown, ui.ColorReset())
	}

	if details && !truncated && format.DigitCount(value) > 3 {
		fmt.Fprintf(out, "Grouped: %s\n", format.FormatNumberString(value))
	}
}

// DisplayResultWithConfig prints a result in the mode selected by config
// and saves it to config.OutputFile when set.
func DisplayResultWithConfig(out io.Writer, value string, expr calc.Expression, duration time.Duration, algo string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, value)
	} else {
		DisplayResult(value, expr, duration, config.Verbose, config.Details, out)
	}

	if config.OutputFile != "" {
		if err := WriteResultToFile(value, expr, duration, algo, config); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
