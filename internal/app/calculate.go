package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/cli"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// runCalculate evaluates the expression given by the flags, or by the two
// operands read from a.In, with the selected engines.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	expr, err := a.readExpression()
	if err == nil {
		err = expr.CheckLimit(a.Config.MaxDigits)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)
	if len(calculatorsToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no engine named %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, expr, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	}

	mc := metrics.NewMemoryCollector()
	before := mc.Snapshot()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, expr, progressReporter, progressOut)
	usage := metrics.Usage(before, mc.Snapshot())
	a.logger.Debug("evaluation finished",
		logging.Stringer("expression", expr),
		logging.Int("engines", len(results)),
		logging.Uint64("allocated_bytes", usage.Allocated))

	exitCode := a.analyzeResultsWithOutput(results, expr, out)
	if a.Config.Details && !a.Config.Quiet {
		fmt.Fprintf(out, "Memory: %s\n", usage)
	}
	return exitCode
}

// readExpression builds the expression from -x/-y, or reads the operands
// as whitespace-delimited tokens from a.In.
func (a *Application) readExpression() (calc.Expression, error) {
	if !a.Config.ReadsOperandsFromStdin() {
		return calc.NewExpression(a.Config.X, a.Config.Op, a.Config.Y)
	}

	op, err := calc.ParseOp(a.Config.Op)
	if err != nil {
		return calc.Expression{}, err
	}
	x, err := bigint.Read(a.In)
	if err != nil {
		return calc.Expression{}, stdinError("left", err)
	}
	y, err := bigint.Read(a.In)
	if err != nil {
		return calc.Expression{}, stdinError("right", err)
	}
	return calc.Expression{X: x, Op: op, Y: y}, nil
}

func stdinError(side string, err error) error {
	if errors.Is(err, bigint.ErrEndOfInput) {
		return apperrors.NewConfigError("missing %s operand: pass -x and -y or two integers on standard input", side)
	}
	return apperrors.WrapError(err, "reading %s operand", side)
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, expr calc.Expression, out io.Writer) int {
	presOpts := orchestration.PresentationOptions{
		Expr:    expr,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
	}

	if a.Config.Quiet {
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, errWriterHandler{a.ErrWriter}, io.Discard)
		if exitCode == apperrors.ExitErrorMismatch {
			fmt.Fprintln(a.ErrWriter, "Error: the engines disagree on the result.")
		}
		bestResult := findBestResult(results)
		if exitCode != apperrors.ExitSuccess || bestResult == nil {
			return exitCode
		}
		cli.DisplayQuietResult(out, bestResult.Value)
		if err := a.saveResultIfNeeded(bestResult, expr, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)
	bestResult := findBestResult(results)
	if bestResult != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := a.saveResultIfNeeded(bestResult, expr, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// errWriterHandler reports errors on the error stream, for quiet mode.
type errWriterHandler struct {
	w io.Writer
}

func (h errWriterHandler) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return cli.CLIResultPresenter{}.HandleError(err, duration, h.w)
}

// findBestResult returns the fastest successful result. AnalyzeComparisonResults
// reorders results, so it must be called afterwards.
func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, expr calc.Expression, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Value, expr, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
