// Package config parses and validates the bigcalc command line.
//
// Values are resolved with the priority: command-line flags, then BIGCALC_*
// environment variables, then an optional .env file, then defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/bigint"
	"github.com/agbru/bigcalc/internal/calc"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix prefixes every environment variable read by bigcalc.
const EnvPrefix = "BIGCALC_"

// Defaults.
const (
	DefaultAlgo      = "karatsuba"
	DefaultOp        = "*"
	DefaultTimeout   = 5 * time.Minute
	DefaultAddr      = ":8080"
	DefaultMaxDigits = 1_000_000
)

// Supported shells for --completion.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// X and Y are the operands as given. Both empty means they are read
	// from standard input.
	X, Y string
	// Op is the operator symbol or alias.
	Op string
	// Algo is a calculator name or "all".
	Algo    string
	Timeout time.Duration

	// KaratsubaThreshold and ParallelThreshold tune the decimal engine.
	// Zero means "estimate from the hardware".
	KaratsubaThreshold int
	ParallelThreshold  int
	// MaxDigits bounds operand length; zero disables the check.
	MaxDigits int

	Verbose    bool
	Details    bool
	Quiet      bool
	OutputFile string
	NoColor    bool

	REPL       bool
	TUI        bool
	Serve      bool
	Addr       string
	Calibrate  bool
	Completion string
	EnvFile    string
}

// ReadsOperandsFromStdin reports whether the operands must be read from
// standard input.
func (c AppConfig) ReadsOperandsFromStdin() bool {
	return c.X == "" && c.Y == ""
}

// Interactive reports whether the configuration selects a mode that does
// not need operands up front.
func (c AppConfig) Interactive() bool {
	return c.REPL || c.TUI || c.Serve || c.Calibrate || c.Completion != ""
}

// ToEngineOptions returns the multiplication tuning for package bigint.
func (c AppConfig) ToEngineOptions() bigint.Options {
	return bigint.Options{
		KaratsubaThreshold: c.KaratsubaThreshold,
		ParallelThreshold:  c.ParallelThreshold,
	}
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and flag errors are written to errWriter. A --help request returns
// flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.StringVar(&config.X, "x", "", "Left operand (decimal integer).")
	fs.StringVar(&config.Y, "y", "", "Right operand (decimal integer).")
	fs.StringVar(&config.Op, "op", DefaultOp, "Operator: + - * / % < <= > >= == != (or add, sub, mul, div, mod, ...).")
	algoHelp := fmt.Sprintf("Engine to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum evaluation time (e.g. 30s, 5m).")
	fs.IntVar(&config.KaratsubaThreshold, "karatsuba-threshold", 0, "Padded length below which products use the quadratic base case (0 = auto).")
	fs.IntVar(&config.ParallelThreshold, "parallel-threshold", 0, "Padded length from which Karatsuba sub-products run in parallel (0 = auto).")
	fs.IntVar(&config.MaxDigits, "max-digits", DefaultMaxDigits, "Maximum operand length in digits (0 = unlimited).")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output: print the full result and debug logs.")
	fs.BoolVar(&config.Details, "d", false, "Show result details (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Show result details: digit count, sign, grouped digits.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode: print only the result.")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result to a file (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to a file.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also honors NO_COLOR).")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive read-eval-print loop.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal calculator.")
	fs.BoolVar(&config.Serve, "serve", false, "Start the HTTP API.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "Listen address for --serve.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Benchmark Karatsuba thresholds and print the best one.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish, powershell).")
	fs.StringVar(&config.EnvFile, "env-file", "", "Load BIGCALC_* variables from a .env file.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintf(errWriter, "Evaluates x op y on arbitrary-precision integers.\n")
		fmt.Fprintf(errWriter, "Without -x and -y, the two operands are read from standard input.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := loadEnvFile(config.EnvFile, isFlagSet(fs, "env-file")); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)
	config.Algo = strings.ToLower(config.Algo)

	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("the timeout value must be strictly positive")
	}
	if c.KaratsubaThreshold < 0 {
		return apperrors.NewConfigError("the Karatsuba threshold cannot be negative: %d", c.KaratsubaThreshold)
	}
	if c.ParallelThreshold < 0 {
		return apperrors.NewConfigError("the parallel threshold cannot be negative: %d", c.ParallelThreshold)
	}
	if c.MaxDigits < 0 {
		return apperrors.NewConfigError("--max-digits cannot be negative: %d", c.MaxDigits)
	}
	if _, err := calc.ParseOp(c.Op); err != nil {
		return apperrors.NewConfigError("invalid --op: %v", err)
	}

	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized engine: %q. Valid engines are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.Completion != "" && !slices.Contains(completionShells, strings.ToLower(c.Completion)) {
		return apperrors.NewConfigError("unsupported shell for --completion: %q", c.Completion)
	}
	if (c.X == "") != (c.Y == "") && !c.Interactive() {
		return apperrors.NewConfigError("-x and -y must be given together")
	}
	modes := 0
	for _, on := range []bool{c.REPL, c.TUI, c.Serve, c.Calibrate} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--repl, --tui, --serve and --calibrate are mutually exclusive")
	}
	return nil
}

// IsHelp reports whether err is the result of a -h/--help request.
func IsHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
