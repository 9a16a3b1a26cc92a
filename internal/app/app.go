package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/calibration"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/server"
	"github.com/agbru/bigcalc/internal/tui"
	"github.com/agbru/bigcalc/internal/ui"
)

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   calc.CalculatorFactory
	ErrWriter io.Writer
	// In supplies the operands when -x and -y are omitted, and the REPL
	// input.
	In io.Reader

	profilePath string
	logger      logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory. Engine thresholds from the
// configuration are then the factory's concern.
func WithFactory(f calc.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput replaces standard input.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithProfilePath sets where the calibration profile is read and saved.
func WithProfilePath(path string) AppOption {
	return func(a *Application) { a.profilePath = path }
}

// New creates a new Application by parsing command-line arguments. args
// includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.profilePath == "" {
		app.profilePath = calibration.GetDefaultProfilePath()
	}

	names := calc.NewDefaultFactory().List()
	if app.Factory != nil {
		names = app.Factory.List()
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, names)
	if err != nil {
		return nil, err
	}

	if profile, loaded := calibration.LoadOrCreateProfile(app.profilePath); loaded {
		cfg = profile.Apply(cfg)
	}
	cfg = config.ApplyAdaptiveThresholds(cfg)

	if app.Factory == nil {
		app.Factory = calc.NewFactoryWithOptions(cfg.ToEngineOptions())
	}
	app.Config = cfg
	app.logger = logging.NewConsoleLogger(errWriter, "bigcalc", cfg.NoColor)
	return app, nil
}

// Run executes the application in the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	a.logger.Debug("configuration resolved",
		logging.String("algo", a.Config.Algo),
		logging.Int("karatsuba_threshold", a.Config.KaratsubaThreshold),
		logging.Int("parallel_threshold", a.Config.ParallelThreshold),
		logging.Duration("timeout", a.Config.Timeout))

	switch {
	case a.Config.Calibrate:
		return a.runCalibration(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.Serve:
		return a.runServer(ctx)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration benchmarks the thresholds and saves them as the profile
// used by later runs.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	res, err := calibration.Run(ctx, out, calibration.Options{Logger: a.logger})
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, ui.ColorProvider{})
	}
	profile := calibration.ProfileFromResult(res)
	if err := profile.SaveProfile(a.profilePath); err != nil {
		fmt.Fprintf(a.ErrWriter, "Warning: %v\n", err)
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "Profile saved to %s%s%s\n", ui.ColorCyan(), a.profilePath, ui.ColorReset())
	return apperrors.ExitSuccess
}

// runTUI launches the interactive calculator.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return tui.Run(ctx, a.Factory, a.Config, Version)
}

// runREPL starts the line-oriented calculator on a.In.
func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		MaxDigits:   a.Config.MaxDigits,
		Logger:      logging.NewLogger(a.ErrWriter, "repl"),
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until SIGINT or SIGTERM.
func (a *Application) runServer(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	srv := server.NewServer(a.Factory, a.Config, server.WithLogger(logging.NewLogger(a.ErrWriter, "server")))
	if err := srv.Start(ctx); err != nil {
		a.logger.Error("server failed", err, logging.String("addr", a.Config.Addr))
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
