package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/ui"
)

// lastResultName stands for the previous numeric result in an expression.
const lastResultName = "ans"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the engine used until "algo" changes it.
	DefaultAlgo string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// MaxDigits bounds operand length; zero disables the check.
	MaxDigits int
	// Logger receives debug records for each evaluation. Optional.
	Logger logging.Logger
}

// REPL is an interactive calculator session reading "x op y" lines.
type REPL struct {
	config      REPLConfig
	registry    map[string]calc.Calculator
	currentAlgo string
	lastResult  string
	logger      logging.Logger
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the given engines.
func NewREPL(registry map[string]calc.Calculator, config REPLConfig) *REPL {
	r := &REPL{
		config:   config,
		registry: registry,
		logger:   config.Logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}
	if r.logger == nil {
		r.logger = logging.NewLogger(io.Discard, "repl")
	}
	r.currentAlgo = config.DefaultAlgo
	if _, ok := registry[r.currentAlgo]; !ok {
		if names := r.algoNames(); len(names) > 0 {
			r.currentAlgo = names[0]
		}
	}
	return r
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start reads and executes lines until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"calc> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sbigcalc - Interactive Mode%s                           %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<x> <op> <y>%s      - Evaluate with the current engine (op: %s)\n", ui.ColorYellow(), ui.ColorReset(), opList())
	fmt.Fprintf(r.out, "  %scompare <x> <op> <y>%s - Evaluate with every engine\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s       - Change engine (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getAlgoList())
	fmt.Fprintf(r.out, "  %slist%s              - List available engines\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s            - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s              - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s       - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "Use %s%s%s as an operand to reuse the last numeric result.\n", ui.ColorYellow(), lastResultName, ui.ColorReset())
}

func opList() string {
	ops := calc.Ops()
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, " ")
}

func (r *REPL) algoNames() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *REPL) getAlgoList() string {
	return strings.Join(r.algoNames(), ", ")
}

// processCommand executes one line. It returns false when the session
// should end.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc", "c":
		r.cmdCalc(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if len(parts) == 3 {
			r.cmdCalc(parts)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

// parseArgs builds an expression from three tokens, substituting the last
// result for "ans".
func (r *REPL) parseArgs(args []string) (calc.Expression, error) {
	if len(args) != 3 {
		return calc.Expression{}, fmt.Errorf("%w: want \"x op y\"", calc.ErrMalformedExpression)
	}
	x, y := args[0], args[2]
	for _, operand := range []*string{&x, &y} {
		if strings.EqualFold(*operand, lastResultName) {
			if r.lastResult == "" {
				return calc.Expression{}, errors.New("no previous numeric result")
			}
			*operand = r.lastResult
		}
	}
	expr, err := calc.NewExpression(x, args[1], y)
	if err != nil {
		return calc.Expression{}, err
	}
	return expr, expr.CheckLimit(r.config.MaxDigits)
}

func (r *REPL) cmdCalc(args []string) {
	expr, err := r.parseArgs(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sInvalid expression: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	r.evaluate(expr)
}

func (r *REPL) evaluate(expr calc.Expression) {
	c, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sEngine not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan calc.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	value, err := c.Evaluate(ctx, progressChan, 0, expr)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	r.logger.Debug("repl evaluation",
		logging.String("engine", c.Name()),
		logging.String("op", string(expr.Op)),
		logging.Int("digits", expr.Digits()),
		logging.Duration("duration", duration))

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	if !expr.Op.IsComparison() {
		r.lastResult = value
	}

	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	if !expr.Op.IsComparison() {
		fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ui.ColorCyan(), format.DigitCount(value), ui.ColorReset())
	}
	shown := format.TruncateDigits(value, TruncationLimit, DisplayEdges)
	suffix := ""
	if shown != value {
		suffix = " (truncated)"
	}
	fmt.Fprintf(r.out, "  = %s%s%s%s\n\n", ui.ColorGreen(), shown, ui.ColorReset(), suffix)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", r.getAlgoList())
		return
	}

	name := strings.ToLower(args[0])
	if _, ok := r.registry[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", r.getAlgoList())
		return
	}

	r.currentAlgo = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

// cmdCompare evaluates the expression with every engine in turn and flags
// results that differ from the first one.
func (r *REPL) cmdCompare(args []string) {
	expr, err := r.parseArgs(args)
	if err != nil {
		fmt.Fprintf(r.out, "%sUsage: compare <x> <op> <y> (%v)%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), format.TruncateDigits(expr.String(), TruncationLimit, DisplayEdges), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var first string
	for _, name := range r.algoNames() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		value, err := r.registry[name].Evaluate(ctx, nil, 0, expr)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if first == "" {
			first = value
		}

		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if value != first {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%12s%s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(duration), ui.ColorReset(),
			status)
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.algoNames() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:      %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	limit := "unlimited"
	if r.config.MaxDigits > 0 {
		limit = fmt.Sprintf("%d digits", r.config.MaxDigits)
	}
	fmt.Fprintf(r.out, "  Max digits:  %s%s%s\n", ui.ColorCyan(), limit, ui.ColorReset())
	last := "none"
	if r.lastResult != "" {
		last = format.TruncateDigits(r.lastResult, TruncationLimit, DisplayEdges)
	}
	fmt.Fprintf(r.out, "  Last result: %s%s%s\n", ui.ColorCyan(), last, ui.ColorReset())
	fmt.Fprintln(r.out)
}
