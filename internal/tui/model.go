package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/calc"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// valueEdges is the number of leading and trailing digits shown for a
// value too wide for the history panel.
const valueEdges = 20

// ExecutionState tracks the evaluation in flight, if any.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	running    bool
	started    time.Time
	progress   ProgressMsg
	exitCode   int
}

// Model is the root bubbletea model of the calculator.
type Model struct {
	input   textinput.Model
	help    help.Model
	keymap  KeyMap
	history History

	factory   calc.CalculatorFactory
	engines   []string
	engineIdx int

	ExecutionState

	parentCtx context.Context
	config    config.AppConfig
	version   string
	ref       *programRef
	width     int
	height    int
	lastErr   string
}

// NewModel creates a calculator over the engines of factory, starting with
// cfg.Algo (or the first engine when cfg.Algo is "all" or unknown).
func NewModel(parentCtx context.Context, factory calc.CalculatorFactory, cfg config.AppConfig, version string) Model {
	ti := textinput.New()
	ti.Placeholder = "x op y   (e.g. 12345678901234567890 * 98765432109876543210)"
	ti.Prompt = "› "
	ti.PromptStyle = promptStyle
	ti.Focus()

	engines := factory.List()
	idx := 0
	for i, name := range engines {
		if name == cfg.Algo {
			idx = i
		}
	}

	return Model{
		input:          ti,
		help:           help.New(),
		keymap:         DefaultKeyMap(),
		factory:        factory,
		engines:        engines,
		engineIdx:      idx,
		ExecutionState: ExecutionState{exitCode: apperrors.ExitSuccess},
		parentCtx:      parentCtx,
		config:         cfg,
		version:        version,
		ref:            &programRef{},
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Engine returns the selected engine name.
func (m Model) Engine() string {
	if len(m.engines) == 0 {
		return ""
	}
	return m.engines[m.engineIdx]
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && m.running {
			m.progress = msg
		}
		return m, nil

	case TickMsg:
		if m.running {
			return m, tickCmd()
		}
		return m, nil

	case EvaluationDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.running = false
		m.cancel = nil
		m.exitCode = msg.Entry.ExitCode
		m.history.Add(msg.Entry)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.NextEngine):
		if !m.running && len(m.engines) > 0 {
			m.engineIdx = (m.engineIdx + 1) % len(m.engines)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Cancel):
		if m.running && m.cancel != nil {
			m.cancel()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Clear):
		m.history.Clear()
		m.lastErr = ""
		return m, nil

	case key.Matches(msg, m.keymap.HistoryUp):
		if in, ok := m.history.Prev(); ok {
			m.input.SetValue(in)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.HistoryDown):
		if in, ok := m.history.Next(); ok {
			m.input.SetValue(in)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Evaluate), key.Matches(msg, m.keymap.Compare):
		if m.running {
			return m, nil
		}
		algo := m.Engine()
		if key.Matches(msg, m.keymap.Compare) {
			algo = orchestration.AllEngines
		}
		return m.startEvaluation(algo)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// startEvaluation parses the input line and launches it. Parse errors are
// shown immediately without touching the history.
func (m Model) startEvaluation(algo string) (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	expr, err := calc.ParseExpression(line)
	if err == nil {
		err = expr.CheckLimit(m.config.MaxDigits)
	}
	if err != nil {
		m.lastErr = err.Error()
		return m, nil
	}
	calculators := orchestration.GetCalculatorsToRun(algo, m.factory)
	if len(calculators) == 0 {
		m.lastErr = fmt.Sprintf("no engine named %q", algo)
		return m, nil
	}

	m.lastErr = ""
	m.input.SetValue("")
	m.generation++
	ctx, cancel := context.WithTimeout(m.parentCtx, m.config.Timeout)
	m.cancel = cancel
	m.running = true
	m.started = time.Now()
	m.progress = ProgressMsg{Generation: m.generation, Total: len(calculators)}

	return m, tea.Batch(
		evaluateCmd(m.ref, ctx, cancel, calculators, expr, line, m.generation),
		tickCmd(),
	)
}

// evaluateCmd runs the evaluation through the orchestration layer and
// turns the outcome into a history entry.
func evaluateCmd(ref *programRef, ctx context.Context, cancel context.CancelFunc, calculators []calc.Calculator, expr calc.Expression, line string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		defer cancel()
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{}

		start := time.Now()
		results := orchestration.ExecuteCalculations(ctx, calculators, expr, reporter, io.Discard)
		code := orchestration.AnalyzeComparisonResults(results, orchestration.PresentationOptions{Expr: expr}, presenter, presenter, io.Discard)

		entry := HistoryEntry{
			Input:    line,
			Engines:  presenter.outcome.results,
			Duration: time.Since(start),
			Err:      presenter.outcome.errText,
			ExitCode: code,
		}
		if presenter.outcome.final != nil {
			entry.Value = presenter.outcome.final.Value
			entry.Duration = presenter.outcome.final.Duration
		}
		if code == apperrors.ExitErrorMismatch {
			entry.Err = "engines disagree"
		}
		return EvaluationDoneMsg{Generation: gen, Entry: entry}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// View renders the calculator.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.headerView()
	status := m.statusView()
	helpView := m.help.View(m.keymap)
	input := panelStyle.Width(max(m.width-2, 10)).Render(m.input.View())

	used := lipgloss.Height(header) + lipgloss.Height(input) + lipgloss.Height(status) + lipgloss.Height(helpView)
	historyView := m.historyView(max(m.height-used, 1))

	return lipgloss.JoinVertical(lipgloss.Left, header, historyView, input, status, helpView)
}

func (m Model) headerView() string {
	title := "bigcalc"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	engine := engineStyle.Render("engine: " + m.Engine())
	return headerStyle.Render(titleStyle.Render(title) + dimStyle.Render(" | ") + engine)
}

// historyView renders the newest entries that fit in height lines.
func (m Model) historyView(height int) string {
	entries := m.history.Entries()
	if len(entries) == 0 {
		return dimStyle.Render(padLines("  No expressions evaluated yet.", height))
	}

	valueWidth := max(m.width-6, 2*valueEdges+3)
	var lines []string
	for i := len(entries) - 1; i >= 0 && len(lines) < height; i-- {
		lines = append(renderEntry(entries[i], valueWidth), lines...)
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	return padLines(strings.Join(lines, "\n"), height)
}

func renderEntry(e HistoryEntry, valueWidth int) []string {
	expr := exprStyle.Render("  " + format.TruncateDigits(e.Input, valueWidth, valueEdges))
	var result string
	switch {
	case e.Err != "":
		result = errorStyle.Render("    ✗ " + e.Err)
	default:
		value := e.Value
		if len(value) > valueWidth {
			value = format.TruncateDigits(value, valueWidth, valueEdges)
		}
		result = "    = " + resultStyle.Render(value) +
			dimStyle.Render(fmt.Sprintf("  (%s", format.FormatExecutionDuration(e.Duration)))
		if n := len(e.Engines); n > 1 {
			result += dimStyle.Render(fmt.Sprintf(", %d engines agree", n))
		}
		result += dimStyle.Render(")")
	}
	return []string{expr, result}
}

func (m Model) statusView() string {
	switch {
	case m.running:
		elapsed := format.FormatExecutionDuration(time.Since(m.started))
		bar := progressBar(m.progress.AverageProgress, 20)
		return progressStyle.Render(fmt.Sprintf(" Evaluating %s %d/%d engines, %s", bar, m.progress.Done, m.progress.Total, elapsed))
	case m.lastErr != "":
		return errorStyle.Render(" " + m.lastErr)
	}
	return dimStyle.Render(fmt.Sprintf(" %d evaluated", m.history.Len()))
}

func progressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// padLines pads s with empty lines up to height lines.
func padLines(s string, height int) string {
	n := strings.Count(s, "\n") + 1
	if n >= height {
		return s
	}
	return s + strings.Repeat("\n", height-n)
}

// ExitCode returns the exit code of the last evaluation.
func (m Model) ExitCode() int {
	return m.exitCode
}

// Run starts the calculator and blocks until the user quits. It returns
// the exit code of the last evaluation.
func Run(ctx context.Context, factory calc.CalculatorFactory, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, factory, cfg, version)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(err) || ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		return m.ExitCode()
	}
	return apperrors.ExitSuccess
}
