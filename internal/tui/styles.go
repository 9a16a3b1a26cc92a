package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Styles are rebuilt from the ui theme by initTUIStyles.
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	dimStyle      lipgloss.Style
	panelStyle    lipgloss.Style
	exprStyle     lipgloss.Style
	resultStyle   lipgloss.Style
	errorStyle    lipgloss.Style
	engineStyle   lipgloss.Style
	promptStyle   lipgloss.Style
	progressStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	exprStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	resultStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Result)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	engineStyle = lipgloss.NewStyle().
		Foreground(t.Accent)

	promptStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Prompt)

	progressStyle = lipgloss.NewStyle().
		Foreground(t.Accent)
}
