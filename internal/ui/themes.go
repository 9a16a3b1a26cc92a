package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for CLI output.
type Theme struct {
	Name string
	// Primary highlights results and headings.
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Reset     string
}

var (
	// DarkTheme targets dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;45m",  // Cyan
		Secondary: "\033[38;5;245m", // Grey
		Success:   "\033[38;5;82m",  // Green
		Warning:   "\033[38;5;220m", // Yellow
		Error:     "\033[38;5;196m", // Red
		Info:      "\033[38;5;141m", // Purple
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// LightTheme targets light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;25m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// TUITheme is the lipgloss palette of the terminal calculator.
type TUITheme struct {
	Text   lipgloss.TerminalColor
	Border lipgloss.TerminalColor
	Accent lipgloss.TerminalColor
	Result lipgloss.TerminalColor
	Error  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
	Prompt lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default terminal calculator palette.
	DarkTUITheme = TUITheme{
		Text:   lipgloss.Color("#E0E0E0"),
		Border: lipgloss.Color("#3A7CA5"),
		Accent: lipgloss.Color("#4FC3F7"),
		Result: lipgloss.Color("#9ECE6A"),
		Error:  lipgloss.Color("#FF5555"),
		Dim:    lipgloss.Color("#6C6C6C"),
		Prompt: lipgloss.Color("#FFB347"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:   lipgloss.NoColor{},
		Border: lipgloss.NoColor{},
		Accent: lipgloss.NoColor{},
		Result: lipgloss.NoColor{},
		Error:  lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
		Prompt: lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme installs t; tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates the theme with the given name ("dark", "light" or
// "none"). Unknown names select the dark theme.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme disables colors when noColor is set or the NO_COLOR variable
// exists, and selects the dark theme otherwise.
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
