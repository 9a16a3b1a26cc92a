package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the calculator key bindings. Printable keys belong to
// the text input, so every binding uses control or function keys.
type KeyMap struct {
	Evaluate    key.Binding
	Compare     key.Binding
	NextEngine  key.Binding
	HistoryUp   key.Binding
	HistoryDown key.Binding
	Cancel      key.Binding
	Clear       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Evaluate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "evaluate"),
		),
		Compare: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "compare all engines"),
		),
		NextEngine: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next engine"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous expression"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next expression"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cancel evaluation"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.NextEngine, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Evaluate, k.Compare, k.NextEngine},
		{k.HistoryUp, k.HistoryDown, k.Clear},
		{k.Cancel, k.Help, k.Quit},
	}
}
