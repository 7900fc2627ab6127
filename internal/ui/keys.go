package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Usage    key.Binding
	Windows  key.Binding
	Sessions key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Range    key.Binding
	Up       key.Binding
	Down     key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Usage: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "usage"),
	),
	Windows: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "windows"),
	),
	Sessions: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "sessions"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev view"),
	),
	Range: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "time range"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp and FullHelp satisfy help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Range, k.Refresh, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Usage, k.Windows, k.Sessions, k.NextTab, k.PrevTab},
		{k.Range, k.Up, k.Down},
		{k.Refresh, k.Help, k.Quit},
	}
}
