package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	Up      key.Binding // k - move up
	Down    key.Binding // j - move down
	Top     key.Binding // g - jump to top
	Bottom  key.Binding // G - jump to bottom
	Default key.Binding // Enter - make default
	Add     key.Binding // a - add model
	Delete  key.Binding // d - remove model
	Help    key.Binding // ? - help
	Quit    key.Binding // q - quit
	Cancel  key.Binding // Esc - cancel
	Confirm key.Binding // y - confirm removal
	Next    key.Binding // Tab - next form field
	Prev    key.Binding // Shift+Tab - previous form field
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
		Bottom:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Default: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "set default")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add model")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "cancel")),
		Confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("Tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("Shift+Tab", "previous field")),
	}
}

// ShortHelp returns the bindings shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Default, k.Add, k.Delete, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Default, k.Add, k.Delete},
		{k.Help, k.Quit, k.Cancel},
	}
}
