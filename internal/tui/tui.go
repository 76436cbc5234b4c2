package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"clippy/internal/ui"
)

// Run starts the model picker. When configPath is not empty the list
// follows changes other processes make to that file.
func Run(store Store, configPath string) error {
	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return fmt.Errorf("the model picker requires a terminal. Use list, set_default and remove_model instead")
	}

	model := NewModel(store)
	if configPath != "" {
		if w, err := NewWatcher(configPath); err == nil {
			defer w.Close()
			model = model.WithWatcher(w)
		}
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
