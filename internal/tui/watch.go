package tui

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to the config file made by other clippy processes
type Watcher struct {
	fs   *fsnotify.Watcher
	path string
}

// NewWatcher watches the directory holding configPath. Saves replace the
// file by rename, so watching the file itself would lose track of it.
func NewWatcher(configPath string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	path := filepath.Clean(configPath)
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch config directory: %w", err)
	}
	return &Watcher{fs: fw, path: path}, nil
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Wait returns a command that blocks until the config file is written or
// replaced. It yields nil once the watcher is closed.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != w.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					return ConfigChangedMsg{}
				}
			case _, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}
