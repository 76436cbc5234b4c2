package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func waitMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a config change")
		return nil
	}
}

func TestWatcherReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "config.json.lock"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	tmp := filepath.Join(dir, "config.json.tmp")
	if err := os.WriteFile(tmp, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if _, ok := waitMsg(t, w.Wait()).(ConfigChangedMsg); !ok {
		t.Error("expected ConfigChangedMsg")
	}
}

func TestWatcherClosed(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	cmd := w.Wait()
	w.Close()
	if msg := waitMsg(t, cmd); msg != nil {
		t.Errorf("closed watcher returned %T", msg)
	}
}

func TestConfigChangedReloads(t *testing.T) {
	store := newFakeStore("a1")
	m := loaded(t, store)

	store.file.Models["b2"] = store.file.Models["a1"]
	m = drive(t, m, func() tea.Msg { return ConfigChangedMsg{} }).(Model)

	if len(m.rows) != 2 {
		t.Errorf("rows = %d after reload, want 2", len(m.rows))
	}
}
