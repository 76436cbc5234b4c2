// Package ui holds terminal output helpers shared by the commands.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// StdinIsPiped reports whether standard input is redirected
func StdinIsPiped() bool {
	return !IsTerminal(os.Stdin)
}

// Console prints prefixed diagnostics. Info and Success go to Out,
// warnings and errors go to Err.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// NewConsole creates a Console on stdout/stderr, colored when stderr is a terminal
func NewConsole() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr, Color: IsTerminal(os.Stderr)}
}

func (c *Console) prefix(style lipgloss.Style, label string) string {
	if c.Color {
		return style.Render(label)
	}
	return label
}

// Errorf prints "Error: ..." to Err
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.prefix(errorStyle, "Error:"), fmt.Sprintf(format, args...))
}

// Warnf prints "Warning: ..." to Err
func (c *Console) Warnf(format string, args ...any) {
	fmt.Fprintf(c.Err, "%s %s\n", c.prefix(warningStyle, "Warning:"), fmt.Sprintf(format, args...))
}

// Successf prints "Success: ..." to Out
func (c *Console) Successf(format string, args ...any) {
	fmt.Fprintf(c.Out, "%s %s\n", c.prefix(successStyle, "Success:"), fmt.Sprintf(format, args...))
}

// Infof prints a plain line to Out
func (c *Console) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.Color {
		msg = infoStyle.Render(msg)
	}
	fmt.Fprintln(c.Out, msg)
}

// Header renders a section title
func (c *Console) Header(title string) string {
	if c.Color {
		return headerStyle.Render(title)
	}
	return title
}
