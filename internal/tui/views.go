package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"clippy/internal/ui"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	defaultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

func (m Model) separator() string {
	w := m.width
	if w <= 0 || w > 60 {
		w = 60
	}
	return separatorStyle.Render(strings.Repeat("─", w))
}

// RenderMainView renders the model list
func (m Model) RenderMainView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Clippy models"))
	b.WriteString("\n")
	b.WriteString(m.separator())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(dimStyle.Render("No models configured. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, row := range m.rows {
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.RenderStatusBar())
	return b.String()
}

func (m Model) renderRow(index int, row Row) string {
	marker := "  "
	if row.Name == m.defaultModel {
		marker = "* "
	}
	line := fmt.Sprintf("%s%-28s %-10s %s", marker, row.Name, row.Provider, ui.MaskAPIKey(row.APIKey))

	switch {
	case index == m.cursor:
		return selectedStyle.Render(line)
	case row.Name == m.defaultModel:
		return defaultStyle.Render(line)
	default:
		return normalStyle.Render(line)
	}
}

// RenderDeleteConfirm renders the removal confirmation dialog
func (m Model) RenderDeleteConfirm() string {
	row, _ := m.current()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Remove model"))
	b.WriteString("\n")
	b.WriteString(m.separator())
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Remove '%s' (%s)?", row.Name, row.Provider))
	if row.Name == m.defaultModel {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("This is the default model."))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("y: remove │ any other key: cancel"))
	return b.String()
}

// RenderHelpView renders every key binding
func (m Model) RenderHelpView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n")
	b.WriteString(m.separator())
	b.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, k := range group {
			b.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-10s", k.Help().Key)), helpStyle.Render(k.Help().Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("Press any key to return"))
	return b.String()
}

// RenderStatusBar renders messages and the short key help
func (m Model) RenderStatusBar() string {
	var b strings.Builder

	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render("✗ Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render("✓ " + m.message))
		b.WriteString("\n")
	}
	if m.errorMsg != "" || m.message != "" {
		b.WriteString("\n")
	}

	shortHelp := m.keys.ShortHelp()
	hints := make([]string, 0, len(shortHelp))
	for _, k := range shortHelp {
		hints = append(hints, fmt.Sprintf("%s %s", helpKeyStyle.Render(k.Help().Key), helpStyle.Render(k.Help().Desc)))
	}
	b.WriteString(strings.Join(hints, helpStyle.Render(" │ ")))
	return b.String()
}
