package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

const fence = "```"

// Formatter renders assistant responses for a terminal: fenced code is
// colored and **bold** spans are emphasized. Fence lines are kept as is.
type Formatter struct {
	Enabled bool
	Bold    func(string) string
	Code    func(string) string
}

// NewFormatter creates a Formatter using lipgloss styles
func NewFormatter(enabled bool) *Formatter {
	bold := lipgloss.NewStyle().Bold(true)
	code := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &Formatter{
		Enabled: enabled,
		Bold:    func(s string) string { return bold.Render(s) },
		Code:    func(s string) string { return code.Render(s) },
	}
}

// Format returns text unchanged when the formatter is disabled
func (f *Formatter) Format(text string) string {
	if !f.Enabled {
		return text
	}

	lines := strings.Split(text, "\n")
	inCode := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), fence) {
			inCode = !inCode
			continue
		}
		if inCode {
			lines[i] = f.Code(line)
			continue
		}
		lines[i] = boldPattern.ReplaceAllStringFunc(line, func(m string) string {
			return f.Bold(m[2 : len(m)-2])
		})
	}
	return strings.Join(lines, "\n")
}
