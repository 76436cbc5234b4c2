package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clippy/config/validation"
)

// Form field indices
const (
	FormFieldModel = iota
	FormFieldAPIKey
	FormFieldCount
)

var (
	formLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(10)
	formFocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Width(10)
	formErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	formHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

var (
	formLabels = []string{"Model", "API key"}
	formHints  = []string{
		"gpt-*, gemini-* and claude-* pick their provider; others use openai",
		"stored encrypted in the config file",
	}
)

// FormInputs creates the add-model inputs with the first one focused
func FormInputs() []textinput.Model {
	inputs := make([]textinput.Model, FormFieldCount)

	inputs[FormFieldModel] = textinput.New()
	inputs[FormFieldModel].Placeholder = "gpt-4o"
	inputs[FormFieldModel].CharLimit = 100
	inputs[FormFieldModel].Width = 40
	inputs[FormFieldModel].Prompt = ""

	inputs[FormFieldAPIKey] = textinput.New()
	inputs[FormFieldAPIKey].Placeholder = "sk-..."
	inputs[FormFieldAPIKey].CharLimit = 256
	inputs[FormFieldAPIKey].Width = 40
	inputs[FormFieldAPIKey].EchoMode = textinput.EchoPassword
	inputs[FormFieldAPIKey].EchoCharacter = '•'
	inputs[FormFieldAPIKey].Prompt = ""

	inputs[FormFieldModel].Focus()
	return inputs
}

func (m *Model) initAddForm() {
	m.formInputs = FormInputs()
	m.formFocus = FormFieldModel
	m.viewState = ViewAdd
}

func (m Model) handleFormViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.viewState = ViewMain
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.formFocus = focusField(m.formInputs, m.formFocus, 1)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.formFocus = focusField(m.formInputs, m.formFocus, -1)
		return m, nil

	case msg.Type == tea.KeyEnter:
		name := strings.TrimSpace(m.formInputs[FormFieldModel].Value())
		apiKey := strings.TrimSpace(m.formInputs[FormFieldAPIKey].Value())
		// reuse the command-line parser so both paths accept the same input
		name, apiKey, err := validation.NewValidator().ParseModelAPI(name + ":" + apiKey)
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.errorMsg = ""
		return m, addModel(m.store, name, apiKey)
	}

	return m.updateFormInputs(msg)
}

func (m Model) updateFormInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.formInputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func focusField(inputs []textinput.Model, current, step int) int {
	inputs[current].Blur()
	next := (current + step + len(inputs)) % len(inputs)
	inputs[next].Focus()
	return next
}

// RenderForm renders the add-model form
func RenderForm(inputs []textinput.Model, focusIndex int, errorMsg string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Add model"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	for i, input := range inputs {
		if i == focusIndex {
			b.WriteString(formFocusedStyle.Render(formLabels[i]))
		} else {
			b.WriteString(formLabelStyle.Render(formLabels[i]))
		}
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")
		if i == focusIndex {
			b.WriteString(formLabelStyle.Render(""))
			b.WriteString(" ")
			b.WriteString(formHintStyle.Render(formHints[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if errorMsg != "" {
		b.WriteString(formErrorStyle.Render("✗ " + errorMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Tab: next │ Shift+Tab: previous │ Enter: save │ Esc: cancel"))
	return b.String()
}
