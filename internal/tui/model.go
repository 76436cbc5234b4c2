// Package tui provides an interactive picker for configured models
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clippy/config/models"
	"clippy/internal/providers"
)

// Store is the part of the config manager the picker needs
type Store interface {
	Load() (*models.File, error)
	SetModel(name, apiKey, providerType string, makeDefault bool) (bool, error)
	SetDefault(name string) error
	RemoveModel(name string) (bool, error)
}

// ViewState represents the current view state
type ViewState int

const (
	ViewMain   ViewState = iota // Model list
	ViewAdd                     // Add model form
	ViewDelete                  // Removal confirmation
	ViewHelp                    // Help panel
)

// Row is one configured model as shown in the list
type Row struct {
	Name     string
	Provider string
	APIKey   string
}

// Model is the picker state
type Model struct {
	store        Store
	watcher      *Watcher
	keys         KeyMap
	rows         []Row
	defaultModel string
	cursor       int
	viewState    ViewState

	formInputs []textinput.Model
	formFocus  int

	message  string
	errorMsg string

	width  int
	height int
}

// NewModel creates a picker backed by store
func NewModel(store Store) Model {
	return Model{
		store:     store,
		keys:      DefaultKeyMap(),
		viewState: ViewMain,
		width:     80,
		height:    24,
	}
}

// WithWatcher reloads the list whenever w reports a change
func (m Model) WithWatcher(w *Watcher) Model {
	m.watcher = w
	return m
}

// Init loads the configuration
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return tea.Batch(loadModels(m.store), m.watcher.Wait())
	}
	return loadModels(m.store)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ConfigChangedMsg:
		cmds := []tea.Cmd{loadModels(m.store)}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.Wait())
		}
		return m, tea.Batch(cmds...)

	case ModelsLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.setFile(msg.File)
		return m, nil

	case DefaultChangedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.message = "Default model set to '" + msg.Name + "'"
		return m, loadModels(m.store)

	case ModelAddedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.viewState = ViewAdd
			return m, nil
		}
		m.viewState = ViewMain
		m.message = "Model '" + msg.Name + "' configured"
		if msg.BecameDefault {
			m.message += " and set as default"
		}
		return m, loadModels(m.store)

	case ModelRemovedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.message = "Model '" + msg.Name + "' removed"
		if msg.WasDefault {
			m.message += "; no default model is set now"
		}
		return m, loadModels(m.store)
	}

	if m.viewState == ViewAdd {
		return m.updateFormInputs(msg)
	}
	return m, nil
}

func (m *Model) setFile(file *models.File) {
	m.rows = m.rows[:0]
	for _, name := range file.ModelNames() {
		mc := file.Models[name]
		provider := mc.ProviderType
		if provider == "" {
			provider, _ = providers.ResolveKey(name)
		}
		m.rows = append(m.rows, Row{Name: name, Provider: provider, APIKey: mc.APIKey})
	}
	m.defaultModel = file.DefaultModel
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewState {
	case ViewMain:
		return m.handleMainViewKeys(msg)
	case ViewAdd:
		return m.handleFormViewKeys(msg)
	case ViewDelete:
		return m.handleDeleteViewKeys(msg)
	case ViewHelp:
		if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.viewState = ViewMain
		return m, nil
	}
	return m, nil
}

func (m Model) handleMainViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clearStatus()

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.clearStatus()

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.clearStatus()

	case key.Matches(msg, m.keys.Bottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		m.clearStatus()

	case key.Matches(msg, m.keys.Default):
		if row, ok := m.current(); ok {
			m.clearStatus()
			return m, setDefault(m.store, row.Name)
		}

	case key.Matches(msg, m.keys.Add):
		m.clearStatus()
		m.initAddForm()

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.current(); ok {
			m.clearStatus()
			m.viewState = ViewDelete
		}

	case key.Matches(msg, m.keys.Help):
		m.viewState = ViewHelp
	}
	return m, nil
}

func (m Model) handleDeleteViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.viewState = ViewMain
		if row, ok := m.current(); ok {
			return m, removeModel(m.store, row.Name)
		}
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	default:
		m.viewState = ViewMain
	}
	return m, nil
}

func (m *Model) clearStatus() {
	m.message = ""
	m.errorMsg = ""
}

func (m Model) current() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// View renders the current view
func (m Model) View() string {
	switch m.viewState {
	case ViewAdd:
		return RenderForm(m.formInputs, m.formFocus, m.errorMsg)
	case ViewDelete:
		return m.RenderDeleteConfirm()
	case ViewHelp:
		return m.RenderHelpView()
	default:
		return m.RenderMainView()
	}
}

func loadModels(store Store) tea.Cmd {
	return func() tea.Msg {
		file, err := store.Load()
		return ModelsLoadedMsg{File: file, Err: err}
	}
}

func setDefault(store Store, name string) tea.Cmd {
	return func() tea.Msg {
		return DefaultChangedMsg{Name: name, Err: store.SetDefault(name)}
	}
}

func removeModel(store Store, name string) tea.Cmd {
	return func() tea.Msg {
		wasDefault, err := store.RemoveModel(name)
		return ModelRemovedMsg{Name: name, WasDefault: wasDefault, Err: err}
	}
}

func addModel(store Store, name, apiKey string) tea.Cmd {
	return func() tea.Msg {
		provider, _ := providers.ResolveKey(name)
		became, err := store.SetModel(name, apiKey, provider, false)
		return ModelAddedMsg{Name: name, BecameDefault: became, Err: err}
	}
}
