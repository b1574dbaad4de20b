// Package tui is the interactive terminal front end.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
	"github.com/abatilo/ideas/internal/view"
)

// Mode is the current input mode.
type Mode int

const (
	NormalMode Mode = iota
	AddMode
	EditMode
	DeleteConfirmMode
	SearchMode
)

const (
	fieldTitle = iota
	fieldDescription
	fieldCount
)

// loadedMsg reports that the controller finished loading.
type loadedMsg struct{}

// resultMsg carries the outcome of a dispatched mutation.
type resultMsg struct {
	action string
	res    store.Result
	err    error
}

// Model is the bubbletea model over a view.Controller.
type Model struct {
	ctx    context.Context //nolint:containedctx // commands outlive Update calls
	ctrl   *view.Controller
	logger *zap.Logger

	keys     KeyMap
	formKeys formKeys
	help     help.Model
	spinner  spinner.Model

	mode     Mode
	cursor   int
	search   string
	sortKey  view.SortKey
	inflight int
	loading  bool

	inputs      []textinput.Model
	activeInput int
	formStatus  idea.Status
	formPrio    idea.Priority
	target      idea.Idea // idea being edited or deleted
	searchInput textinput.Model

	status string
	err    error
	width  int
	height int
}

// NewModel creates a Model. Loading starts in Init.
func NewModel(ctx context.Context, ctrl *view.Controller, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = 50

	desc := textinput.New()
	desc.Placeholder = "Description"
	desc.CharLimit = 500
	desc.Width = 50

	search := textinput.New()
	search.Placeholder = "Search title or description"
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:         ctx,
		ctrl:        ctrl,
		logger:      logger,
		keys:        DefaultKeyMap(),
		formKeys:    defaultFormKeys(),
		help:        help.New(),
		spinner:     sp,
		mode:        NormalMode,
		sortKey:     view.SortNone,
		loading:     true,
		inputs:      []textinput.Model{title, desc},
		searchInput: search,
	}
}

// Init starts the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Run starts the full-screen program and blocks until it exits.
func Run(ctx context.Context, ctrl *view.Controller, logger *zap.Logger) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// visible returns the current projection.
func (m Model) visible() []idea.Idea {
	return m.ctrl.Projection(m.search, m.sortKey)
}

// selected returns the idea under the cursor.
func (m Model) selected() (idea.Idea, bool) {
	items := m.visible()
	if m.cursor < 0 || m.cursor >= len(items) {
		return idea.Idea{}, false
	}
	return items[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// resetForm clears the form and focuses the title.
func (m *Model) resetForm() {
	for n := range m.inputs {
		m.inputs[n].Reset()
		m.inputs[n].Blur()
	}
	m.activeInput = fieldTitle
	m.inputs[fieldTitle].Focus()
	m.formStatus = idea.StatusPending
	m.formPrio = idea.PriorityMedium
	m.err = nil
}

func (m *Model) focusInput(n int) {
	m.inputs[m.activeInput].Blur()
	m.activeInput = (n + fieldCount) % fieldCount
	m.inputs[m.activeInput].Focus()
}
