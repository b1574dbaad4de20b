package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
	"github.com/abatilo/ideas/internal/view"
)

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		ctrl.Load(ctx)
		return loadedMsg{}
	}
}

// dispatch runs a controller call in the background. The spinner is
// restarted when nothing else was in flight.
func (m *Model) dispatch(action string, call func() (store.Result, error)) tea.Cmd {
	m.inflight++
	cmd := func() tea.Msg {
		res, err := call()
		return resultMsg{action: action, res: res, err: err}
	}
	if m.inflight == 1 && !m.loading {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.loading = false
		m.clampCursor()
		return m, nil

	case resultMsg:
		m.inflight--
		m.handleResult(msg)
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case NormalMode:
			return m.updateNormal(msg)
		case AddMode, EditMode:
			return m.updateForm(msg)
		case SearchMode:
			return m.updateSearch(msg)
		case DeleteConfirmMode:
			return m.updateDeleteConfirm(msg)
		}
	}

	// cursor blink and other input messages
	var cmd tea.Cmd
	switch m.mode {
	case AddMode, EditMode:
		m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
	case SearchMode:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case NormalMode, DeleteConfirmMode:
	}
	return m, cmd
}

func (m *Model) handleResult(msg resultMsg) {
	if msg.err != nil {
		m.logger.Debug("action failed", zap.String("action", msg.action), zap.Error(msg.err))
		m.err = msg.err
		m.status = ""
		return
	}
	m.err = nil
	m.status = msg.action + " " + msg.res.Idea.Title
	if !msg.res.Saved {
		m.status += " (not saved)"
	}
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Search):
		m.mode = SearchMode
		m.searchInput.SetValue(m.search)
		m.searchInput.CursorEnd()
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Sort):
		m.sortKey = view.NextSortKey(m.sortKey)
		m.cursor = 0

	case key.Matches(msg, m.keys.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case key.Matches(msg, m.keys.Add):
		m.mode = AddMode
		m.resetForm()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Edit):
		target, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = EditMode
		m.resetForm()
		m.target = target
		m.inputs[fieldTitle].SetValue(target.Title)
		m.inputs[fieldDescription].SetValue(target.Description)
		m.formStatus = target.Status
		m.formPrio = target.Priority
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Delete):
		target, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = DeleteConfirmMode
		m.target = target

	case key.Matches(msg, m.keys.Status):
		target, ok := m.selected()
		if !ok {
			return m, nil
		}
		ctx, ctrl := m.ctx, m.ctrl
		next := idea.NextStatus(target.Status)
		return m, m.dispatch("Status changed:", func() (store.Result, error) {
			return ctrl.ChangeStatus(ctx, target.ID, next)
		})

	case key.Matches(msg, m.keys.Priority):
		target, ok := m.selected()
		if !ok {
			return m, nil
		}
		ctx, ctrl := m.ctx, m.ctrl
		next := idea.NextPriority(target.Priority)
		return m, m.dispatch("Priority changed:", func() (store.Result, error) {
			return ctrl.ChangePriority(ctx, target.ID, next)
		})
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.mode = NormalMode
		m.err = nil
		return m, nil

	case key.Matches(msg, m.formKeys.Next):
		m.focusInput(m.activeInput + 1)
		return m, nil

	case key.Matches(msg, m.formKeys.Prev):
		m.focusInput(m.activeInput - 1)
		return m, nil

	case key.Matches(msg, m.formKeys.Status):
		m.formStatus = idea.NextStatus(m.formStatus)
		return m, nil

	case key.Matches(msg, m.formKeys.Priority):
		m.formPrio = idea.NextPriority(m.formPrio)
		return m, nil

	case key.Matches(msg, m.formKeys.Submit):
		if m.activeInput < fieldCount-1 {
			m.focusInput(m.activeInput + 1)
			return m, nil
		}
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.activeInput], cmd = m.inputs[m.activeInput].Update(msg)
	return m, cmd
}

// submitForm validates the form. Invalid input keeps the form open.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	in := idea.Input{
		Title:       m.inputs[fieldTitle].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Status:      m.formStatus,
		Priority:    m.formPrio,
	}
	if err := in.Validate(); err != nil {
		m.err = err
		return m, nil
	}

	ctx, ctrl := m.ctx, m.ctrl
	mode := m.mode
	m.mode = NormalMode
	m.err = nil

	if mode == AddMode {
		m.cursor = 0
		return m, m.dispatch("Created", func() (store.Result, error) {
			return ctrl.Create(ctx, in)
		})
	}

	edited := m.target
	edited.Title = in.Title
	edited.Description = in.Description
	edited.Status = in.Status
	edited.Priority = in.Priority
	return m, m.dispatch("Updated", func() (store.Result, error) {
		return ctrl.Edit(ctx, edited)
	})
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.search = ""
		m.searchInput.Blur()
		m.cursor = 0
		return m, nil

	case "enter":
		m.mode = NormalMode
		m.search = strings.TrimSpace(m.searchInput.Value())
		m.searchInput.Blur()
		m.cursor = 0
		m.logger.Debug("search", zap.String("term", m.search))
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = NormalMode
		ctx, ctrl, id := m.ctx, m.ctrl, m.target.ID
		return m, m.dispatch("Deleted", func() (store.Result, error) {
			return ctrl.Remove(ctx, id)
		})

	case "n", "N", "esc":
		m.mode = NormalMode
	}
	return m, nil
}

