package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/ideas/internal/output"
	"github.com/abatilo/ideas/internal/view"
)

//nolint:gochecknoglobals // shared styles
var (
	titleBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	dangerBarStyle = titleBarStyle.Background(lipgloss.Color("160"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	unsavedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true)
)

// View renders the UI based on the current mode.
func (m Model) View() string {
	var sb strings.Builder

	switch m.mode {
	case NormalMode:
		sb.WriteString(titleBarStyle.Render("Ideas"))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderList())
		sb.WriteString("\n")
		sb.WriteString(faintStyle.Render(m.summary()))

	case AddMode, EditMode:
		label := "New Idea"
		if m.mode == EditMode {
			label = "Edit Idea"
		}
		sb.WriteString(titleBarStyle.Render(label))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(dangerBarStyle.Render("Delete Idea"))
		sb.WriteString("\n\n")
		sb.WriteString("Are you sure you want to delete this idea?\n\n")
		fmt.Fprintf(&sb, "Title: %s\n", m.target.Title)
		fmt.Fprintf(&sb, "Description: %s\n\n", m.target.Description)
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))

	case SearchMode:
		sb.WriteString(titleBarStyle.Render("Search Ideas"))
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
		sb.WriteString(faintStyle.Render("enter search • esc clear"))
	}

	if m.err != nil {
		sb.WriteString("\n\n")
		sb.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	} else if m.status != "" && m.mode == NormalMode {
		sb.WriteString("\n\n")
		sb.WriteString(m.status)
	}

	sb.WriteString("\n\n")
	switch m.mode {
	case AddMode, EditMode:
		sb.WriteString(m.help.View(m.formKeys))
	case NormalMode:
		sb.WriteString(m.help.View(m.keys))
	case DeleteConfirmMode, SearchMode:
	}
	sb.WriteString("\n")

	return sb.String()
}

func (m Model) renderList() string {
	if m.loading {
		return m.spinner.View() + " Loading ideas...\n"
	}

	items := m.visible()
	if len(items) == 0 {
		if m.search != "" {
			return "No ideas match your search.\n"
		}
		return "No ideas yet. Press a to add one.\n"
	}

	var sb strings.Builder
	for n, i := range items {
		line := output.Line(i)
		if m.ctrl.Unsaved(i.ID) {
			line += " " + unsavedStyle.Render(output.NotSaved(nil))
		}
		if n == m.cursor {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// summary describes what the list is showing.
func (m Model) summary() string {
	parts := []string{fmt.Sprintf("%d of %d ideas", len(m.visible()), len(m.ctrl.Ideas()))}
	if m.search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.search))
	}
	if m.sortKey != view.SortNone {
		parts = append(parts, "sorted by "+string(m.sortKey))
	}
	if m.inflight > 0 && !m.loading {
		parts = append(parts, m.spinner.View()+" saving")
	}
	return strings.Join(parts, " | ")
}

// renderForm renders the input form for adding or editing ideas.
func (m Model) renderForm() string {
	var sb strings.Builder

	sb.WriteString("Title:\n")
	sb.WriteString(m.inputs[fieldTitle].View())
	sb.WriteString("\n\n")

	sb.WriteString("Description:\n")
	sb.WriteString(m.inputs[fieldDescription].View())
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "Status:   %s\n", output.StatusLabel(m.formStatus))
	fmt.Fprintf(&sb, "Priority: %s\n", output.PriorityLabel(m.formPrio))

	return sb.String()
}
