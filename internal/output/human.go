package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
)

const timeLayout = "2006-01-02 15:04"

//nolint:gochecknoglobals // shared styles
var (
	statusStyles = map[idea.Status]lipgloss.Style{
		idea.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		idea.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		idea.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
	priorityStyles = map[idea.Priority]lipgloss.Style{
		idea.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		idea.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		idea.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
	titleStyle   = lipgloss.NewStyle().Bold(true)
	unsavedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatIdea formats a single idea for display.
func (f *HumanFormatter) FormatIdea(i idea.Idea) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[%s] %s\n", i.ID, titleStyle.Render(i.Title))
	fmt.Fprintf(&sb, "  Status:   %s\n", StatusLabel(i.Status))
	fmt.Fprintf(&sb, "  Priority: %s\n", PriorityLabel(i.Priority))
	if !i.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "  Created:  %s\n", i.CreatedAt.Local().Format(timeLayout))
	}
	if i.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(i.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatIdeaList formats a list of ideas for display.
func (f *HumanFormatter) FormatIdeaList(ideas []idea.Idea) string {
	if len(ideas) == 0 {
		return "No ideas found.\n"
	}

	var sb strings.Builder
	for _, i := range ideas {
		sb.WriteString(Line(i))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatResult reports a mutation, noting when it was not saved.
func (f *HumanFormatter) FormatResult(action string, res store.Result) string {
	line := fmt.Sprintf("%s [%s] %s", action, res.Idea.ID, res.Idea.Title)
	if !res.Saved {
		line += " " + unsavedStyle.Render(NotSaved(res.Err))
	}
	return line + "\n"
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// Line formats an idea as a compact one-liner.
func Line(i idea.Idea) string {
	return fmt.Sprintf("%s %s [%s] %s", StatusIcon(i.Status), PriorityMark(i.Priority), i.ID, i.Title)
}

// NotSaved is the marker shown next to ideas whose last change failed.
func NotSaved(err error) string {
	if err == nil {
		return "(not saved)"
	}
	return fmt.Sprintf("(not saved: %s)", err)
}

// StatusIcon returns the checkbox shown for a status.
func StatusIcon(s idea.Status) string {
	var icon string
	switch s {
	case idea.StatusPending:
		icon = "[ ]"
	case idea.StatusInProgress:
		icon = "[*]"
	case idea.StatusDone:
		icon = "[X]"
	default:
		icon = "[?]"
	}
	return statusStyles[s].Render(icon)
}

// PriorityMark returns the short priority marker.
func PriorityMark(p idea.Priority) string {
	var mark string
	switch p {
	case idea.PriorityHigh:
		mark = "P1"
	case idea.PriorityMedium:
		mark = "P2"
	case idea.PriorityLow:
		mark = "P3"
	default:
		mark = "P?"
	}
	return priorityStyles[p].Render(mark)
}

// StatusLabel returns the coloured status name.
func StatusLabel(s idea.Status) string {
	return statusStyles[s].Render(string(s))
}

// PriorityLabel returns the coloured priority name.
func PriorityLabel(p idea.Priority) string {
	return priorityStyles[p].Render(string(p))
}
