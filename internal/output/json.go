package output

import (
	"encoding/json"
	"time"

	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ideaJSON is the JSON representation of an idea.
type ideaJSON struct {
	ID          string  `json:"id"`
	RemoteID    string  `json:"_id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

func toIdeaJSON(i idea.Idea) ideaJSON {
	ij := ideaJSON{
		ID:          i.ID,
		RemoteID:    i.RemoteID,
		Title:       i.Title,
		Description: i.Description,
		Status:      string(i.Status),
		Priority:    string(i.Priority),
	}
	if !i.CreatedAt.IsZero() {
		s := i.CreatedAt.UTC().Format(time.RFC3339)
		ij.CreatedAt = &s
	}
	return ij
}

// FormatIdea formats a single idea as JSON.
func (f *JSONFormatter) FormatIdea(i idea.Idea) string {
	return marshalJSON(toIdeaJSON(i))
}

// FormatIdeaList formats a list of ideas as JSON.
func (f *JSONFormatter) FormatIdeaList(ideas []idea.Idea) string {
	jsonIdeas := make([]ideaJSON, len(ideas))
	for n, i := range ideas {
		jsonIdeas[n] = toIdeaJSON(i)
	}
	return marshalJSON(jsonIdeas)
}

// resultJSON is the JSON representation of a mutation result.
type resultJSON struct {
	Action string   `json:"action"`
	Idea   ideaJSON `json:"idea"`
	Saved  bool     `json:"saved"`
	Error  string   `json:"error,omitempty"`
}

// FormatResult formats a mutation result as JSON.
func (f *JSONFormatter) FormatResult(action string, res store.Result) string {
	rj := resultJSON{Action: action, Idea: toIdeaJSON(res.Idea), Saved: res.Saved}
	if res.Err != nil {
		rj.Error = res.Err.Error()
	}
	return marshalJSON(rj)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
