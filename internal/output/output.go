// Package output renders ideas for the terminal or for scripts.
package output

import (
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatIdea(i idea.Idea) string
	FormatIdeaList(ideas []idea.Idea) string
	FormatResult(action string, res store.Result) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// New returns the JSON formatter when asJSON is set, the human one otherwise.
func New(asJSON bool) Formatter {
	if asJSON {
		return NewJSONFormatter()
	}
	return NewHumanFormatter()
}
