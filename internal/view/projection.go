// Package view owns the session's canonical idea collection and derives
// what gets displayed from it.
package view

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
)

// SortKey selects the projection order.
type SortKey string

const (
	SortNone     SortKey = "none"
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
	SortDate     SortKey = "date"
)

// SortKeys returns every sort key in the order the TUI cycles through them.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortPriority, SortStatus, SortDate}
}

// ParseSortKey parses a sort key. An empty string means SortNone.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return SortNone, nil
	}
	if !slices.Contains(SortKeys(), key) {
		return "", ideaerrors.InvalidSortKeyError{Value: s}
	}
	return key, nil
}

// NextSortKey returns the key after k, wrapping around.
func NextSortKey(k SortKey) SortKey {
	keys := SortKeys()
	return keys[(slices.Index(keys, k)+1)%len(keys)]
}

// Project filters items by search and orders them by key. It never
// modifies items.
func Project(items []idea.Idea, search string, key SortKey) []idea.Idea {
	out := Filter(items, search)

	switch key {
	case SortPriority:
		slices.SortStableFunc(out, func(a, b idea.Idea) int {
			return idea.PriorityRank(b.Priority) - idea.PriorityRank(a.Priority)
		})
	case SortStatus:
		slices.SortStableFunc(out, func(a, b idea.Idea) int {
			return idea.StatusRank(a.Status) - idea.StatusRank(b.Status)
		})
	case SortDate:
		slices.SortStableFunc(out, func(a, b idea.Idea) int {
			return sortTime(b.CreatedAt).Compare(sortTime(a.CreatedAt))
		})
	case SortNone:
	}

	return out
}

// Filter returns a copy of the items whose title or description contains
// search, ignoring case. A blank search matches everything; otherwise the
// term is matched as typed, whitespace included.
func Filter(items []idea.Idea, search string) []idea.Idea {
	if strings.TrimSpace(search) == "" {
		return slices.Clone(items)
	}

	fold := cases.Fold()
	term := fold.String(search)
	out := make([]idea.Idea, 0, len(items))
	for _, i := range items {
		if strings.Contains(fold.String(i.Title), term) ||
			strings.Contains(fold.String(i.Description), term) {
			out = append(out, i)
		}
	}
	return out
}

// sortTime treats undated ideas as created at the Unix epoch.
func sortTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}
