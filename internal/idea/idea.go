package idea

import (
	"encoding/json"
	"strings"
	"time"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
)

// Status represents how far along an idea is.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Priority represents the importance level of an idea.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Values emitted by older deployments of the ideas API.
//
//nolint:gochecknoglobals // lookup tables
var (
	statusAliases = map[string]Status{
		"pendiente":   StatusPending,
		"en-progreso": StatusInProgress,
		"completado":  StatusDone,
	}
	priorityAliases = map[string]Priority{
		"alta":  PriorityHigh,
		"media": PriorityMedium,
		"baja":  PriorityLow,
	}
)

// Statuses returns every status in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusDone}
}

// Priorities returns every priority from most to least important.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// StatusRank returns the sort rank for a status (pending=1, in-progress=2, done=3).
func StatusRank(s Status) int {
	switch s {
	case StatusPending:
		return 1
	case StatusInProgress:
		return 2
	case StatusDone:
		return 3
	default:
		return 0
	}
}

// PriorityRank returns the sort rank for a priority (high=3, medium=2, low=1).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// IsValidStatus checks if a status is one of the known values.
func IsValidStatus(s Status) bool {
	return StatusRank(s) != 0
}

// IsValidPriority checks if a priority is one of the known values.
func IsValidPriority(p Priority) bool {
	return PriorityRank(p) != 0
}

// ParseStatus accepts canonical values and legacy aliases, case-insensitively.
func ParseStatus(s string) (Status, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if st := Status(v); IsValidStatus(st) {
		return st, nil
	}
	if st, ok := statusAliases[v]; ok {
		return st, nil
	}
	return "", ideaerrors.InvalidStatusError{Value: s}
}

// ParsePriority accepts canonical values and legacy aliases, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if p := Priority(v); IsValidPriority(p) {
		return p, nil
	}
	if p, ok := priorityAliases[v]; ok {
		return p, nil
	}
	return "", ideaerrors.InvalidPriorityError{Value: s}
}

// NextStatus returns the status after s, wrapping from done back to pending.
func NextStatus(s Status) Status {
	all := Statuses()
	return all[StatusRank(s)%len(all)]
}

// NextPriority returns the priority after p, wrapping from low back to high.
func NextPriority(p Priority) Priority {
	all := Priorities()
	for i, v := range all {
		if v == p {
			return all[(i+1)%len(all)]
		}
	}
	return PriorityHigh
}

// UnmarshalText parses a status; an empty value means pending.
func (s *Status) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*s = StatusPending
		return nil
	}
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalText parses a priority; an empty value means medium.
func (p *Priority) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*p = PriorityMedium
		return nil
	}
	v, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Idea is a tracked note.
type Idea struct {
	ID          string    `json:"id"`
	RemoteID    string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// UnmarshalJSON decodes an idea, defaulting absent status and priority.
// An unreadable created_at leaves CreatedAt zero and is reported as
// InvalidTimestampError once every other field is decoded, so callers may
// keep the idea.
func (i *Idea) UnmarshalJSON(data []byte) error {
	type wire Idea
	w := struct {
		wire
		CreatedAt json.RawMessage `json:"created_at"`
	}{wire: wire{Status: StatusPending, Priority: PriorityMedium}}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*i = Idea(w.wire)

	created, err := decodeTime(w.CreatedAt)
	i.CreatedAt = created
	return err
}

// timeLayouts are the created_at shapes accepted from the API and from disk.
//
//nolint:gochecknoglobals // read-only lookup table
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// ParseTime parses a creation timestamp. A blank value is the zero time and
// timestamps without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ideaerrors.InvalidTimestampError{Value: s}
}

func decodeTime(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, ideaerrors.InvalidTimestampError{Value: string(raw)}
	}
	return ParseTime(s)
}

// Input holds the user-supplied fields of a new idea.
type Input struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
}

// Validate checks the fields a form must fill before submission.
// Missing status and priority are defaulted rather than rejected.
func (in *Input) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return ideaerrors.EmptyFieldError{Field: "title"}
	}
	if in.Description == "" {
		return ideaerrors.EmptyFieldError{Field: "description"}
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !IsValidStatus(in.Status) {
		return ideaerrors.InvalidStatusError{Value: string(in.Status)}
	}
	if !IsValidPriority(in.Priority) {
		return ideaerrors.InvalidPriorityError{Value: string(in.Priority)}
	}
	return nil
}

// IndexOf returns the position of the idea with the given ID, or -1.
func IndexOf(ideas []Idea, id string) int {
	for i := range ideas {
		if ideas[i].ID == id {
			return i
		}
	}
	return -1
}
