//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import (
	"fmt"
	"strings"
)

// IdeaNotFoundError indicates the idea ID doesn't match any known idea.
type IdeaNotFoundError struct {
	ID string
}

func (e IdeaNotFoundError) Error() string {
	return fmt.Sprintf("idea not found: %s", e.ID)
}

// InvalidStatusError indicates an unrecognized status value.
type InvalidStatusError struct {
	Value string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %s (valid: pending, in-progress, done)", e.Value)
}

// InvalidPriorityError indicates an unrecognized priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: high, medium, low)", e.Value)
}

// InvalidSortKeyError indicates an unrecognized sort key.
type InvalidSortKeyError struct {
	Value string
}

func (e InvalidSortKeyError) Error() string {
	return fmt.Sprintf("invalid sort key: %s (valid: priority, status, date, none)", e.Value)
}

// EmptyFieldError indicates a required text field was blank.
type EmptyFieldError struct {
	Field string
}

func (e EmptyFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// HTTPStatusError indicates the remote API answered with an unexpected status code.
type HTTPStatusError struct {
	Method string
	Path   string
	Code   int
}

func (e HTTPStatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// NotConfiguredError indicates a required setting is missing.
type NotConfiguredError struct {
	Settings []string
}

func (e NotConfiguredError) Error() string {
	return fmt.Sprintf("not configured: set %s", strings.Join(e.Settings, ", "))
}

// UnknownBackendError indicates the configured backend name is not supported.
type UnknownBackendError struct {
	Value string
}

func (e UnknownBackendError) Error() string {
	return fmt.Sprintf("unknown backend: %s (valid: api, file, memory)", e.Value)
}

// InvalidTimestampError indicates a creation timestamp in no recognized layout.
type InvalidTimestampError struct {
	Value string
}

func (e InvalidTimestampError) Error() string {
	return fmt.Sprintf("invalid timestamp: %s", e.Value)
}

// InvalidIDError indicates an idea ID that cannot name a stored idea.
type InvalidIDError struct {
	ID string
}

func (e InvalidIDError) Error() string {
	return fmt.Sprintf("invalid idea id: %q", e.ID)
}
