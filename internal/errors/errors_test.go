//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"testing"
)

func TestIdeaNotFoundError(t *testing.T) {
	err := IdeaNotFoundError{ID: "ce1aeb8d"}
	want := "idea not found: ce1aeb8d"
	if got := err.Error(); got != want {
		t.Errorf("IdeaNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestEnumErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "status",
			err:  InvalidStatusError{Value: "archived"},
			want: "invalid status: archived (valid: pending, in-progress, done)",
		},
		{
			name: "priority",
			err:  InvalidPriorityError{Value: "urgent"},
			want: "invalid priority: urgent (valid: high, medium, low)",
		},
		{
			name: "sort key",
			err:  InvalidSortKeyError{Value: "title"},
			want: "invalid sort key: title (valid: priority, status, date, none)",
		},
		{
			name: "backend",
			err:  UnknownBackendError{Value: "s3"},
			want: "unknown backend: s3 (valid: api, file, memory)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError{Method: "PUT", Path: "/ideas/abc", Code: 500}
	want := "PUT /ideas/abc: unexpected status 500"
	if got := err.Error(); got != want {
		t.Errorf("HTTPStatusError.Error() = %q, want %q", got, want)
	}
}

func TestNotConfiguredError(t *testing.T) {
	err := NotConfiguredError{Settings: []string{"IDEAS_USERNAME", "IDEAS_PASSWORD"}}
	want := "not configured: set IDEAS_USERNAME, IDEAS_PASSWORD"
	if got := err.Error(); got != want {
		t.Errorf("NotConfiguredError.Error() = %q, want %q", got, want)
	}
}

func TestEmptyFieldError(t *testing.T) {
	err := EmptyFieldError{Field: "title"}
	if got := err.Error(); got != "title is required" {
		t.Errorf("EmptyFieldError.Error() = %q", got)
	}
}
