//nolint:testpackage // Tests require internal access for thorough testing
package idea

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"in-progress", StatusInProgress, false},
		{"done", StatusDone, false},
		{"DONE", StatusDone, false},
		{" pendiente ", StatusPending, false},
		{"en-progreso", StatusInProgress, false},
		{"completado", StatusDone, false},
		{"archived", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				var statusErr ideaerrors.InvalidStatusError
				require.ErrorAs(t, err, &statusErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"high", PriorityHigh, false},
		{"Medium", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"alta", PriorityHigh, false},
		{"media", PriorityMedium, false},
		{"baja", PriorityLow, false},
		{"urgent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				var priorityErr ideaerrors.InvalidPriorityError
				require.ErrorAs(t, err, &priorityErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRanks(t *testing.T) {
	if PriorityRank(PriorityHigh) <= PriorityRank(PriorityMedium) {
		t.Error("High should outrank Medium")
	}
	if PriorityRank(PriorityMedium) <= PriorityRank(PriorityLow) {
		t.Error("Medium should outrank Low")
	}
	if StatusRank(StatusPending) >= StatusRank(StatusInProgress) {
		t.Error("Pending should sort before In-progress")
	}
	if StatusRank(StatusInProgress) >= StatusRank(StatusDone) {
		t.Error("In-progress should sort before Done")
	}
	assert.Zero(t, PriorityRank("urgent"))
	assert.Zero(t, StatusRank("archived"))
}

func TestNextStatusAndPriority(t *testing.T) {
	assert.Equal(t, StatusInProgress, NextStatus(StatusPending))
	assert.Equal(t, StatusDone, NextStatus(StatusInProgress))
	assert.Equal(t, StatusPending, NextStatus(StatusDone))

	assert.Equal(t, PriorityMedium, NextPriority(PriorityHigh))
	assert.Equal(t, PriorityLow, NextPriority(PriorityMedium))
	assert.Equal(t, PriorityHigh, NextPriority(PriorityLow))
}

func TestUnmarshalIdea(t *testing.T) {
	data := []byte(`{
		"_id": "682fafd346c4ac1b0fccf37f",
		"id": "5p6q7r8s",
		"title": "Sistema de autenticación biométrica",
		"description": "Reconocimiento facial y huella digital",
		"status": "completado",
		"created_at": "2025-05-20T09:45:33.000Z"
	}`)

	var got Idea
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "5p6q7r8s", got.ID)
	assert.Equal(t, "682fafd346c4ac1b0fccf37f", got.RemoteID)
	assert.Equal(t, StatusDone, got.Status)
	assert.Equal(t, PriorityMedium, got.Priority, "absent priority defaults to medium")
	assert.True(t, got.CreatedAt.Equal(time.Date(2025, 5, 20, 9, 45, 33, 0, time.UTC)))
}

func TestUnmarshalIdeaRejectsUnknownEnum(t *testing.T) {
	var got Idea
	err := json.Unmarshal([]byte(`{"id":"x","title":"t","description":"d","priority":"urgent"}`), &got)
	require.Error(t, err)

	var priorityErr ideaerrors.InvalidPriorityError
	assert.True(t, errors.As(err, &priorityErr))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"", time.Time{}, false},
		{"   ", time.Time{}, false},
		{"2025-05-22T18:14:27.613Z", time.Date(2025, 5, 22, 18, 14, 27, 613000000, time.UTC), false},
		{"2025-05-22T18:14:27Z", time.Date(2025, 5, 22, 18, 14, 27, 0, time.UTC), false},
		{"2025-05-22T20:14:27+02:00", time.Date(2025, 5, 22, 18, 14, 27, 0, time.UTC), false},
		{"2025-05-22T18:14:27.613000", time.Date(2025, 5, 22, 18, 14, 27, 613000000, time.UTC), false},
		{"2025-05-22T18:14:27", time.Date(2025, 5, 22, 18, 14, 27, 0, time.UTC), false},
		{"2025-05-22 18:14:27.5", time.Date(2025, 5, 22, 18, 14, 27, 500000000, time.UTC), false},
		{"2025-05-22", time.Date(2025, 5, 22, 0, 0, 0, 0, time.UTC), false},
		{"yesterday", time.Time{}, true},
		{"22/05/2025", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			if tt.wantErr {
				var tsErr ideaerrors.InvalidTimestampError
				require.ErrorAs(t, err, &tsErr)
				assert.True(t, got.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestUnmarshalIdeaCreatedAt(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		want    time.Time
		wantErr bool
	}{
		{"absent", ``, time.Time{}, false},
		{"null", `,"created_at":null`, time.Time{}, false},
		{"empty", `,"created_at":""`, time.Time{}, false},
		{"rfc3339", `,"created_at":"2025-05-20T09:45:33Z"`, time.Date(2025, 5, 20, 9, 45, 33, 0, time.UTC), false},
		{"naive microseconds", `,"created_at":"2025-05-22T18:14:27.613000"`, time.Date(2025, 5, 22, 18, 14, 27, 613000000, time.UTC), false},
		{"date only", `,"created_at":"2025-05-21"`, time.Date(2025, 5, 21, 0, 0, 0, 0, time.UTC), false},
		{"unknown layout", `,"created_at":"last week"`, time.Time{}, true},
		{"number", `,"created_at":1716400000`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"id":"a","title":"t","description":"d","priority":"alta"` + tt.field + `}`)

			var got Idea
			err := json.Unmarshal(data, &got)
			if tt.wantErr {
				var tsErr ideaerrors.InvalidTimestampError
				require.ErrorAs(t, err, &tsErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, "a", got.ID, "the rest of the idea is decoded")
			assert.Equal(t, PriorityHigh, got.Priority)
			assert.Equal(t, StatusPending, got.Status)
			assert.True(t, got.CreatedAt.Equal(tt.want), "got %v, want %v", got.CreatedAt, tt.want)
		})
	}
}

func TestMarshalIdeaOmitsZeroCreatedAt(t *testing.T) {
	data, err := json.Marshal(Idea{ID: "a", Title: "t", Description: "d", Status: StatusPending, Priority: PriorityLow})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "created_at")
	assert.NotContains(t, string(data), "_id")
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr error
	}{
		{
			name: "defaults status and priority",
			in:   Input{Title: " Copilot ", Description: "Nueva funcionalidad"},
		},
		{
			name:    "blank title",
			in:      Input{Title: "   ", Description: "d"},
			wantErr: ideaerrors.EmptyFieldError{Field: "title"},
		},
		{
			name:    "blank description",
			in:      Input{Title: "t", Description: "\n"},
			wantErr: ideaerrors.EmptyFieldError{Field: "description"},
		},
		{
			name:    "unknown priority",
			in:      Input{Title: "t", Description: "d", Priority: "urgent"},
			wantErr: ideaerrors.InvalidPriorityError{Value: "urgent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Copilot", tt.in.Title)
			assert.Equal(t, StatusPending, tt.in.Status)
			assert.Equal(t, PriorityMedium, tt.in.Priority)
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id == "" {
			t.Fatal("NewID returned empty string")
		}
		if seen[id] {
			t.Fatalf("NewID returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestIndexOf(t *testing.T) {
	ideas := []Idea{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, IndexOf(ideas, "b"))
	assert.Equal(t, -1, IndexOf(ideas, "c"))
}
