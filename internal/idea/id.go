package idea

import "github.com/google/uuid"

// NewID returns a random identifier for a new idea.
func NewID() string {
	return uuid.NewString()
}
