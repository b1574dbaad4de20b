// Package repository defines where ideas are persisted.
package repository

import (
	"context"

	"github.com/abatilo/ideas/internal/idea"
)

// Repository is a durable home for ideas. Implementations return
// errors.IdeaNotFoundError when an ID is unknown.
type Repository interface {
	List(ctx context.Context) ([]idea.Idea, error)
	Get(ctx context.Context, id string) (idea.Idea, error)
	Create(ctx context.Context, i idea.Idea) error
	Update(ctx context.Context, i idea.Idea) error
	UpdateStatus(ctx context.Context, id string, status idea.Status) error
	Delete(ctx context.Context, id string) error
}
