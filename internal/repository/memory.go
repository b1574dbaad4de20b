package repository

import (
	"context"
	"slices"
	"sync"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
)

// Memory is an in-process Repository. Newest ideas are listed first.
type Memory struct {
	mu    sync.Mutex
	ideas []idea.Idea
	fail  error
}

// NewMemory creates a Memory seeded with the given ideas.
func NewMemory(seed ...idea.Idea) *Memory {
	return &Memory{ideas: slices.Clone(seed)}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// List returns a copy of all ideas.
func (m *Memory) List(_ context.Context) ([]idea.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return slices.Clone(m.ideas), nil
}

// Get returns the idea with the given ID.
func (m *Memory) Get(_ context.Context, id string) (idea.Idea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return idea.Idea{}, m.fail
	}
	i := idea.IndexOf(m.ideas, id)
	if i < 0 {
		return idea.Idea{}, ideaerrors.IdeaNotFoundError{ID: id}
	}
	return m.ideas[i], nil
}

// Create prepends an idea. An existing ID is overwritten in place.
func (m *Memory) Create(_ context.Context, i idea.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if idx := idea.IndexOf(m.ideas, i.ID); idx >= 0 {
		m.ideas[idx] = i
		return nil
	}
	m.ideas = slices.Insert(m.ideas, 0, i)
	return nil
}

// Update replaces the mutable fields of an existing idea.
func (m *Memory) Update(_ context.Context, i idea.Idea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	idx := idea.IndexOf(m.ideas, i.ID)
	if idx < 0 {
		return ideaerrors.IdeaNotFoundError{ID: i.ID}
	}
	cur := &m.ideas[idx]
	cur.Title = i.Title
	cur.Description = i.Description
	cur.Status = i.Status
	cur.Priority = i.Priority
	return nil
}

// UpdateStatus sets only the status of an existing idea.
func (m *Memory) UpdateStatus(_ context.Context, id string, status idea.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	idx := idea.IndexOf(m.ideas, id)
	if idx < 0 {
		return ideaerrors.IdeaNotFoundError{ID: id}
	}
	m.ideas[idx].Status = status
	return nil
}

// Delete removes an idea.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	idx := idea.IndexOf(m.ideas, id)
	if idx < 0 {
		return ideaerrors.IdeaNotFoundError{ID: id}
	}
	m.ideas = slices.Delete(m.ideas, idx, idx+1)
	return nil
}
