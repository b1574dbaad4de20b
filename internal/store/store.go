// Package store is the idea service: it turns user intents into repository
// calls and reports what the caller should apply locally.
package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/repository"
)

// Result is the outcome of a mutation.
type Result struct {
	// Idea is the value the caller should apply locally.
	Idea idea.Idea
	// Saved is false when the repository call failed.
	Saved bool
	// Err is the swallowed repository error, if any.
	Err error
}

// Store never mutates the snapshots handed to it.
type Store struct {
	repo   repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store over repo. A nil logger discards diagnostics.
func New(repo repository.Repository, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{repo: repo, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListAll returns every idea, or an empty list if the repository failed.
func (s *Store) ListAll(ctx context.Context) []idea.Idea {
	ideas, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("list ideas failed", zap.Error(err))
		return []idea.Idea{}
	}
	if ideas == nil {
		return []idea.Idea{}
	}
	return ideas
}

// Get fetches one idea. Errors are not swallowed.
func (s *Store) Get(ctx context.Context, id string) (idea.Idea, error) {
	return s.repo.Get(ctx, id)
}

// Create assigns an ID and timestamp to in and submits it. The returned
// idea is usable even when the submission failed.
func (s *Store) Create(ctx context.Context, in idea.Input) Result {
	i := idea.Idea{
		ID:          idea.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   s.now().UTC(),
	}
	if i.Status == "" {
		i.Status = idea.StatusPending
	}
	if i.Priority == "" {
		i.Priority = idea.PriorityMedium
	}

	err := s.repo.Create(ctx, i)
	return s.result("create", i, err)
}

// Update merges the editable fields of i into the matching snapshot entry
// and submits the full record.
func (s *Store) Update(ctx context.Context, i idea.Idea, snapshot []idea.Idea) (Result, error) {
	cur, err := find(snapshot, i.ID)
	if err != nil {
		return Result{}, err
	}
	cur.Title = i.Title
	cur.Description = i.Description
	cur.Status = i.Status
	cur.Priority = i.Priority

	err = s.repo.Update(ctx, cur)
	return s.result("update", cur, err), nil
}

// UpdateStatus changes only the status of the idea with the given ID.
func (s *Store) UpdateStatus(ctx context.Context, id string, status idea.Status, snapshot []idea.Idea) (Result, error) {
	cur, err := find(snapshot, id)
	if err != nil {
		return Result{}, err
	}
	cur.Status = status

	err = s.repo.UpdateStatus(ctx, id, status)
	return s.result("update status", cur, err), nil
}

// UpdatePriority changes only the priority. The repository has no narrow
// priority call, so the full record is submitted.
func (s *Store) UpdatePriority(ctx context.Context, id string, priority idea.Priority, snapshot []idea.Idea) (Result, error) {
	cur, err := find(snapshot, id)
	if err != nil {
		return Result{}, err
	}
	cur.Priority = priority

	err = s.repo.Update(ctx, cur)
	return s.result("update priority", cur, err), nil
}

// Delete asks the repository to remove the idea. The returned Result carries
// the removed idea; removing it locally is left to the caller.
func (s *Store) Delete(ctx context.Context, id string, snapshot []idea.Idea) (Result, error) {
	cur, err := find(snapshot, id)
	if err != nil {
		return Result{}, err
	}

	err = s.repo.Delete(ctx, id)
	return s.result("delete", cur, err), nil
}

func (s *Store) result(op string, i idea.Idea, err error) Result {
	if err != nil {
		s.logger.Warn(op+" failed",
			zap.String("id", i.ID),
			zap.Error(err),
		)
		return Result{Idea: i, Err: err}
	}
	return Result{Idea: i, Saved: true}
}

// find returns a copy of the snapshot entry with the given ID.
func find(snapshot []idea.Idea, id string) (idea.Idea, error) {
	idx := idea.IndexOf(snapshot, id)
	if idx < 0 {
		return idea.Idea{}, ideaerrors.IdeaNotFoundError{ID: id}
	}
	return snapshot[idx], nil
}
