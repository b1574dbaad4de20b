package store_test

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/repository"
	"github.com/abatilo/ideas/internal/store"
)

var errOffline = errors.New("connection refused")

func fixedClock() time.Time {
	return time.Date(2025, 5, 22, 18, 14, 27, 0, time.UTC)
}

func seed() []idea.Idea {
	return []idea.Idea{
		{ID: "a", Title: "Alpha", Description: "first", Status: idea.StatusPending, Priority: idea.PriorityHigh},
		{ID: "b", Title: "Beta", Description: "second", Status: idea.StatusDone, Priority: idea.PriorityLow},
	}
}

func newStore(repo repository.Repository) (*store.Store, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return store.New(repo, zap.New(core), store.WithClock(fixedClock)), logs
}

func TestListAll(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(seed()...)
	s, logs := newStore(repo)

	assert.Len(t, s.ListAll(ctx), 2)

	repo.FailWith(errOffline)
	got := s.ListAll(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("list ideas failed").Len())
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	s, _ := newStore(repo)

	res := s.Create(ctx, idea.Input{Title: "Gamma", Description: "third"})
	require.True(t, res.Saved)
	assert.NotEmpty(t, res.Idea.ID)
	assert.Equal(t, idea.StatusPending, res.Idea.Status)
	assert.Equal(t, idea.PriorityMedium, res.Idea.Priority)
	assert.True(t, res.Idea.CreatedAt.Equal(fixedClock()))

	stored, err := repo.Get(ctx, res.Idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gamma", stored.Title)
}

func TestCreateWhenRepositoryFails(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	repo.FailWith(errOffline)
	s, logs := newStore(repo)

	first := s.Create(ctx, idea.Input{Title: "One", Description: "d"})
	second := s.Create(ctx, idea.Input{Title: "Two", Description: "d"})

	assert.False(t, first.Saved)
	require.ErrorIs(t, first.Err, errOffline)
	assert.NotEmpty(t, first.Idea.ID)
	assert.NotEqual(t, first.Idea.ID, second.Idea.ID)
	assert.Equal(t, 2, logs.FilterMessage("create failed").Len())
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	snapshot := seed()
	before := slices.Clone(snapshot)
	repo := repository.NewMemory(seed()...)
	s, _ := newStore(repo)

	edit := snapshot[0]
	edit.Title = "Alpha 2"
	edit.Status = idea.StatusInProgress
	res, err := s.Update(ctx, edit, snapshot)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, "Alpha 2", res.Idea.Title)
	assert.Equal(t, idea.StatusInProgress, res.Idea.Status)
	assert.Equal(t, before, snapshot)

	stored, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Alpha 2", stored.Title)
}

func TestUpdateUnknownID(t *testing.T) {
	snapshot := seed()
	before := slices.Clone(snapshot)
	s, _ := newStore(repository.NewMemory(seed()...))

	_, err := s.Update(context.Background(), idea.Idea{ID: "missing", Title: "x"}, snapshot)

	var notFound ideaerrors.IdeaNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ID)
	assert.Equal(t, before, snapshot)
}

func TestUpdateWhenRepositoryFails(t *testing.T) {
	repo := repository.NewMemory(seed()...)
	repo.FailWith(errOffline)
	s, logs := newStore(repo)

	edit := seed()[1]
	edit.Description = "changed"
	res, err := s.Update(context.Background(), edit, seed())
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Equal(t, "changed", res.Idea.Description)

	entry := logs.FilterMessage("update failed").All()
	require.Len(t, entry, 1)
	assert.Equal(t, "b", entry[0].ContextMap()["id"])
}

func TestUpdateStatusAndPriority(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(seed()...)
	s, _ := newStore(repo)
	snapshot := seed()

	res, err := s.UpdateStatus(ctx, "a", idea.StatusDone, snapshot)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, idea.StatusDone, res.Idea.Status)
	assert.Equal(t, idea.StatusPending, snapshot[0].Status)

	res, err = s.UpdatePriority(ctx, "b", idea.PriorityHigh, snapshot)
	require.NoError(t, err)
	assert.Equal(t, idea.PriorityHigh, res.Idea.Priority)

	stored, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, idea.PriorityHigh, stored.Priority)

	_, err = s.UpdateStatus(ctx, "zzz", idea.StatusDone, snapshot)
	require.ErrorAs(t, err, new(ideaerrors.IdeaNotFoundError))
	_, err = s.UpdatePriority(ctx, "zzz", idea.PriorityLow, snapshot)
	require.ErrorAs(t, err, new(ideaerrors.IdeaNotFoundError))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory(seed()...)
	s, _ := newStore(repo)
	snapshot := seed()

	res, err := s.Delete(ctx, "a", snapshot)
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, "a", res.Idea.ID)
	assert.Len(t, snapshot, 2)

	_, err = repo.Get(ctx, "a")
	require.ErrorAs(t, err, new(ideaerrors.IdeaNotFoundError))

	_, err = s.Delete(ctx, "missing", snapshot)
	require.ErrorAs(t, err, new(ideaerrors.IdeaNotFoundError))
}

func TestGetSurfacesErrors(t *testing.T) {
	repo := repository.NewMemory(seed()...)
	s, _ := newStore(repo)

	got, err := s.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Title)

	repo.FailWith(errOffline)
	_, err = s.Get(context.Background(), "b")
	require.ErrorIs(t, err, errOffline)
}
