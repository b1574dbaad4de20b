// Package storage keeps ideas as markdown files on the local disk. It backs
// the offline "file" backend and the export/import commands.
package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	ideaerrors "github.com/abatilo/ideas/internal/errors"
	"github.com/abatilo/ideas/internal/idea"
)

const fileExt = ".md"

// Store handles idea file operations. It implements repository.Repository.
type Store struct {
	basePath string
	logger   *zap.Logger
}

// NewStoreWithPath creates a Store rooted at path.
func NewStoreWithPath(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{basePath: path, logger: logger}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// IsInitialized checks if the ideas directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the ideas directory if it is missing.
func (s *Store) Init() error {
	//nolint:gosec // G301: 0755 is appropriate for a user data directory
	return os.MkdirAll(s.basePath, 0o755)
}

// ideaPath maps id to its file. IDs that could name a file outside the
// ideas directory are rejected.
func (s *Store) ideaPath(id string) (string, error) {
	name := id + fileExt
	if id == "" || strings.ContainsAny(id, `/\`) || !filepath.IsLocal(name) {
		return "", ideaerrors.InvalidIDError{ID: id}
	}
	return filepath.Join(s.basePath, name), nil
}

// Exists checks if an idea with the given ID exists.
func (s *Store) Exists(id string) bool {
	path, err := s.ideaPath(id)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes an idea to disk.
func (s *Store) Save(i *idea.Idea) error {
	path, err := s.ideaPath(i.ID)
	if err != nil {
		return err
	}
	if err = s.Init(); err != nil {
		return err
	}
	content, err := SerializeMarkdown(i)
	if err != nil {
		return err
	}
	//nolint:gosec // G306: 0644 is appropriate for user-readable idea files
	return os.WriteFile(path, content, 0o644)
}

// Load reads an idea from disk.
func (s *Store) Load(id string) (*idea.Idea, error) {
	path, err := s.ideaPath(id)
	if err != nil {
		return nil, ideaerrors.IdeaNotFoundError{ID: id}
	}
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ideaerrors.IdeaNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(content)
}

// LoadAll returns every idea on disk, newest first. Malformed files are
// skipped and logged.
func (s *Store) LoadAll() ([]idea.Idea, error) {
	if !s.IsInitialized() {
		return []idea.Idea{}, nil
	}

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, err
	}

	ideas := make([]idea.Idea, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), fileExt)
		i, err := s.Load(id)
		if err != nil {
			s.logger.Warn("skipping malformed idea file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		ideas = append(ideas, *i)
	}

	sort.SliceStable(ideas, func(a, b int) bool {
		return ideas[a].CreatedAt.After(ideas[b].CreatedAt)
	})
	return ideas, nil
}

// Remove deletes an idea file.
func (s *Store) Remove(id string) error {
	path, err := s.ideaPath(id)
	if err != nil {
		return ideaerrors.IdeaNotFoundError{ID: id}
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return ideaerrors.IdeaNotFoundError{ID: id}
	}
	return err
}

// List implements repository.Repository.
func (s *Store) List(_ context.Context) ([]idea.Idea, error) {
	return s.LoadAll()
}

// Get implements repository.Repository.
func (s *Store) Get(_ context.Context, id string) (idea.Idea, error) {
	i, err := s.Load(id)
	if err != nil {
		return idea.Idea{}, err
	}
	return *i, nil
}

// Create implements repository.Repository.
func (s *Store) Create(_ context.Context, i idea.Idea) error {
	return s.Save(&i)
}

// Update implements repository.Repository. Only the mutable fields are
// written; ID and CreatedAt stay as stored.
func (s *Store) Update(_ context.Context, i idea.Idea) error {
	cur, err := s.Load(i.ID)
	if err != nil {
		return err
	}
	cur.Title = i.Title
	cur.Description = i.Description
	cur.Status = i.Status
	cur.Priority = i.Priority
	return s.Save(cur)
}

// UpdateStatus implements repository.Repository.
func (s *Store) UpdateStatus(_ context.Context, id string, status idea.Status) error {
	cur, err := s.Load(id)
	if err != nil {
		return err
	}
	cur.Status = status
	return s.Save(cur)
}

// Delete implements repository.Repository.
func (s *Store) Delete(_ context.Context, id string) error {
	return s.Remove(id)
}
