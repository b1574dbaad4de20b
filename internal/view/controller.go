package view

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/abatilo/ideas/internal/idea"
	"github.com/abatilo/ideas/internal/store"
)

// Controller is the only writer of the canonical collection. It is safe
// for concurrent use, so dispatches may run in background commands.
type Controller struct {
	store  *store.Store
	logger *zap.Logger

	mu      sync.Mutex
	ideas   []idea.Idea
	loading bool
	version uint64

	// latest ticket issued per idea ID; older results are dropped
	tickets    map[string]uint64
	lastTicket uint64
	unsaved    map[string]bool

	memo projectionMemo
}

type projectionMemo struct {
	valid   bool
	version uint64
	search  string
	key     SortKey
	items   []idea.Idea
}

// NewController creates a Controller over s. A nil logger discards diagnostics.
func NewController(s *store.Store, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:   s,
		logger:  logger,
		ideas:   []idea.Idea{},
		tickets: make(map[string]uint64),
		unsaved: make(map[string]bool),
	}
}

// Load replaces the collection with the store's. A failed listing leaves
// the collection empty.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	ideas := c.store.ListAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.ideas = slices.Clone(ideas)
	c.unsaved = make(map[string]bool)
	c.loading = false
	c.version++
}

// Loading reports whether Load is in progress.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Ideas returns a copy of the canonical collection.
func (c *Controller) Ideas() []idea.Idea {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.ideas)
}

// Find returns the idea with the given ID.
func (c *Controller) Find(id string) (idea.Idea, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := idea.IndexOf(c.ideas, id)
	if idx < 0 {
		return idea.Idea{}, false
	}
	return c.ideas[idx], true
}

// Unsaved reports whether the latest change to id failed to persist.
func (c *Controller) Unsaved(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsaved[id]
}

// Add prepends i.
func (c *Controller) Add(i idea.Idea) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(i)
}

// ApplyUpdate replaces the entry with i's ID in place. It reports whether
// the entry was found.
func (c *Controller) ApplyUpdate(i idea.Idea) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyUpdate(i)
}

// ApplyDelete removes the entry with the given ID. It reports whether the
// entry was found.
func (c *Controller) ApplyDelete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyDelete(id)
}

func (c *Controller) add(i idea.Idea) {
	c.ideas = slices.Insert(c.ideas, 0, i)
	c.version++
}

func (c *Controller) applyUpdate(i idea.Idea) bool {
	idx := idea.IndexOf(c.ideas, i.ID)
	if idx < 0 {
		return false
	}
	c.ideas[idx] = i
	c.version++
	return true
}

func (c *Controller) applyDelete(id string) bool {
	idx := idea.IndexOf(c.ideas, id)
	if idx < 0 {
		return false
	}
	c.ideas = slices.Delete(c.ideas, idx, idx+1)
	delete(c.unsaved, id)
	c.version++
	return true
}

// Create validates in, submits it and prepends the new idea. The idea is
// added even when it could not be saved.
func (c *Controller) Create(ctx context.Context, in idea.Input) (store.Result, error) {
	if err := in.Validate(); err != nil {
		return store.Result{}, err
	}

	res := c.store.Create(ctx, in)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(res.Idea)
	c.track(res)
	return res, nil
}

// Edit merges the editable fields of i into the canonical entry.
func (c *Controller) Edit(ctx context.Context, i idea.Idea) (store.Result, error) {
	return c.dispatch(i.ID, func(snapshot []idea.Idea) (store.Result, error) {
		return c.store.Update(ctx, i, snapshot)
	}, c.applyUpdate)
}

// ChangeStatus sets the status of the idea with the given ID.
func (c *Controller) ChangeStatus(ctx context.Context, id string, status idea.Status) (store.Result, error) {
	return c.dispatch(id, func(snapshot []idea.Idea) (store.Result, error) {
		return c.store.UpdateStatus(ctx, id, status, snapshot)
	}, c.applyUpdate)
}

// ChangePriority sets the priority of the idea with the given ID.
func (c *Controller) ChangePriority(ctx context.Context, id string, priority idea.Priority) (store.Result, error) {
	return c.dispatch(id, func(snapshot []idea.Idea) (store.Result, error) {
		return c.store.UpdatePriority(ctx, id, priority, snapshot)
	}, c.applyUpdate)
}

// Remove deletes the idea with the given ID. The local entry is removed
// even when the deletion could not be saved.
func (c *Controller) Remove(ctx context.Context, id string) (store.Result, error) {
	return c.dispatch(id, func(snapshot []idea.Idea) (store.Result, error) {
		return c.store.Delete(ctx, id, snapshot)
	}, func(i idea.Idea) bool {
		return c.applyDelete(i.ID)
	})
}

// dispatch runs call against a snapshot and applies its result, unless a
// newer dispatch for the same ID was started in the meantime.
func (c *Controller) dispatch(
	id string,
	call func(snapshot []idea.Idea) (store.Result, error),
	apply func(idea.Idea) bool,
) (store.Result, error) {
	c.mu.Lock()
	c.lastTicket++
	ticket := c.lastTicket
	c.tickets[id] = ticket
	snapshot := slices.Clone(c.ideas)
	c.mu.Unlock()

	res, err := call(snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tickets[id] != ticket {
		c.logger.Debug("dropping stale result",
			zap.String("id", id),
			zap.Uint64("ticket", ticket),
		)
		return res, err
	}
	delete(c.tickets, id)

	if err != nil {
		return res, err
	}
	apply(res.Idea)
	c.track(res)
	return res, nil
}

func (c *Controller) track(res store.Result) {
	if res.Saved {
		delete(c.unsaved, res.Idea.ID)
		return
	}
	if idea.IndexOf(c.ideas, res.Idea.ID) >= 0 {
		c.unsaved[res.Idea.ID] = true
	}
}

// Projection returns Project over the canonical collection. The result is
// cached until the collection, search or key changes.
func (c *Controller) Projection(search string, key SortKey) []idea.Idea {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := &c.memo
	if !m.valid || m.version != c.version || m.search != search || m.key != key {
		*m = projectionMemo{
			valid:   true,
			version: c.version,
			search:  search,
			key:     key,
			items:   Project(c.ideas, search, key),
		}
	}
	return slices.Clone(m.items)
}
