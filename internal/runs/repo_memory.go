package runs

import (
	"context"
	"sort"
	"sync"
)

// DefaultMemoryCapacity is the number of runs a MemoryRepo keeps by default.
const DefaultMemoryCapacity = 1000

// MemoryRepo is an in-memory Repo used when no database is configured. It
// keeps only the most recently created runs; older ones are evicted.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Run
	order []string // ring of ids in insertion order
	next  int
	cap   int
}

// NewMemoryRepo constructs a MemoryRepo holding DefaultMemoryCapacity runs.
func NewMemoryRepo() *MemoryRepo {
	return NewMemoryRepoWithCapacity(DefaultMemoryCapacity)
}

// NewMemoryRepoWithCapacity constructs a MemoryRepo holding at most n runs.
// n <= 0 falls back to DefaultMemoryCapacity.
func NewMemoryRepoWithCapacity(n int) *MemoryRepo {
	if n <= 0 {
		n = DefaultMemoryCapacity
	}
	return &MemoryRepo{data: make(map[string]Run), order: make([]string, 0, n), cap: n}
}

// Len reports how many runs are held.
func (r *MemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Create stores a run.
func (r *MemoryRepo) Create(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[run.ID]; ok {
		r.data[run.ID] = run
		return nil
	}
	if len(r.order) < r.cap {
		r.order = append(r.order, run.ID)
	} else {
		delete(r.data, r.order[r.next])
		r.order[r.next] = run.ID
		r.next = (r.next + 1) % r.cap
	}
	r.data[run.ID] = run
	return nil
}

// GetByID returns a run by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.data[id]
	if !ok {
		return Run{}, ErrNotFound
	}
	return run, nil
}

// ListRecent returns up to limit runs, newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit = ClampLimit(limit)

	r.mu.RLock()
	out := make([]Run, 0, len(r.data))
	for _, run := range r.data {
		out = append(out, run)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
