package audit

import (
	"context"
	"errors"
	"sync"
)

// MemoryRepo is an in-memory append-only ledger. It is the default store
// when no database is configured, and the test double everywhere.

type MemoryRepo struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Entry) error {
	if e.WorkspaceID == "" {
		return errors.New("audit: workspace_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// List returns workspace entries in insertion order.
func (r *MemoryRepo) List(ctx context.Context, workspaceID string) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.WorkspaceID == workspaceID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Entries returns a copy of the full ledger, for tests.
func (r *MemoryRepo) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
