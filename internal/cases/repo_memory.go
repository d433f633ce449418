package cases

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("cases: case not found")

// Repository is the persistence contract for cases. Update applies a
// read-modify-write atomically per case.

type Repository interface {
	Append(ctx context.Context, c Case) error
	Get(ctx context.Context, workspaceID, caseID string) (Case, error)
	List(ctx context.Context, workspaceID string) ([]Case, error)
	Update(ctx context.Context, workspaceID, caseID string, fn func(*Case) error) (Case, error)
}

// MemoryRepo is an in-memory case store.

type MemoryRepo struct {
	mu    sync.Mutex
	cases []Case
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, c Case) error {
	if c.WorkspaceID == "" {
		return errors.New("cases: workspace_id required")
	}
	if c.CaseID == "" {
		return errors.New("cases: case_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cases = append(r.cases, c)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, workspaceID, caseID string) (Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cases {
		if r.cases[i].WorkspaceID == workspaceID && r.cases[i].CaseID == caseID {
			return r.cases[i], nil
		}
	}
	return Case{}, ErrNotFound
}

// List returns workspace cases in creation order.
func (r *MemoryRepo) List(ctx context.Context, workspaceID string) ([]Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Case, 0)
	for _, c := range r.cases {
		if c.WorkspaceID == workspaceID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, workspaceID, caseID string, fn func(*Case) error) (Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cases {
		if r.cases[i].WorkspaceID == workspaceID && r.cases[i].CaseID == caseID {
			updated := r.cases[i]
			if err := fn(&updated); err != nil {
				return Case{}, err
			}
			r.cases[i] = updated
			return updated, nil
		}
	}
	return Case{}, ErrNotFound
}
