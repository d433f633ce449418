package telemetry

import (
	"context"
	"errors"
	"sync"
)

// Repository is the persistence contract for events.
//
// It MUST be append-only; no Update or Delete methods are provided.

type Repository interface {
	Append(ctx context.Context, e Event) error
	Get(ctx context.Context, workspaceID, eventID string) (Event, error)
	List(ctx context.Context, workspaceID string) ([]Event, error)
}

var ErrEventNotFound = errors.New("telemetry: event not found")

// MemoryRepo is an in-memory append-only event store.
// It enforces workspace isolation on reads.

type MemoryRepo struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, e Event) error {
	if e.WorkspaceID == "" {
		return errors.New("telemetry: workspace_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, workspaceID, eventID string) (Event, error) {
	if workspaceID == "" || eventID == "" {
		return Event{}, ErrEventNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.WorkspaceID == workspaceID && e.EventID == eventID {
			return e, nil
		}
	}
	return Event{}, ErrEventNotFound
}

// List returns workspace events in insertion order (arrival order).
func (r *MemoryRepo) List(ctx context.Context, workspaceID string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0)
	for _, e := range r.events {
		if e.WorkspaceID == workspaceID {
			out = append(out, e)
		}
	}
	return out, nil
}
