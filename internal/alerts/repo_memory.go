package alerts

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("alerts: alert not found")

// Repository is the persistence contract for alerts.
//
// Update applies a read-modify-write atomically per alert so that status
// transitions cannot be lost under interleaved callers.

type Repository interface {
	Append(ctx context.Context, a Alert) error
	Get(ctx context.Context, workspaceID, alertID string) (Alert, error)
	List(ctx context.Context, workspaceID string) ([]Alert, error)
	Update(ctx context.Context, workspaceID, alertID string, fn func(*Alert) error) (Alert, error)
}

// MemoryRepo is an in-memory alert store. Alerts are appended in creation
// order and never removed.

type MemoryRepo struct {
	mu     sync.Mutex
	alerts []Alert
}

func NewMemoryRepo() *MemoryRepo { return &MemoryRepo{} }

func (r *MemoryRepo) Append(ctx context.Context, a Alert) error {
	if a.WorkspaceID == "" {
		return errors.New("alerts: workspace_id required")
	}
	if a.AlertID == "" {
		return errors.New("alerts: alert_id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *MemoryRepo) Get(ctx context.Context, workspaceID, alertID string) (Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].WorkspaceID == workspaceID && r.alerts[i].AlertID == alertID {
			return r.alerts[i], nil
		}
	}
	return Alert{}, ErrNotFound
}

// List returns workspace alerts in creation order.
func (r *MemoryRepo) List(ctx context.Context, workspaceID string) ([]Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Alert, 0)
	for _, a := range r.alerts {
		if a.WorkspaceID == workspaceID {
			out = append(out, a)
		}
	}
	return out, nil
}

// Update runs fn against the stored alert under the repo lock. If fn returns
// an error the alert is left unchanged and the error is surfaced.
func (r *MemoryRepo) Update(ctx context.Context, workspaceID, alertID string, fn func(*Alert) error) (Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.alerts {
		if r.alerts[i].WorkspaceID == workspaceID && r.alerts[i].AlertID == alertID {
			updated := r.alerts[i]
			if err := fn(&updated); err != nil {
				return Alert{}, err
			}
			r.alerts[i] = updated
			return updated, nil
		}
	}
	return Alert{}, ErrNotFound
}
