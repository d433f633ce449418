package gamification

import (
	"context"
	"errors"
	"sync"
)

var ErrDrillNotFound = errors.New("gamification: drill not found")

// DrillRepository stores drill sessions per workspace.
type DrillRepository interface {
	Append(ctx context.Context, d Drill) error
	Get(ctx context.Context, workspaceID, drillID string) (Drill, error)
	Update(ctx context.Context, workspaceID, drillID string, fn func(*Drill) error) (Drill, error)
}

type MemoryDrillRepo struct {
	mu     sync.Mutex
	drills map[string][]Drill
}

func NewMemoryDrillRepo() *MemoryDrillRepo {
	return &MemoryDrillRepo{drills: make(map[string][]Drill)}
}

func (r *MemoryDrillRepo) Append(_ context.Context, d Drill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drills[d.WorkspaceID] = append(r.drills[d.WorkspaceID], d)
	return nil
}

func (r *MemoryDrillRepo) Get(_ context.Context, workspaceID, drillID string) (Drill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drills[workspaceID] {
		if d.DrillID == drillID {
			return d, nil
		}
	}
	return Drill{}, ErrDrillNotFound
}

func (r *MemoryDrillRepo) Update(_ context.Context, workspaceID, drillID string, fn func(*Drill) error) (Drill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.drills[workspaceID]
	for i := range list {
		if list[i].DrillID == drillID {
			updated := list[i]
			if err := fn(&updated); err != nil {
				return Drill{}, err
			}
			list[i] = updated
			return updated, nil
		}
	}
	return Drill{}, ErrDrillNotFound
}

// BadgeRepository tracks badges earned per analyst.
type BadgeRepository interface {
	Award(ctx context.Context, workspaceID, analystID, badge string) error
	Badges(ctx context.Context, workspaceID, analystID string) ([]string, error)
}

type MemoryBadgeRepo struct {
	mu     sync.Mutex
	badges map[string][]string
}

func NewMemoryBadgeRepo() *MemoryBadgeRepo {
	return &MemoryBadgeRepo{badges: make(map[string][]string)}
}

func badgeKey(workspaceID, analystID string) string {
	return workspaceID + "/" + analystID
}

func (r *MemoryBadgeRepo) Award(_ context.Context, workspaceID, analystID, badge string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := badgeKey(workspaceID, analystID)
	for _, b := range r.badges[key] {
		if b == badge {
			return nil
		}
	}
	r.badges[key] = append(r.badges[key], badge)
	return nil
}

func (r *MemoryBadgeRepo) Badges(_ context.Context, workspaceID, analystID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.badges[badgeKey(workspaceID, analystID)]))
	copy(out, r.badges[badgeKey(workspaceID, analystID)])
	return out, nil
}
