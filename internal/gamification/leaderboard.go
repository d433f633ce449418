package gamification

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Leaderboard ranks analysts by accumulated drill points within a
// workspace.
type Leaderboard interface {
	AddPoints(ctx context.Context, workspaceID, analystID string, points int) error
	Top(ctx context.Context, workspaceID string, limit int) ([]Standing, error)
}

// MemoryLeaderboard is the default single-node ranking.
type MemoryLeaderboard struct {
	mu     sync.Mutex
	points map[string]map[string]int
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{points: make(map[string]map[string]int)}
}

func (l *MemoryLeaderboard) AddPoints(_ context.Context, workspaceID, analystID string, points int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	ws := l.points[workspaceID]
	if ws == nil {
		ws = make(map[string]int)
		l.points[workspaceID] = ws
	}
	ws[analystID] += points
	return nil
}

func (l *MemoryLeaderboard) Top(_ context.Context, workspaceID string, limit int) ([]Standing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Standing, 0, len(l.points[workspaceID]))
	for analyst, pts := range l.points[workspaceID] {
		out = append(out, Standing{AnalystID: analyst, Points: pts})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].AnalystID < out[j].AnalystID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RedisLeaderboard keeps one sorted set per workspace so standings survive
// restarts and are shared across instances.
type RedisLeaderboard struct {
	rdb *redis.Client
}

func NewRedisLeaderboard(rdb *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{rdb: rdb}
}

func leaderboardKey(workspaceID string) string {
	return fmt.Sprintf("leaderboard:%s", workspaceID)
}

func (l *RedisLeaderboard) AddPoints(ctx context.Context, workspaceID, analystID string, points int) error {
	return l.rdb.ZIncrBy(ctx, leaderboardKey(workspaceID), float64(points), analystID).Err()
}

func (l *RedisLeaderboard) Top(ctx context.Context, workspaceID string, limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey(workspaceID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard top: %w", err)
	}
	out := make([]Standing, 0, len(rows))
	for _, z := range rows {
		analyst, ok := z.Member.(string)
		if !ok {
			continue
		}
		out = append(out, Standing{AnalystID: analyst, Points: int(z.Score)})
	}
	return out, nil
}
