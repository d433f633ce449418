package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"sentinel-platform/internal/scoring"
	"sentinel-platform/internal/telemetry"
)

func TestFactory_FromEventStartsNew(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	f := NewFactory().
		WithClock(func() time.Time { return now }).
		WithIDGenerator(func() string { return "al1" })

	ev := telemetry.Event{EventID: "ev1", WorkspaceID: "w", UserID: "u001"}
	a := f.FromEvent(ev, 0.72, scoring.Contributions{scoring.ContribOffHours: 0.24})

	if a.AlertID != "al1" || a.WorkspaceID != "w" {
		t.Fatalf("unexpected identity: %+v", a)
	}
	if a.Status != StatusNew {
		t.Fatalf("expected status new, got %q", a.Status)
	}
	if a.Severity != "high" {
		t.Fatalf("expected severity high for 0.72, got %q", a.Severity)
	}
	if !a.CreatedAt.Equal(now) {
		t.Fatalf("expected fixed created_at, got %v", a.CreatedAt)
	}
	if a.AssignedTo != "" || a.CaseID != "" {
		t.Fatalf("new alert must be unassigned and caseless: %+v", a)
	}
}

func TestMemoryRepo_UpdateIsGuarded(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_ = repo.Append(ctx, Alert{AlertID: "a1", WorkspaceID: "w", Status: StatusNew})

	guard := errors.New("precondition failed")
	if _, err := repo.Update(ctx, "w", "a1", func(a *Alert) error {
		a.Status = StatusMitigated
		return guard
	}); !errors.Is(err, guard) {
		t.Fatalf("expected guard error, got %v", err)
	}

	got, _ := repo.Get(ctx, "w", "a1")
	if got.Status != StatusNew {
		t.Fatalf("rejected update must not mutate, got %q", got.Status)
	}

	if _, err := repo.Update(ctx, "w", "missing", func(a *Alert) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
