package gamification

import (
	"context"
	"errors"
	"testing"
	"time"

	"sentinel-platform/internal/alerts"
)

// scriptedSource returns alerts with predetermined scores.
type scriptedSource struct {
	scores []float64
	next   int
}

func (s *scriptedSource) SimulateAlert(_ context.Context, workspaceID string) (alerts.Alert, error) {
	if s.next >= len(s.scores) {
		return alerts.Alert{}, errors.New("out of scripted alerts")
	}
	a := alerts.Alert{
		AlertID:     "drill-al",
		WorkspaceID: workspaceID,
		Score:       s.scores[s.next],
		Status:      alerts.StatusNew,
	}
	s.next++
	return a, nil
}

func newDrillService(t *testing.T, scores []float64) *Service {
	t.Helper()
	svc := NewService(NewMemoryDrillRepo(), NewMemoryBadgeRepo(), NewMemoryLeaderboard(), &scriptedSource{scores: scores})
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	svc.idgen = func() string { return "drill1" }
	return svc
}

func TestStartDrill_FixesGroundTruthAtThreshold(t *testing.T) {
	svc := newDrillService(t, []float64{0.1, 0.59, 0.60, 0.61, 0.95})

	d, err := svc.StartDrill(context.Background(), "w", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(d.Alerts) != DrillSize || len(d.Truth) != DrillSize {
		t.Fatalf("expected %d alerts with truth, got %d/%d", DrillSize, len(d.Alerts), len(d.Truth))
	}
	// Strict inequality: a score of exactly 0.60 is not a true threat.
	want := []bool{false, false, false, true, true}
	for i, w := range want {
		if d.Truth[i] != w {
			t.Fatalf("truth[%d]: want %v got %v (score %.2f)", i, w, d.Truth[i], d.Alerts[i].Score)
		}
	}
}

func TestSubmitDrill_ScoresAndAwardsBadgeOnPerfect(t *testing.T) {
	svc := newDrillService(t, []float64{0.1, 0.2, 0.7, 0.8, 0.9})

	d, err := svc.StartDrill(context.Background(), "w", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	res, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, []bool{false, false, true, true, true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Correct != 5 || res.Points != 50 {
		t.Fatalf("expected perfect score worth 50, got %+v", res)
	}
	if res.Badge != BadgeSandboxMaster {
		t.Fatalf("expected badge, got %q", res.Badge)
	}

	board, err := svc.Leaderboard(context.Background(), "w", 10)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(board) != 1 || board[0].AnalystID != "analyst7" || board[0].Points != 50 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}
	if len(board[0].Badges) != 1 || board[0].Badges[0] != BadgeSandboxMaster {
		t.Fatalf("expected badge on leaderboard entry: %+v", board[0])
	}
}

func TestSubmitDrill_PartialScoreNoBadge(t *testing.T) {
	svc := newDrillService(t, []float64{0.1, 0.2, 0.7, 0.8, 0.9})

	d, _ := svc.StartDrill(context.Background(), "w", "analyst7")
	res, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, []bool{true, true, true, true, true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Correct != 3 || res.Points != 30 || res.Badge != "" {
		t.Fatalf("expected 3 correct, 30 points, no badge: %+v", res)
	}
}

func TestSubmitDrill_SecondSubmissionRefused(t *testing.T) {
	svc := newDrillService(t, []float64{0.1, 0.2, 0.7, 0.8, 0.9})

	d, _ := svc.StartDrill(context.Background(), "w", "analyst7")
	judgments := []bool{false, false, true, true, true}
	if _, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, judgments); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, judgments); !errors.Is(err, ErrDrillCompleted) {
		t.Fatalf("expected ErrDrillCompleted, got %v", err)
	}
}

func TestSubmitDrill_JudgmentCountMismatch(t *testing.T) {
	svc := newDrillService(t, []float64{0.1, 0.2, 0.7, 0.8, 0.9})

	d, _ := svc.StartDrill(context.Background(), "w", "analyst7")
	if _, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, []bool{true}); !errors.Is(err, ErrJudgmentCount) {
		t.Fatalf("expected ErrJudgmentCount, got %v", err)
	}
	// A mismatched submission must not consume the drill.
	if _, err := svc.SubmitDrill(context.Background(), "w", d.DrillID, []bool{false, false, true, true, true}); err != nil {
		t.Fatalf("drill must still be gradable: %v", err)
	}
}

func TestMemoryLeaderboard_RanksByPointsThenID(t *testing.T) {
	board := NewMemoryLeaderboard()
	ctx := context.Background()
	for _, add := range []struct {
		analyst string
		points  int
	}{{"carol", 30}, {"alice", 50}, {"bob", 30}} {
		if err := board.AddPoints(ctx, "w", add.analyst, add.points); err != nil {
			t.Fatalf("add points: %v", err)
		}
	}

	top, err := board.Top(ctx, "w", 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(top) != 2 || top[0].AnalystID != "alice" || top[1].AnalystID != "bob" {
		t.Fatalf("unexpected ranking: %+v", top)
	}

	if other, _ := board.Top(ctx, "other", 10); len(other) != 0 {
		t.Fatalf("workspaces must be isolated, got %+v", other)
	}
}
