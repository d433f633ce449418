package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sentinel-platform/internal/alerts"
)

// AlertSource produces synthetic alerts for drills. Drill alerts are never
// persisted to the live alert store.
type AlertSource interface {
	SimulateAlert(ctx context.Context, workspaceID string) (alerts.Alert, error)
}

var (
	ErrInvalidArgument = errors.New("gamification: invalid argument")
	ErrDrillCompleted  = errors.New("gamification: drill already completed")
	ErrJudgmentCount   = errors.New("gamification: judgment count mismatch")
)

// Service runs sandbox drills and keeps analyst standings.
type Service struct {
	drills DrillRepository
	badges BadgeRepository
	board  Leaderboard
	source AlertSource

	clock func() time.Time
	idgen func() string
}

func NewService(drills DrillRepository, badges BadgeRepository, board Leaderboard, source AlertSource) *Service {
	return &Service{
		drills: drills,
		badges: badges,
		board:  board,
		source: source,
		clock:  time.Now,
		idgen:  uuid.NewString,
	}
}

// StartDrill samples a fresh batch of synthetic alerts and fixes the ground
// truth before the analyst sees them.
func (s *Service) StartDrill(ctx context.Context, workspaceID, analystID string) (Drill, error) {
	if workspaceID == "" || analystID == "" {
		return Drill{}, ErrInvalidArgument
	}

	d := Drill{
		DrillID:     s.idgen(),
		WorkspaceID: workspaceID,
		AnalystID:   analystID,
		Alerts:      make([]alerts.Alert, 0, DrillSize),
		Truth:       make([]bool, 0, DrillSize),
		CreatedAt:   s.clock().UTC(),
	}
	for i := 0; i < DrillSize; i++ {
		a, err := s.source.SimulateAlert(ctx, workspaceID)
		if err != nil {
			return Drill{}, err
		}
		d.Alerts = append(d.Alerts, a)
		d.Truth = append(d.Truth, a.Score > GroundTruthThreshold)
	}

	if err := s.drills.Append(ctx, d); err != nil {
		return Drill{}, err
	}
	return d, nil
}

// SubmitDrill grades the analyst's judgments against the drill's ground
// truth. A drill is graded at most once; a perfect round earns the
// Sandbox Master badge.
func (s *Service) SubmitDrill(ctx context.Context, workspaceID, drillID string, judgments []bool) (Result, error) {
	if workspaceID == "" || drillID == "" {
		return Result{}, ErrInvalidArgument
	}

	d, err := s.drills.Update(ctx, workspaceID, drillID, func(d *Drill) error {
		if d.Completed {
			return ErrDrillCompleted
		}
		if len(judgments) != len(d.Truth) {
			return ErrJudgmentCount
		}
		d.Completed = true
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	correct := 0
	for i, truth := range d.Truth {
		if judgments[i] == truth {
			correct++
		}
	}

	res := Result{
		DrillID: d.DrillID,
		Correct: correct,
		Total:   len(d.Truth),
		Points:  correct * PointsPerCorrect,
	}
	if correct == len(d.Truth) && len(d.Truth) > 0 {
		res.Badge = BadgeSandboxMaster
		if err := s.badges.Award(ctx, workspaceID, d.AnalystID, BadgeSandboxMaster); err != nil {
			return Result{}, err
		}
	}
	if res.Points > 0 {
		if err := s.board.AddPoints(ctx, workspaceID, d.AnalystID, res.Points); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// Entry is one leaderboard row annotated with the analyst's earned badges.
type Entry struct {
	Standing
	Badges []string `json:"badges,omitempty"`
}

// Leaderboard returns the top standings for a workspace.
func (s *Service) Leaderboard(ctx context.Context, workspaceID string, limit int) ([]Entry, error) {
	if workspaceID == "" {
		return nil, ErrInvalidArgument
	}
	standings, err := s.board.Top(ctx, workspaceID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(standings))
	for _, st := range standings {
		badges, err := s.badges.Badges(ctx, workspaceID, st.AnalystID)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Standing: st, Badges: badges})
	}
	return out, nil
}
