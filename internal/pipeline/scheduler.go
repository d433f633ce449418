package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives the simulation loop: one Step per tick until the context
// is canceled. There is exactly one scheduler goroutine per process; the
// stores do their own locking, so ticks never overlap destructively with
// API traffic.
type Scheduler struct {
	svc         *Service
	workspaceID string
	interval    time.Duration
	log         *slog.Logger
}

func NewScheduler(svc *Service, workspaceID string, interval time.Duration, log *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Scheduler{svc: svc, workspaceID: workspaceID, interval: interval, log: log}
}

// Run blocks until ctx is canceled. A failed tick is logged and skipped;
// the loop keeps going.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("simulation scheduler started",
		slog.String("workspace_id", s.workspaceID),
		slog.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulation scheduler stopped")
			return
		case <-ticker.C:
			a, out, err := s.svc.Step(ctx, s.workspaceID)
			if err != nil {
				s.log.Error("simulation step failed", slog.String("error", err.Error()))
				continue
			}
			s.log.Debug("simulation step",
				slog.String("alert_id", a.AlertID),
				slog.Float64("score", a.Score),
				slog.String("severity", a.Severity),
				slog.Bool("auto_applied", out.Applied),
				slog.String("auto_reason", out.Reason))
		}
	}
}
