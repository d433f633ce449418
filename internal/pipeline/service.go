package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/remediation"
	"sentinel-platform/internal/scoring"
	"sentinel-platform/internal/telemetry"
)

// AutoActor is recorded on audit entries written by automated sweeps and
// simulation steps.
const AutoActor = "auto-sim"

var ErrInvalidArgument = errors.New("pipeline: invalid argument")

// Service glues ingestion, scoring, and the action gate into one flow:
// event in, scored alert out, automated action attempted.
type Service struct {
	events  *telemetry.Service
	sim     *telemetry.Simulator
	factory *alerts.Factory
	alerts  alerts.Repository
	gate    *remediation.Service

	clock func() time.Time
	idgen func() string
}

func NewService(events *telemetry.Service, sim *telemetry.Simulator, factory *alerts.Factory, alertRepo alerts.Repository, gate *remediation.Service) *Service {
	return &Service{
		events:  events,
		sim:     sim,
		factory: factory,
		alerts:  alertRepo,
		gate:    gate,
		clock:   time.Now,
		idgen:   uuid.NewString,
	}
}

// Evaluate scores raw features without persisting anything. It backs the
// what-if endpoint analysts use to probe the weights.
func (s *Service) Evaluate(raw telemetry.RawFeatures) (float64, scoring.Contributions) {
	return scoring.Score(telemetry.Normalize(raw))
}

// GenerateAlert scores a previously ingested event and appends the
// resulting alert to the store. Re-generating from the same event yields a
// new alert; deduplication is the caller's concern.
func (s *Service) GenerateAlert(ctx context.Context, workspaceID, eventID string) (alerts.Alert, error) {
	if workspaceID == "" || eventID == "" {
		return alerts.Alert{}, ErrInvalidArgument
	}

	e, err := s.events.GetEvent(ctx, workspaceID, eventID)
	if err != nil {
		return alerts.Alert{}, err
	}

	score, contrib := scoring.Score(telemetry.Normalize(e.Features))
	a := s.factory.FromEvent(e, score, contrib)
	if err := s.alerts.Append(ctx, a); err != nil {
		return alerts.Alert{}, err
	}
	return a, nil
}

// SimulateEvent samples one submission and ingests it like any real event.
func (s *Service) SimulateEvent(ctx context.Context, workspaceID string) (telemetry.Event, error) {
	if workspaceID == "" {
		return telemetry.Event{}, ErrInvalidArgument
	}
	return s.events.SubmitEvent(ctx, workspaceID, s.sim.Sample())
}

// SimulateAlert builds a scored alert from a sampled submission without
// touching the event or alert stores. Drills use this to produce sandbox
// material that never pollutes live data.
func (s *Service) SimulateAlert(ctx context.Context, workspaceID string) (alerts.Alert, error) {
	if workspaceID == "" {
		return alerts.Alert{}, ErrInvalidArgument
	}

	sub := s.sim.Sample()
	e := telemetry.Event{
		EventID:     s.idgen(),
		WorkspaceID: workspaceID,
		UserID:      sub.UserID,
		UserName:    sub.UserName,
		Department:  sub.Department,
		Timestamp:   s.clock().UTC(),
		Features:    sub.Features,
		Sentiment:   telemetry.SentimentScore(sub.Features.MessageText),
	}
	score, contrib := scoring.Score(telemetry.Normalize(e.Features))
	return s.factory.FromEvent(e, score, contrib), nil
}

// Step runs one simulation tick: sample a submission, ingest it, raise an
// alert, and run the action gate against it. The gate outcome may be a
// rejection; that is a normal step result.
func (s *Service) Step(ctx context.Context, workspaceID string) (alerts.Alert, remediation.Outcome, error) {
	if workspaceID == "" {
		return alerts.Alert{}, remediation.Outcome{}, ErrInvalidArgument
	}

	sub := s.sim.Sample()
	e, err := s.events.SubmitEvent(ctx, workspaceID, sub)
	if err != nil {
		return alerts.Alert{}, remediation.Outcome{}, err
	}

	a, err := s.GenerateAlert(ctx, workspaceID, e.EventID)
	if err != nil {
		return alerts.Alert{}, remediation.Outcome{}, err
	}

	out, err := s.gate.Attempt(ctx, workspaceID, a.AlertID, remediation.KindIsolateEndpoint, AutoActor)
	if err != nil {
		return alerts.Alert{}, remediation.Outcome{}, err
	}
	if out.Applied {
		// Return the post-gate state so callers see the mitigated status.
		a, err = s.alerts.Get(ctx, workspaceID, a.AlertID)
		if err != nil {
			return alerts.Alert{}, remediation.Outcome{}, err
		}
	}
	return a, out, nil
}
