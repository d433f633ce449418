package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Submission is one observation handed in by a telemetry source.
type Submission struct {
	UserID     string      `json:"user_id"`
	UserName   string      `json:"user_name"`
	Department string      `json:"department"`
	Features   RawFeatures `json:"features"`
}

var ErrInvalidSubmission = errors.New("telemetry: invalid submission")

// Service ingests events: it derives sentiment, stamps identity and time,
// and appends to the event store. Events it produces are immutable.
type Service struct {
	repo  Repository
	clock func() time.Time
	idgen func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now, idgen: uuid.NewString}
}

func (s *Service) SubmitEvent(ctx context.Context, workspaceID string, sub Submission) (Event, error) {
	if s.repo == nil {
		return Event{}, errors.New("telemetry: repository not configured")
	}
	if workspaceID == "" {
		return Event{}, ErrInvalidSubmission
	}
	if sub.UserID == "" {
		return Event{}, ErrInvalidSubmission
	}

	e := Event{
		EventID:     s.idgen(),
		WorkspaceID: workspaceID,
		UserID:      sub.UserID,
		UserName:    sub.UserName,
		Department:  sub.Department,
		Timestamp:   s.clock().UTC(),
		Features:    sub.Features,
		Sentiment:   SentimentScore(sub.Features.MessageText),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) GetEvent(ctx context.Context, workspaceID, eventID string) (Event, error) {
	return s.repo.Get(ctx, workspaceID, eventID)
}

func (s *Service) ListEvents(ctx context.Context, workspaceID string) ([]Event, error) {
	return s.repo.List(ctx, workspaceID)
}
