package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for the action ledger.
//
// It MUST be append-only; no Update or Delete methods are provided.

type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, workspaceID string) ([]Entry, error)
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

// Service appends ledger entries. Unlike advisory logging, the ledger here
// participates in the remediation contract: a failed append must abort the
// action it records, so errors are returned, not swallowed.
type Service struct {
	repo  Repository
	clock func() time.Time
	idgen func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now, idgen: uuid.NewString}
}

func (s *Service) Append(ctx context.Context, e Entry) (Entry, error) {
	if s.repo == nil {
		return Entry{}, errors.New("audit: repository not configured")
	}
	if e.WorkspaceID == "" {
		return Entry{}, ErrInvalidEntry
	}
	if e.AlertID == "" || e.Action == "" {
		return Entry{}, ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = s.idgen()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// LogAction records one action attempt against an alert.
func (s *Service) LogAction(ctx context.Context, workspaceID, alertID, action, actor string, score float64) (Entry, error) {
	return s.Append(ctx, Entry{
		WorkspaceID: workspaceID,
		AlertID:     alertID,
		Action:      action,
		Actor:       actor,
		Score:       score,
		Details:     fmt.Sprintf("action executed: %s", action),
	})
}

func (s *Service) List(ctx context.Context, workspaceID string) ([]Entry, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	return s.repo.List(ctx, workspaceID)
}
