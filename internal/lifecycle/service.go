package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/audit"
	"sentinel-platform/internal/cases"
)

// Audit action names recorded by lifecycle transitions.
const (
	actionAssigned    = "assigned"
	actionCaseCreated = "case_created"
	actionCaseClosed  = "case_closed"
)

// Rejection reasons. These are normal negative results, not errors.
const (
	ReasonAlreadyMitigated  = "alert_already_mitigated"
	ReasonCaseAlreadyExists = "case_already_exists"
	ReasonCaseAlreadyClosed = "case_already_closed"
)

// Rejection reports why a guarded transition was refused. The zero value
// means the transition was applied.
type Rejection struct {
	Reason string `json:"reason,omitempty"`
}

func (r Rejection) Rejected() bool { return r.Reason != "" }

var ErrInvalidArgument = errors.New("lifecycle: invalid argument")

// Service owns alert and case status transitions.
//
// Guards: the underlying prototype applied transitions unconditionally;
// here each operation checks its precondition and refuses with a Rejection
// instead of silently overwriting. The mutation re-checks its guard inside
// the store's update lock, and the audit entry is appended only after the
// guarded mutation succeeds, so a refused transition (for example an alert
// mitigated by a concurrent sweep between the pre-check and the update)
// never leaves an orphaned ledger entry. The appends validate only fields
// that are already present after a successful update; an append error is
// still surfaced to the caller.
type Service struct {
	alerts alerts.Repository
	cases  cases.Repository
	audit  *audit.Service

	clock func() time.Time
	idgen func() string
}

func NewService(alertRepo alerts.Repository, caseRepo cases.Repository, auditSvc *audit.Service) *Service {
	return &Service{
		alerts: alertRepo,
		cases:  caseRepo,
		audit:  auditSvc,
		clock:  time.Now,
		idgen:  uuid.NewString,
	}
}

// Assign sets the alert's analyst and moves it to triaged. Re-assignment is
// idempotent and overwrites the analyst; mitigated alerts are refused.
func (s *Service) Assign(ctx context.Context, workspaceID, alertID, analystID string) (alerts.Alert, Rejection, error) {
	if workspaceID == "" || alertID == "" || analystID == "" {
		return alerts.Alert{}, Rejection{}, ErrInvalidArgument
	}

	a, err := s.alerts.Get(ctx, workspaceID, alertID)
	if err != nil {
		return alerts.Alert{}, Rejection{}, err
	}
	if a.Mitigated() {
		return a, Rejection{Reason: ReasonAlreadyMitigated}, nil
	}

	updated, err := s.alerts.Update(ctx, workspaceID, alertID, func(a *alerts.Alert) error {
		if a.Mitigated() {
			return errors.New("lifecycle: alert mitigated concurrently")
		}
		a.AssignedTo = analystID
		a.Status = alerts.StatusTriaged
		return nil
	})
	if err != nil {
		return alerts.Alert{}, Rejection{}, err
	}

	if _, err := s.audit.LogAction(ctx, workspaceID, alertID, actionAssigned, analystID, updated.Score); err != nil {
		return alerts.Alert{}, Rejection{}, err
	}
	return updated, Rejection{}, nil
}

// CreateCase opens an investigation for the alert, snapshotting the user
// fields and score, and moves the alert to under_investigation. An alert
// can back at most one case.
func (s *Service) CreateCase(ctx context.Context, workspaceID, alertID, actor string) (cases.Case, Rejection, error) {
	if workspaceID == "" || alertID == "" {
		return cases.Case{}, Rejection{}, ErrInvalidArgument
	}

	a, err := s.alerts.Get(ctx, workspaceID, alertID)
	if err != nil {
		return cases.Case{}, Rejection{}, err
	}
	if a.CaseID != "" {
		return cases.Case{}, Rejection{Reason: ReasonCaseAlreadyExists}, nil
	}

	now := s.clock().UTC()
	c := cases.Case{
		CaseID:      s.idgen(),
		WorkspaceID: workspaceID,
		AlertID:     a.AlertID,
		UserID:      a.Event.UserID,
		UserName:    a.Event.UserName,
		Department:  a.Event.Department,
		Score:       a.Score,
		Status:      cases.StatusOpen,
		AssignedTo:  a.AssignedTo,
		CreatedAt:   now,
	}

	if _, err := s.alerts.Update(ctx, workspaceID, alertID, func(a *alerts.Alert) error {
		if a.CaseID != "" {
			return errors.New("lifecycle: case created concurrently")
		}
		a.CaseID = c.CaseID
		a.Status = alerts.StatusUnderInvestigation
		return nil
	}); err != nil {
		return cases.Case{}, Rejection{}, err
	}

	if err := s.cases.Append(ctx, c); err != nil {
		return cases.Case{}, Rejection{}, err
	}

	if _, err := s.audit.LogAction(ctx, workspaceID, alertID, actionCaseCreated, actor, a.Score); err != nil {
		return cases.Case{}, Rejection{}, err
	}
	return c, Rejection{}, nil
}

// CloseCase closes an open case. The linked alert's status is deliberately
// left untouched so the investigation history survives case closure.
func (s *Service) CloseCase(ctx context.Context, workspaceID, caseID, actor string) (cases.Case, Rejection, error) {
	if workspaceID == "" || caseID == "" {
		return cases.Case{}, Rejection{}, ErrInvalidArgument
	}

	c, err := s.cases.Get(ctx, workspaceID, caseID)
	if err != nil {
		return cases.Case{}, Rejection{}, err
	}
	if c.Status != cases.StatusOpen {
		return c, Rejection{Reason: ReasonCaseAlreadyClosed}, nil
	}

	now := s.clock().UTC()
	updated, err := s.cases.Update(ctx, workspaceID, caseID, func(c *cases.Case) error {
		if c.Status != cases.StatusOpen {
			return errors.New("lifecycle: case closed concurrently")
		}
		c.Status = cases.StatusClosed
		c.ClosedAt = &now
		return nil
	})
	if err != nil {
		return cases.Case{}, Rejection{}, err
	}

	if _, err := s.audit.LogAction(ctx, workspaceID, updated.AlertID, actionCaseClosed, actor, updated.Score); err != nil {
		return cases.Case{}, Rejection{}, err
	}
	return updated, Rejection{}, nil
}
