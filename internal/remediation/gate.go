package remediation

import (
	"context"
	"errors"
	"sync"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/audit"
)

// ActionKind identifies an automated action.
type ActionKind string

const (
	KindIsolateEndpoint ActionKind = "isolate_endpoint"
	KindLockAccount     ActionKind = "lock_account"

	// KindNotifySecurity records a notification without changing alert
	// status; it is audited like any other action.
	KindNotifySecurity ActionKind = "notify_security"
)

// IsRemediation reports whether the action kind transitions the alert to
// mitigated on success.
func IsRemediation(kind ActionKind) bool {
	return kind == KindIsolateEndpoint || kind == KindLockAccount
}

// DefaultThreshold is the gate's score threshold when none is configured.
const DefaultThreshold = 0.65

// Rejection reasons. A rejected attempt is a normal result, not an error,
// and leaves all state (alert status, ledger length) untouched.
const (
	ReasonAutoDisabled        = "auto_actions_disabled"
	ReasonScoreBelowThreshold = "score_below_threshold"
)

// Policy is the collaborator-owned automation configuration: a global
// enable flag plus the score threshold in [0, 1].
type Policy struct {
	Enabled   bool    `json:"auto_enabled"`
	Threshold float64 `json:"auto_threshold"`
}

// Outcome reports one gate invocation. When Applied is false, Reason says
// why; when true, Entry is the ledger record that was appended.
type Outcome struct {
	Applied bool        `json:"applied"`
	Reason  string      `json:"reason,omitempty"`
	Entry   audit.Entry `json:"entry,omitempty"`
}

var ErrInvalidThreshold = errors.New("remediation: threshold must be in [0,1]")

// Service is the automated action gate. Exactly one audit entry is appended
// per successful attempt; the ledger records attempts, so remediating an
// already-mitigated alert appends again.
type Service struct {
	alerts alerts.Repository
	audit  *audit.Service

	mu     sync.Mutex
	policy Policy
}

func NewService(alertRepo alerts.Repository, auditSvc *audit.Service, policy Policy) *Service {
	if policy.Threshold <= 0 {
		policy.Threshold = DefaultThreshold
	}
	return &Service{alerts: alertRepo, audit: auditSvc, policy: policy}
}

func (s *Service) Policy() Policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

func (s *Service) SetPolicy(p Policy) error {
	if p.Threshold < 0 || p.Threshold > 1 {
		return ErrInvalidThreshold
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = p
	return nil
}

// Attempt runs the gate for one alert.
//
// The ledger append happens before the status transition: if the append
// fails the attempt errors out with nothing applied, so an entry and its
// transition always land together.
func (s *Service) Attempt(ctx context.Context, workspaceID, alertID string, kind ActionKind, actor string) (Outcome, error) {
	if workspaceID == "" || alertID == "" || kind == "" || actor == "" {
		return Outcome{}, errors.New("remediation: invalid argument")
	}

	policy := s.Policy()
	if !policy.Enabled {
		return Outcome{Reason: ReasonAutoDisabled}, nil
	}

	a, err := s.alerts.Get(ctx, workspaceID, alertID)
	if err != nil {
		return Outcome{}, err
	}
	if a.Score < policy.Threshold {
		return Outcome{Reason: ReasonScoreBelowThreshold}, nil
	}

	entry, err := s.audit.LogAction(ctx, workspaceID, alertID, string(kind), actor, a.Score)
	if err != nil {
		return Outcome{}, err
	}

	if IsRemediation(kind) {
		if _, err := s.alerts.Update(ctx, workspaceID, alertID, func(a *alerts.Alert) error {
			a.Status = alerts.StatusMitigated
			return nil
		}); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Applied: true, Entry: entry}, nil
}

// Sweep applies the gate to every alert not already mitigated or under
// investigation, in a single pass in store iteration order, and returns the
// number of actions taken. It is bounded by the alert count and is not
// interruptible mid-pass.
func (s *Service) Sweep(ctx context.Context, workspaceID, actor string) (int, error) {
	if workspaceID == "" {
		return 0, errors.New("remediation: invalid argument")
	}
	if !s.Policy().Enabled {
		return 0, nil
	}

	all, err := s.alerts.List(ctx, workspaceID)
	if err != nil {
		return 0, err
	}

	taken := 0
	for _, a := range all {
		if a.Status == alerts.StatusMitigated || a.Status == alerts.StatusUnderInvestigation {
			continue
		}
		out, err := s.Attempt(ctx, workspaceID, a.AlertID, KindIsolateEndpoint, actor)
		if err != nil {
			return taken, err
		}
		if out.Applied {
			taken++
		}
	}
	return taken, nil
}
