package alerts

import (
	"time"

	"sentinel-platform/internal/scoring"
	"sentinel-platform/internal/telemetry"
)

// Alert is a scored, triaged unit of investigation derived from one event.
//
// Invariants:
// - Alerts are never deleted; closure is expressed through Status.
// - Score and Contributions are fixed at creation; only Status, AssignedTo,
//   and CaseID change afterwards, and only through lifecycle operations.
// - workspace_id is required for tenancy isolation.

type Alert struct {
	AlertID     string `json:"alert_id"`
	WorkspaceID string `json:"workspace_id"`

	Event telemetry.Event `json:"event"`

	Score         float64               `json:"score"`
	Contributions scoring.Contributions `json:"contributions"`
	Severity      string                `json:"severity"`

	Status Status `json:"status"`

	CreatedAt  time.Time `json:"created_at"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CaseID     string    `json:"case_id,omitempty"`
}

type Status string

const (
	StatusNew                Status = "new"
	StatusTriaged            Status = "triaged"
	StatusUnderInvestigation Status = "under_investigation"
	StatusMitigated          Status = "mitigated"

	// StatusClosed is reserved for alerts retired without remediation.
	// Closing a case deliberately does not move its alert here; the alert
	// keeps its investigation history.
	StatusClosed Status = "closed"
)

// Mitigated reports whether the alert reached its terminal remediated state.
func (a Alert) Mitigated() bool { return a.Status == StatusMitigated }
