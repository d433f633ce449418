package cases

import "time"

// Case is a formally opened investigation record derived from one alert.
//
// Invariants:
// - Exactly one active case per alert; the lifecycle service guards this.
// - User fields and Score are a denormalized snapshot taken at creation
//   time; they do not track later event or alert changes.
// - Cases are never deleted; closure is expressed through Status.

type Case struct {
	CaseID      string `json:"case_id"`
	WorkspaceID string `json:"workspace_id"`

	AlertID string `json:"alert_id"`

	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Department string  `json:"department"`
	Score      float64 `json:"score"`

	Status Status `json:"status"`

	AssignedTo string `json:"assigned_to,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)
