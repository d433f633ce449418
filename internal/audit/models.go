package audit

import "time"

// Entry is an immutable, append-only record of one automated or
// analyst-triggered action against an alert.
//
// Invariants:
// - Entries are never updated or deleted; the ledger's total order is
//   insertion order.
// - The ledger records attempts, not deduplicated state: repeated
//   remediation of an already-mitigated alert appends new entries.
// - workspace_id is required for tenancy isolation.
// - Score captures the alert's risk score at the time of the action.
//
// Storage recommendation (Postgres):
// - Table audit_entries with an INSERT-only policy.
// - Optional: trigger to prevent UPDATE/DELETE.

type Entry struct {
	ID          string `json:"id" db:"id"`
	WorkspaceID string `json:"workspace_id" db:"workspace_id"`

	AlertID string `json:"alert_id" db:"alert_id"`

	// Action is the action kind taken (e.g. isolate_endpoint, assigned).
	Action string `json:"action" db:"action"`

	// Actor is the analyst id or automation identity that triggered it.
	Actor string `json:"actor" db:"actor"`

	Score float64 `json:"score" db:"score"`

	// Details is a short human-readable description for internal ops.
	Details string `json:"details,omitempty" db:"details"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
