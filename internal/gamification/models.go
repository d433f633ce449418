package gamification

import (
	"time"

	"sentinel-platform/internal/alerts"
)

// Drill parameters. A drill presents DrillSize synthetic alerts; the
// analyst judges each as a true threat or noise, graded against the
// generated score.
const (
	DrillSize            = 5
	GroundTruthThreshold = 0.60
	PointsPerCorrect     = 10

	BadgeSandboxMaster = "Sandbox Master"
)

// Drill is one sandbox training session. Truth is fixed when the drill is
// created, before the analyst sees the alerts.
type Drill struct {
	DrillID     string         `json:"drill_id"`
	WorkspaceID string         `json:"workspace_id"`
	AnalystID   string         `json:"analyst_id"`
	Alerts      []alerts.Alert `json:"alerts"`
	Truth       []bool         `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	Completed   bool           `json:"completed"`
}

// Result grades a completed drill.
type Result struct {
	DrillID string `json:"drill_id"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Points  int    `json:"points"`
	Badge   string `json:"badge,omitempty"`
}

// Standing is one leaderboard row.
type Standing struct {
	AnalystID string `json:"analyst_id"`
	Points    int    `json:"points"`
}
