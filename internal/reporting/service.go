package reporting

import (
	"context"
	"errors"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/cases"
	"sentinel-platform/internal/scoring"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// Repository abstracts data access for reporting. Methods must enforce
// workspace filtering.
type Repository interface {
	ListAlerts(ctx context.Context, workspaceID string) ([]alerts.Alert, error)
	ListCases(ctx context.Context, workspaceID string) ([]cases.Case, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

const (
	sentimentPositiveAbove = 0.2
	sentimentNegativeBelow = -0.2
)

func (s *Service) Summarize(ctx context.Context, workspaceID string) (Summary, error) {
	if workspaceID == "" {
		return Summary{}, ErrInvalidRequest
	}
	if s.repo == nil {
		return Summary{}, errors.New("reporting: repository not configured")
	}

	alertRows, err := s.repo.ListAlerts(ctx, workspaceID)
	if err != nil {
		return Summary{}, err
	}
	caseRows, err := s.repo.ListCases(ctx, workspaceID)
	if err != nil {
		return Summary{}, err
	}

	out := Summary{
		WorkspaceID:    workspaceID,
		AlertsByStatus: make(map[string]int),
	}

	total := 0.0
	for _, a := range alertRows {
		out.TotalAlerts++
		out.AlertsByStatus[string(a.Status)]++
		if a.Mitigated() {
			out.MitigatedCount++
		}
		total += a.Score
		switch scoring.Severity(a.Score) {
		case scoring.SeverityHigh, scoring.SeverityCritical:
			out.HighRiskCount++
		}

		switch sent := a.Event.Sentiment; {
		case sent > sentimentPositiveAbove:
			out.Sentiment.Positive++
		case sent < sentimentNegativeBelow:
			out.Sentiment.Negative++
		default:
			out.Sentiment.Neutral++
		}
	}
	if out.TotalAlerts > 0 {
		out.AverageScore = total / float64(out.TotalAlerts)
	}

	for _, c := range caseRows {
		switch c.Status {
		case cases.StatusOpen:
			out.OpenCases++
		case cases.StatusClosed:
			out.ClosedCases++
		}
	}
	return out, nil
}
