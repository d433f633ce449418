package reporting

import (
	"context"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/cases"
)

// StoreRepository adapts the live alert and case stores to the reporting
// Repository. Reads are snapshots; reporting never mutates.
type StoreRepository struct {
	Alerts alerts.Repository
	Cases  cases.Repository
}

func (r StoreRepository) ListAlerts(ctx context.Context, workspaceID string) ([]alerts.Alert, error) {
	return r.Alerts.List(ctx, workspaceID)
}

func (r StoreRepository) ListCases(ctx context.Context, workspaceID string) ([]cases.Case, error) {
	return r.Cases.List(ctx, workspaceID)
}
