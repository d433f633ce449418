package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo persists the ledger in Postgres.
//
// Assumes the table:
//
//	audit_entries (id, workspace_id, alert_id, action, actor, score, details, created_at)
//
// with an INSERT-only policy. This repo has no UPDATE or DELETE statements.

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Entry) error {
	const q = `
INSERT INTO audit_entries (
  id, workspace_id, alert_id, action, actor, score, details, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.WorkspaceID,
		e.AlertID,
		e.Action,
		e.Actor,
		e.Score,
		e.Details,
		e.CreatedAt,
	)
	return err
}

func (r *PostgresRepo) List(ctx context.Context, workspaceID string) ([]Entry, error) {
	const q = `
SELECT id, workspace_id, alert_id, action, actor, score, details, created_at
FROM audit_entries
WHERE workspace_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.QueryContext(ctx, q, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID,
			&e.WorkspaceID,
			&e.AlertID,
			&e.Action,
			&e.Actor,
			&e.Score,
			&e.Details,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
