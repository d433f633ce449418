package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/audit"
	"sentinel-platform/internal/cases"
	"sentinel-platform/internal/telemetry"
)

func newFixture(t *testing.T) (*Service, *alerts.MemoryRepo, *cases.MemoryRepo, *audit.MemoryRepo) {
	t.Helper()
	alertRepo := alerts.NewMemoryRepo()
	caseRepo := cases.NewMemoryRepo()
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(alertRepo, caseRepo, audit.NewService(auditRepo))
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	svc.idgen = func() string { return "case1" }
	return svc, alertRepo, caseRepo, auditRepo
}

func seedAlert(t *testing.T, repo *alerts.MemoryRepo, a alerts.Alert) alerts.Alert {
	t.Helper()
	if a.AlertID == "" {
		a.AlertID = "al1"
	}
	if a.WorkspaceID == "" {
		a.WorkspaceID = "w"
	}
	if a.Status == "" {
		a.Status = alerts.StatusNew
	}
	if err := repo.Append(context.Background(), a); err != nil {
		t.Fatalf("seed alert: %v", err)
	}
	return a
}

func TestAssign_MovesToTriagedAndAudits(t *testing.T) {
	svc, alertRepo, _, auditRepo := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{Score: 0.5})

	a, rej, err := svc.Assign(context.Background(), "w", "al1", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rej.Rejected() {
		t.Fatalf("unexpected rejection: %q", rej.Reason)
	}
	if a.Status != alerts.StatusTriaged || a.AssignedTo != "analyst7" {
		t.Fatalf("unexpected alert state: %+v", a)
	}

	evs := auditRepo.Entries()
	if len(evs) != 1 || evs[0].Action != "assigned" || evs[0].Actor != "analyst7" {
		t.Fatalf("expected one assigned entry, got %+v", evs)
	}
}

func TestAssign_ReassignmentOverwritesAnalyst(t *testing.T) {
	svc, alertRepo, _, _ := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{})

	if _, _, err := svc.Assign(context.Background(), "w", "al1", "analyst1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	a, rej, err := svc.Assign(context.Background(), "w", "al1", "analyst2")
	if err != nil || rej.Rejected() {
		t.Fatalf("reassignment must be allowed: %v %v", err, rej)
	}
	if a.AssignedTo != "analyst2" {
		t.Fatalf("expected analyst overwritten, got %q", a.AssignedTo)
	}
}

func TestAssign_MitigatedAlertIsRefusedWithoutSideEffects(t *testing.T) {
	svc, alertRepo, _, auditRepo := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{Status: alerts.StatusMitigated})

	a, rej, err := svc.Assign(context.Background(), "w", "al1", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !rej.Rejected() || rej.Reason != ReasonAlreadyMitigated {
		t.Fatalf("expected mitigated rejection, got %+v", rej)
	}
	if a.Status != alerts.StatusMitigated || a.AssignedTo != "" {
		t.Fatalf("rejection must not mutate the alert: %+v", a)
	}
	if len(auditRepo.Entries()) != 0 {
		t.Fatalf("rejection must not reach the ledger")
	}
}

// racingAlertRepo mitigates the alert inside Update before applying fn,
// modeling a sweep landing between an operation's pre-check and its update.
type racingAlertRepo struct {
	*alerts.MemoryRepo
}

func (r *racingAlertRepo) Update(ctx context.Context, workspaceID, alertID string, fn func(*alerts.Alert) error) (alerts.Alert, error) {
	if _, err := r.MemoryRepo.Update(ctx, workspaceID, alertID, func(a *alerts.Alert) error {
		a.Status = alerts.StatusMitigated
		return nil
	}); err != nil {
		return alerts.Alert{}, err
	}
	return r.MemoryRepo.Update(ctx, workspaceID, alertID, fn)
}

func TestAssign_ConcurrentMitigationLeavesLedgerUntouched(t *testing.T) {
	alertRepo := &racingAlertRepo{MemoryRepo: alerts.NewMemoryRepo()}
	auditRepo := audit.NewMemoryRepo()
	svc := NewService(alertRepo, cases.NewMemoryRepo(), audit.NewService(auditRepo))
	seedAlert(t, alertRepo.MemoryRepo, alerts.Alert{Score: 0.9})

	_, _, err := svc.Assign(context.Background(), "w", "al1", "analyst1")
	if err == nil {
		t.Fatalf("expected guard error")
	}
	if evs := auditRepo.Entries(); len(evs) != 0 {
		t.Fatalf("refused transition must not reach the ledger, got %+v", evs)
	}

	a, _ := alertRepo.MemoryRepo.Get(context.Background(), "w", "al1")
	if a.AssignedTo != "" {
		t.Fatalf("refused transition must not assign, got %+v", a)
	}
}

func TestAssign_UnknownAlertIsNotFound(t *testing.T) {
	svc, _, _, _ := newFixture(t)
	_, _, err := svc.Assign(context.Background(), "w", "missing", "analyst7")
	if !errors.Is(err, alerts.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateCase_SnapshotsAlertAndLinksIt(t *testing.T) {
	svc, alertRepo, caseRepo, auditRepo := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{
		Score:      0.83,
		AssignedTo: "analyst7",
		Status:     alerts.StatusTriaged,
		Event: telemetry.Event{
			EventID: "ev1", WorkspaceID: "w",
			UserID: "u001", UserName: "Alice", Department: "Engineering",
		},
	})

	c, rej, err := svc.CreateCase(context.Background(), "w", "al1", "analyst7")
	if err != nil || rej.Rejected() {
		t.Fatalf("unexpected failure: %v %v", err, rej)
	}
	if c.CaseID != "case1" || c.AlertID != "al1" {
		t.Fatalf("unexpected case identity: %+v", c)
	}
	if c.UserName != "Alice" || c.Department != "Engineering" || c.Score != 0.83 {
		t.Fatalf("expected snapshot of user fields and score: %+v", c)
	}
	if c.Status != cases.StatusOpen {
		t.Fatalf("expected open case, got %q", c.Status)
	}

	a, _ := alertRepo.Get(context.Background(), "w", "al1")
	if a.CaseID != "case1" || a.Status != alerts.StatusUnderInvestigation {
		t.Fatalf("expected alert linked and under investigation: %+v", a)
	}

	if got, _ := caseRepo.Get(context.Background(), "w", "case1"); got.CaseID != "case1" {
		t.Fatalf("expected case persisted, got %+v", got)
	}
	evs := auditRepo.Entries()
	if len(evs) != 1 || evs[0].Action != "case_created" {
		t.Fatalf("expected case_created audit entry, got %+v", evs)
	}
}

func TestCreateCase_DuplicateIsRefused(t *testing.T) {
	svc, alertRepo, caseRepo, _ := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{Event: telemetry.Event{UserID: "u001"}})

	if _, rej, err := svc.CreateCase(context.Background(), "w", "al1", "analyst7"); err != nil || rej.Rejected() {
		t.Fatalf("first case must succeed: %v %v", err, rej)
	}
	_, rej, err := svc.CreateCase(context.Background(), "w", "al1", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !rej.Rejected() || rej.Reason != ReasonCaseAlreadyExists {
		t.Fatalf("expected duplicate-case rejection, got %+v", rej)
	}
	if got, _ := caseRepo.List(context.Background(), "w"); len(got) != 1 {
		t.Fatalf("expected a single case, got %d", len(got))
	}
}

func TestCloseCase_ClosesCaseButPreservesAlertStatus(t *testing.T) {
	svc, alertRepo, _, auditRepo := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{Event: telemetry.Event{UserID: "u001"}})

	c, _, err := svc.CreateCase(context.Background(), "w", "al1", "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	closed, rej, err := svc.CloseCase(context.Background(), "w", c.CaseID, "analyst7")
	if err != nil || rej.Rejected() {
		t.Fatalf("unexpected failure: %v %v", err, rej)
	}
	if closed.Status != cases.StatusClosed || closed.ClosedAt == nil {
		t.Fatalf("expected closed case, got %+v", closed)
	}

	// Intentional decoupling: closing the case never touches the alert.
	a, _ := alertRepo.Get(context.Background(), "w", "al1")
	if a.Status != alerts.StatusUnderInvestigation {
		t.Fatalf("alert status must survive case closure, got %q", a.Status)
	}

	evs := auditRepo.Entries()
	if len(evs) != 2 || evs[1].Action != "case_closed" {
		t.Fatalf("expected case_closed audit entry, got %+v", evs)
	}
}

func TestCloseCase_ClosedCaseIsRefused(t *testing.T) {
	svc, alertRepo, _, auditRepo := newFixture(t)
	seedAlert(t, alertRepo, alerts.Alert{Event: telemetry.Event{UserID: "u001"}})

	c, _, _ := svc.CreateCase(context.Background(), "w", "al1", "analyst7")
	if _, _, err := svc.CloseCase(context.Background(), "w", c.CaseID, "analyst7"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	before := len(auditRepo.Entries())
	_, rej, err := svc.CloseCase(context.Background(), "w", c.CaseID, "analyst7")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !rej.Rejected() || rej.Reason != ReasonCaseAlreadyClosed {
		t.Fatalf("expected already-closed rejection, got %+v", rej)
	}
	if len(auditRepo.Entries()) != before {
		t.Fatalf("rejection must not append to the ledger")
	}
}
