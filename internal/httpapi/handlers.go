package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/audit"
	"sentinel-platform/internal/auth"
	"sentinel-platform/internal/cases"
	"sentinel-platform/internal/gamification"
	"sentinel-platform/internal/lifecycle"
	"sentinel-platform/internal/pipeline"
	"sentinel-platform/internal/rbac"
	"sentinel-platform/internal/remediation"
	"sentinel-platform/internal/reporting"
	"sentinel-platform/internal/telemetry"
	"sentinel-platform/pkg/utils"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth      *auth.Manager
	Events    *telemetry.Service
	Pipeline  *pipeline.Service
	Lifecycle *lifecycle.Service
	Alerts    alerts.Repository
	Cases     cases.Repository
	Audit     *audit.Service
	Gate      *remediation.Service
	Drills    *gamification.Service
	Reports   *reporting.Service

	// Redis is optional; when present, sweeps are serialized across
	// instances with a per-workspace lock.
	Redis *redis.Client
}

// --- Auth ---

type loginRequest struct {
	AnalystID   string `json:"analyst_id"`
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.AnalystID == "" || req.WorkspaceID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "analyst_id, workspace_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.AnalystID, req.WorkspaceID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Telemetry ---

func (h Handlers) SubmitEvent(c *gin.Context) {
	wid, analystOK := h.identity(c)
	if !analystOK {
		return
	}
	var sub telemetry.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Events.SubmitEvent(c.Request.Context(), wid, sub)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListEvents(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	evs, err := h.Events.ListEvents(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evs})
}

// SimulateEvent ingests one simulator draw as a real event.
func (h Handlers) SimulateEvent(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	e, err := h.Pipeline.SimulateEvent(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// Evaluate scores raw features without persisting anything.
func (h Handlers) Evaluate(c *gin.Context) {
	var raw telemetry.RawFeatures
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	score, contrib := h.Pipeline.Evaluate(raw)
	c.JSON(http.StatusOK, gin.H{"score": score, "contributions": contrib})
}

// --- Alerts ---

type generateAlertRequest struct {
	EventID string `json:"event_id"`
}

func (h Handlers) GenerateAlert(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	var req generateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EventID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "event_id required"})
		return
	}
	a, err := h.Pipeline.GenerateAlert(c.Request.Context(), wid, req.EventID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h Handlers) ListAlerts(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	as, err := h.Alerts.List(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": as})
}

func (h Handlers) GetAlert(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	a, err := h.Alerts.Get(c.Request.Context(), wid, c.Param("alert_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// --- Lifecycle ---

type assignRequest struct {
	AnalystID string `json:"analyst_id"`
}

func (h Handlers) AssignAlert(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalystID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "analyst_id required"})
		return
	}
	a, rej, err := h.Lifecycle.Assign(c.Request.Context(), wid, c.Param("alert_id"), req.AnalystID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rej.Rejected() {
		c.JSON(http.StatusConflict, gin.H{"error": rej.Reason})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h Handlers) CreateCase(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	actor, _ := auth.AnalystID(c.Request.Context())
	cs, rej, err := h.Lifecycle.CreateCase(c.Request.Context(), wid, c.Param("alert_id"), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rej.Rejected() {
		c.JSON(http.StatusConflict, gin.H{"error": rej.Reason})
		return
	}
	c.JSON(http.StatusCreated, cs)
}

func (h Handlers) CloseCase(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	actor, _ := auth.AnalystID(c.Request.Context())
	cs, rej, err := h.Lifecycle.CloseCase(c.Request.Context(), wid, c.Param("case_id"), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	if rej.Rejected() {
		c.JSON(http.StatusConflict, gin.H{"error": rej.Reason})
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h Handlers) ListCases(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	cs, err := h.Cases.List(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": cs})
}

// ExportCases streams the workspace's cases as CSV.
func (h Handlers) ExportCases(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	snapshot, err := h.Cases.List(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="cases.csv"`)
	c.Status(http.StatusOK)
	if err := cases.WriteCSV(c.Writer, snapshot); err != nil {
		_ = c.Error(err)
	}
}

// --- Actions ---

type actionRequest struct {
	Kind string `json:"kind"`
}

func (h Handlers) AttemptAction(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	actor, _ := auth.AnalystID(c.Request.Context())
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "kind required"})
		return
	}
	out, err := h.Gate.Attempt(c.Request.Context(), wid, c.Param("alert_id"), remediation.ActionKind(req.Kind), actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	// A rejection is a normal gate outcome, not an HTTP failure.
	c.JSON(http.StatusOK, out)
}

func (h Handlers) Sweep(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	actor, _ := auth.AnalystID(c.Request.Context())

	if h.Redis != nil {
		owner := uuid.NewString()
		acquired, err := utils.AcquireSweepLock(c.Request.Context(), h.Redis, wid, owner, 30*time.Second)
		if err != nil {
			h.fail(c, err)
			return
		}
		if !acquired {
			c.JSON(http.StatusConflict, gin.H{"error": "sweep already running"})
			return
		}
		defer func() {
			_ = utils.ReleaseSweepLock(c.Request.Context(), h.Redis, wid, owner)
		}()
	}

	taken, err := h.Gate.Sweep(c.Request.Context(), wid, actor)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"actions_taken": taken})
}

// --- Settings ---

func (h Handlers) GetAutomationPolicy(c *gin.Context) {
	c.JSON(http.StatusOK, h.Gate.Policy())
}

func (h Handlers) SetAutomationPolicy(c *gin.Context) {
	var p remediation.Policy
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Gate.SetPolicy(p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.Gate.Policy())
}

// --- Audit ---

func (h Handlers) ListAudit(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	entries, err := h.Audit.List(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// --- Drills ---

func (h Handlers) StartDrill(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	analystID, _ := auth.AnalystID(c.Request.Context())
	d, err := h.Drills.StartDrill(c.Request.Context(), wid, analystID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

type drillSubmission struct {
	Judgments []bool `json:"judgments"`
}

func (h Handlers) SubmitDrill(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	var req drillSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Drills.SubmitDrill(c.Request.Context(), wid, c.Param("drill_id"), req.Judgments)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) Leaderboard(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	entries, err := h.Drills.Leaderboard(c.Request.Context(), wid, 10)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// --- Reporting ---

func (h Handlers) ReportSummary(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	sum, err := h.Reports.Summarize(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// --- Simulation ---

func (h Handlers) SimStep(c *gin.Context) {
	wid, ok := h.identity(c)
	if !ok {
		return
	}
	a, out, err := h.Pipeline.Step(c.Request.Context(), wid)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert": a, "outcome": out})
}

// --- Helpers ---

func (h Handlers) identity(c *gin.Context) (string, bool) {
	wid, err := auth.WorkspaceID(c.Request.Context())
	if err != nil || wid == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "workspace_id required"})
		return "", false
	}
	return wid, true
}

func (h Handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, alerts.ErrNotFound),
		errors.Is(err, cases.ErrNotFound),
		errors.Is(err, telemetry.ErrEventNotFound),
		errors.Is(err, gamification.ErrDrillNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, telemetry.ErrInvalidSubmission),
		errors.Is(err, lifecycle.ErrInvalidArgument),
		errors.Is(err, pipeline.ErrInvalidArgument),
		errors.Is(err, gamification.ErrInvalidArgument),
		errors.Is(err, gamification.ErrJudgmentCount),
		errors.Is(err, audit.ErrInvalidEntry):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gamification.ErrDrillCompleted):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// Convenience middleware bundles.

func RequireWorkspaceAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireWorkspace(), rbac.RequireAnyRole(roles...)}
}
