package main

import (
	"sentinel-platform/internal/auth"
	"sentinel-platform/internal/httpapi"
	"sentinel-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, authMW gin.HandlerFunc, h httpapi.Handlers) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	v1.Use(rbac.RequireWorkspace())
	{
		v1.GET("/me", func(c *gin.Context) {
			aid, _ := auth.AnalystID(c.Request.Context())
			wid, _ := auth.WorkspaceID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"analyst_id": aid, "workspace_id": wid, "role": role})
		})

		// TELEMETRY routes
		events := v1.Group("/events")
		events.Use(rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead))
		{
			events.POST("", h.SubmitEvent)
			events.POST("/simulate", h.SimulateEvent)
			events.GET("", h.ListEvents)
		}

		// What-if scoring; open to any workspace role including auditors.
		v1.POST("/evaluate",
			rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead, rbac.RoleAuditor),
			h.Evaluate)

		// ALERT routes
		alertsGroup := v1.Group("/alerts")
		alertsGroup.Use(rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead))
		{
			alertsGroup.POST("", h.GenerateAlert)
			alertsGroup.GET("", h.ListAlerts)
			alertsGroup.GET("/:alert_id", h.GetAlert)
			alertsGroup.POST("/:alert_id/assign", h.AssignAlert)
			alertsGroup.POST("/:alert_id/case", h.CreateCase)

			// Manual action attempts go through the same gate as sweeps.
			// The hidden responder role is explicitly allowed here.
			alertsGroup.POST("/:alert_id/actions",
				rbac.RequireAnyRole(rbac.RoleSOCLead, rbac.RoleResponder),
				h.AttemptAction)
		}

		// CASE routes
		casesGroup := v1.Group("/cases")
		casesGroup.Use(rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead, rbac.RoleAuditor))
		{
			casesGroup.GET("", h.ListCases)
			casesGroup.GET("/export", h.ExportCases)
			casesGroup.POST("/:case_id/close",
				rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead),
				h.CloseCase)
		}

		// ACTION routes (bulk)
		actions := v1.Group("/actions")
		actions.Use(rbac.RequireAnyRole(rbac.RoleSOCLead, rbac.RoleResponder))
		{
			actions.POST("/sweep", h.Sweep)
		}

		// AUDIT routes; the ledger is readable by auditors and leads only.
		auditGroup := v1.Group("/audit")
		auditGroup.Use(rbac.RequireAnyRole(rbac.RoleAuditor, rbac.RoleSOCLead))
		{
			auditGroup.GET("", h.ListAudit)
		}

		// DRILL routes
		drillsGroup := v1.Group("/drills")
		drillsGroup.Use(rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead))
		{
			drillsGroup.POST("", h.StartDrill)
			drillsGroup.POST("/:drill_id/submit", h.SubmitDrill)
		}
		v1.GET("/leaderboard",
			rbac.RequireAnyRole(rbac.RoleAnalyst, rbac.RoleSOCLead, rbac.RoleAuditor),
			h.Leaderboard)

		// REPORTING routes
		v1.GET("/reports/summary",
			rbac.RequireAnyRole(rbac.RoleSOCLead, rbac.RoleAuditor),
			h.ReportSummary)

		// ADMIN routes
		// Only super_admin can change the automation policy; soc_lead can
		// read it and drive the simulator by hand.
		admin := v1.Group("/settings")
		{
			admin.GET("/automation",
				rbac.RequireAnyRole(rbac.RoleSOCLead, rbac.RoleAuditor),
				h.GetAutomationPolicy)
			admin.PUT("/automation",
				rbac.RequireAnyRole(rbac.RoleSuperAdmin),
				h.SetAutomationPolicy)
		}
		v1.POST("/sim/step",
			rbac.RequireAnyRole(rbac.RoleSOCLead),
			h.SimStep)
	}
}
