package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sentinel-platform/internal/alerts"
	"sentinel-platform/internal/audit"
	"sentinel-platform/internal/auth"
	"sentinel-platform/internal/cases"
	"sentinel-platform/internal/config"
	"sentinel-platform/internal/gamification"
	"sentinel-platform/internal/httpapi"
	"sentinel-platform/internal/lifecycle"
	"sentinel-platform/internal/pipeline"
	"sentinel-platform/internal/remediation"
	"sentinel-platform/internal/reporting"
	"sentinel-platform/internal/telemetry"
	"sentinel-platform/pkg/logger"
	"sentinel-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	// Stores. Events, alerts, and cases live in memory; the audit ledger
	// moves to Postgres when a DB is configured.
	eventRepo := telemetry.NewMemoryRepo()
	alertRepo := alerts.NewMemoryRepo()
	caseRepo := cases.NewMemoryRepo()

	var auditRepo audit.Repository = audit.NewMemoryRepo()
	if cfg.DBEnabled() {
		db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		auditRepo = audit.NewPostgresRepo(db)
	}

	var rdb *redis.Client
	var board gamification.Leaderboard = gamification.NewMemoryLeaderboard()
	if cfg.RedisEnabled() {
		rdb, err = utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		board = gamification.NewRedisLeaderboard(rdb)
	}

	// Services
	auditSvc := audit.NewService(auditRepo)
	events := telemetry.NewService(eventRepo)
	sim := telemetry.NewSimulator(telemetry.DefaultUsers(), rand.New(rand.NewSource(time.Now().UnixNano())))
	gate := remediation.NewService(alertRepo, auditSvc, remediation.Policy{
		Enabled:   cfg.Automation.Enabled,
		Threshold: cfg.Automation.Threshold,
	})
	flow := pipeline.NewService(events, sim, alerts.NewFactory(), alertRepo, gate)
	life := lifecycle.NewService(alertRepo, caseRepo, auditSvc)
	drills := gamification.NewService(gamification.NewMemoryDrillRepo(), gamification.NewMemoryBadgeRepo(), board, flow)
	reports := reporting.NewService(reporting.StoreRepository{Alerts: alertRepo, Cases: caseRepo})

	if cfg.Sim.Enabled {
		sched := pipeline.NewScheduler(flow, cfg.Sim.WorkspaceID, cfg.Sim.Interval, log)
		go sched.Run(rootCtx)
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	h := httpapi.Handlers{
		Auth:      authManager,
		Events:    events,
		Pipeline:  flow,
		Lifecycle: life,
		Alerts:    alertRepo,
		Cases:     caseRepo,
		Audit:     auditSvc,
		Gate:      gate,
		Drills:    drills,
		Reports:   reports,
		Redis:     rdb,
	}
	registerRoutes(r, auth.RequireAccessToken(authManager), h)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}

	_ = logger.ShutdownFlush(shutdownCtx, 2*time.Second)
}
