package config

import (
	"testing"
	"time"
)

func validLocal() Config {
	return Config{
		App:        AppConfig{Env: "local", Port: 8080},
		Automation: AutomationConfig{Enabled: true, Threshold: 0.65},
		Auth:       AuthConfig{JWTSecret: "secret"},
	}
}

func TestLoad_ReportsMissingRequired(t *testing.T) {
	c := Config{}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestValidate_LocalRunsWithoutBackingServices(t *testing.T) {
	c := validLocal()
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.DBEnabled() || c.RedisEnabled() {
		t.Fatalf("expected optional backends disabled")
	}
}

func TestValidate_ProductionRequiresDB(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "sentinel"
	c.Auth.JWTAudience = "api"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_HOST")
	}
}

func TestValidate_ProductionRequiresSSLMode(t *testing.T) {
	c := validLocal()
	c.App.Env = "production"
	c.Auth.JWTIssuer = "sentinel"
	c.Auth.JWTAudience = "api"
	c.DB = DBConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "x", Name: "sentinel", SSLMode: ""}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for production without DB_SSLMODE")
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	c := validLocal()
	c.Automation.Threshold = 1.2
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for threshold above 1")
	}
	c.Automation.Threshold = -0.1
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for negative threshold")
	}
}

func TestValidate_SimRequiresWorkspace(t *testing.T) {
	c := validLocal()
	c.Sim = SimConfig{Enabled: true, Interval: 5 * time.Second}
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for SIM_ENABLED without SIM_WORKSPACE_ID")
	}
	c.Sim.WorkspaceID = "w"
	if err := c.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AUTO_ENABLED", "true")
	t.Setenv("AUTO_THRESHOLD", "0.7")
	t.Setenv("SIM_ENABLED", "1")
	t.Setenv("SIM_INTERVAL_SECONDS", "2")
	t.Setenv("SIM_WORKSPACE_ID", "w")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_HOST", "")

	c, err := Load()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !c.Automation.Enabled || c.Automation.Threshold != 0.7 {
		t.Fatalf("unexpected automation config: %+v", c.Automation)
	}
	if !c.Sim.Enabled || c.Sim.Interval != 2*time.Second || c.Sim.WorkspaceID != "w" {
		t.Fatalf("unexpected sim config: %+v", c.Sim)
	}
	if c.HTTPAddr() != ":8080" {
		t.Fatalf("unexpected addr %q", c.HTTPAddr())
	}
}

func TestLoad_BadThreshold(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AUTO_THRESHOLD", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}
