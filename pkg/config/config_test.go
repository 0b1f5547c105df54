package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("unexpected port %s", cfg.Server.Port)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Fatalf("unexpected llm timeout %s", cfg.LLM.Timeout)
	}
	if cfg.LLM.Model != "deepseek/deepseek-r1-0528" {
		t.Fatalf("unexpected model %s", cfg.LLM.Model)
	}
	if cfg.Credits.Initial != 3 || cfg.Credits.LicenseKey != 10 {
		t.Fatalf("unexpected credit defaults %+v", cfg.Credits)
	}
	if cfg.RateLimit.Analyze != "10-M" {
		t.Fatalf("unexpected rate %s", cfg.RateLimit.Analyze)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("LLM_MAX_RETRIES", "2")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Fatalf("DB_HOST not applied: %s", cfg.Database.Host)
	}
	if cfg.LLM.MaxRetries != 2 {
		t.Fatalf("LLM_MAX_RETRIES not applied: %d", cfg.LLM.MaxRetries)
	}
	if len(cfg.Server.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins got %v", cfg.Server.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected missing JWT_SECRET to fail")
	}

	t.Setenv("JWT_SECRET", "short")
	t.Setenv("ENVIRONMENT", "production")
	if _, err := Load(); err == nil {
		t.Fatalf("expected short production secret to fail")
	}

	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("LLM_MAX_RETRIES", "9")
	if _, err := Load(); err == nil {
		t.Fatalf("expected out-of-range retries to fail")
	}
}

func TestValidate_StaleChargeAgeCoversCallTimeout(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("LLM_TIMEOUT", "60s")
	t.Setenv("LLM_MAX_RETRIES", "1")

	// 60s * 2 attempts + 10s = 130s call timeout, plus 30s to settle
	t.Setenv("CREDITS_STALE_CHARGE_AGE", "2m")
	if _, err := Load(); err == nil {
		t.Fatalf("expected a stale age shorter than the call timeout to fail")
	}

	t.Setenv("CREDITS_STALE_CHARGE_AGE", "160s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected 160s to be accepted: %v", err)
	}
	if got := cfg.AnalysisCallTimeout(); got != 130*time.Second {
		t.Fatalf("expected 130s call timeout, got %s", got)
	}
}
