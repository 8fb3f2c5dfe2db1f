package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("expected sqlite default, got %q", cfg.DatabaseDriver)
	}
	if cfg.WebhookTolerance != 5*time.Minute {
		t.Fatalf("expected 5m tolerance, got %s", cfg.WebhookTolerance)
	}
	if cfg.IsProduction() {
		t.Fatalf("default environment must not be production")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoadParsesDurations(t *testing.T) {
	t.Setenv("WEBHOOK_TOLERANCE", "90s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.WebhookTolerance != 90*time.Second {
		t.Fatalf("expected 90s, got %s", cfg.WebhookTolerance)
	}
}
