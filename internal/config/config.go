// Package config loads gateway configuration from the environment. A local
// .env file is honored in development; real deployments set variables
// directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type Config struct {
	Environment string
	ServiceName string
	Version     string

	HTTPAddr string

	// DatabaseDriver is mysql or sqlite; sqlite keeps local development and
	// tests self-contained.
	DatabaseDriver string
	DatabaseDSN    string

	// ProviderConfigSecret derives the AES key that encrypts provider
	// credentials at rest. Empty disables config writes.
	ProviderConfigSecret string

	// WebhookBaseURL is the public base under which providers register
	// their delivery endpoints, e.g. https://api.example.com.
	WebhookBaseURL string
	// WebhookTolerance bounds the age of signed webhook timestamps.
	WebhookTolerance time.Duration

	CatalogCacheTTL time.Duration

	TracingEnabled          bool
	TracingExporterEndpoint string
	TracingExporterProtocol string
	TracingSamplingRatio    float64
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func Load() (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := Config{
		Environment:             envOr("REVSTACK_ENV", "development"),
		ServiceName:             envOr("SERVICE_NAME", "revstack-gateway"),
		Version:                 envOr("SERVICE_VERSION", "dev"),
		HTTPAddr:                envOr("HTTP_ADDR", ":8080"),
		DatabaseDriver:          envOr("DB_DRIVER", "sqlite"),
		DatabaseDSN:             envOr("DB_DSN", "file:revstack.db?cache=shared"),
		ProviderConfigSecret:    os.Getenv("PROVIDER_CONFIG_SECRET"),
		WebhookBaseURL:          strings.TrimRight(os.Getenv("WEBHOOK_BASE_URL"), "/"),
		TracingExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TracingExporterProtocol: envOr("OTEL_EXPORTER_OTLP_PROTOCOL", "http"),
	}

	var err error
	if cfg.WebhookTolerance, err = envDuration("WEBHOOK_TOLERANCE", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CatalogCacheTTL, err = envDuration("CATALOG_CACHE_TTL", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.TracingEnabled, err = envBool("TRACING_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.TracingSamplingRatio, err = envFloat("TRACING_SAMPLING_RATIO", 1.0); err != nil {
		return Config{}, err
	}

	switch cfg.DatabaseDriver {
	case "mysql", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
