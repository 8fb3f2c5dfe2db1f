// Package observability wires logging, tracing, and metrics into the fx
// graph from the service configuration.
package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"

	"github.com/revstack-dev/revstack/internal/config"
	"github.com/revstack-dev/revstack/internal/observability/logger"
	"github.com/revstack-dev/revstack/internal/observability/metrics"
	"github.com/revstack-dev/revstack/internal/observability/tracing"
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.TracingEnabled,
		ServiceName:      cfg.ServiceName,
		ServiceVersion:   cfg.Version,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.TracingExporterEndpoint,
		ExporterProtocol: cfg.TracingExporterProtocol,
		SamplingRatio:    cfg.TracingSamplingRatio,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}
}

func newMeterProvider() metric.MeterProvider {
	return otel.GetMeterProvider()
}

func newWebhookMetrics(cfg metrics.Config) *metrics.WebhookMetrics {
	return metrics.WebhookWithConfig(cfg)
}

var Module = fx.Module("observability",
	logger.Module,
	fx.Provide(
		newTracingConfig,
		newMetricsConfig,
		newMeterProvider,
		newWebhookMetrics,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(tracing.NewProvider),
)
