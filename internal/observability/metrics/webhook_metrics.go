package metrics

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WebhookMetrics tracks webhook ingestion outcomes per provider.
type WebhookMetrics struct {
	eventsTotal    *prometheus.CounterVec
	verifyFailures *prometheus.CounterVec
	ingestDuration *prometheus.HistogramVec
}

var (
	webhookMetricsOnce sync.Once
	webhookMetrics     *WebhookMetrics
)

func Webhook() *WebhookMetrics {
	return WebhookWithConfig(Config{})
}

func WebhookWithConfig(cfg Config) *WebhookMetrics {
	webhookMetricsOnce.Do(func() {
		webhookMetrics = newWebhookMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return webhookMetrics
}

func ResetWebhookMetricsForTest() {
	webhookMetricsOnce = sync.Once{}
	webhookMetrics = nil
}

func newWebhookMetrics(registerer prometheus.Registerer, cfg Config) *WebhookMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "revstack"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	eventsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "revstack_webhook_events_total",
			Help:        "Webhook deliveries by provider and ingestion result.",
			ConstLabels: constLabels,
		},
		[]string{"provider", "result"}, // accepted | duplicate | ignored | rejected | failed
	)

	verifyFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "revstack_webhook_verify_failures_total",
			Help:        "Webhook signature verification failures by reason.",
			ConstLabels: constLabels,
		},
		[]string{"provider", "reason"},
	)

	ingestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "revstack_webhook_ingest_duration_seconds",
			Help:        "Time spent verifying, normalizing, and persisting a webhook delivery.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		},
		[]string{"provider"},
	)

	registerer.MustRegister(
		eventsTotal,
		verifyFailures,
		ingestDuration,
	)

	return &WebhookMetrics{
		eventsTotal:    eventsTotal,
		verifyFailures: verifyFailures,
		ingestDuration: ingestDuration,
	}
}

func (m *WebhookMetrics) IncEvent(provider, result string) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(provider, result).Inc()
}

func (m *WebhookMetrics) IncVerifyFailure(provider, reason string) {
	if m == nil {
		return
	}
	m.verifyFailures.WithLabelValues(provider, reason).Inc()
}

func (m *WebhookMetrics) ObserveIngestDuration(provider string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ingestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}
