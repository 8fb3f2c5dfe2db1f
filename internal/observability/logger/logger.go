// Package logger configures the process-wide zap logger and exposes
// request-scoped helpers that carry trace correlation fields.
package logger

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/config"
	obscontext "github.com/revstack-dev/revstack/internal/observability/context"
)

// New builds the root logger. Production gets JSON output, everything else
// gets the console encoder.
func New(cfg config.Config) (*zap.Logger, error) {
	var log *zap.Logger
	var err error
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	log = log.With(
		zap.String("service", cfg.ServiceName),
		zap.String("version", cfg.Version),
	)
	zap.ReplaceGlobals(log)
	return log, nil
}

// FromContext returns the global logger annotated with the active span's
// trace_id and span_id when present.
func FromContext(ctx context.Context) *zap.Logger {
	log := zap.L()
	if ctx == nil {
		return log
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		log = log.With(
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}
	return log
}

// MiddlewareConfig tunes request logging.
type MiddlewareConfig struct {
	// SkipPaths are matched against the raw request path, e.g. /healthz.
	SkipPaths []string
}

// GinMiddleware assigns a request id, stores it on the request context, and
// logs one line per request with masked headers.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Set("request_id", requestID)
		ctx := obscontext.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		if _, skipped := skip[c.Request.URL.Path]; skipped {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			zap.Any("headers", MaskHeaders(c.Request.Header)),
		}
		// Handlers stamp the provider slug on the request context; the
		// middleware reads it back after they ran.
		if provider := obscontext.ProviderFromGin(c); provider != "" {
			fields = append(fields, zap.String("provider", provider))
		}
		FromContext(ctx).Info("http request", fields...)
	}
}

var Module = fx.Module("logger",
	fx.Provide(New),
)
