// Package context carries request-scoped observability identifiers.
package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	providerKey  contextKey = "observability_provider"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithProvider records the provider slug handling the current request.
func WithProvider(ctx context.Context, slug string) context.Context {
	if ctx == nil || slug == "" {
		return ctx
	}
	return context.WithValue(ctx, providerKey, slug)
}

func ProviderFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(providerKey).(string)
	return value
}
