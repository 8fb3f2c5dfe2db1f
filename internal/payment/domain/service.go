package domain

import (
	"context"
	"errors"
	"net/http"
)

type Service interface {
	// IngestWebhook verifies, normalizes, and persists one webhook
	// delivery. Redeliveries of an already processed event return
	// ErrEventAlreadyProcessed; events outside the normalized taxonomy are
	// dropped without error.
	IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error

	// ListEvents returns stored deliveries for a provider, newest first.
	ListEvents(ctx context.Context, provider string, limit int) ([]EventRecord, error)
}

var (
	ErrInvalidProvider       = errors.New("invalid_provider")
	ErrProviderNotFound      = errors.New("provider_not_found")
	ErrInvalidSignature      = errors.New("invalid_signature")
	ErrInvalidPayload        = errors.New("invalid_payload")
	ErrInvalidEvent          = errors.New("invalid_event")
	ErrEventAlreadyProcessed = errors.New("event_already_processed")
)
