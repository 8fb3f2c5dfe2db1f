package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// eventTypes maps Stripe event names into the closed platform vocabulary.
// Names outside the table are dropped, not rejected; Stripe adds event types
// over time and an unknown-but-harmless delivery must not hard-fail.
var eventTypes = map[string]domain.EventType{
	"checkout.session.completed":           domain.EventCheckoutCompleted,
	"checkout.session.expired":             domain.EventCheckoutExpired,
	"payment_intent.succeeded":             domain.EventPaymentSucceeded,
	"payment_intent.payment_failed":        domain.EventPaymentFailed,
	"invoice.payment_succeeded":            domain.EventPaymentSucceeded,
	"invoice.payment_failed":               domain.EventPaymentFailed,
	"charge.refunded":                      domain.EventPaymentRefunded,
	"customer.subscription.created":        domain.EventSubscriptionCreated,
	"customer.subscription.updated":        domain.EventSubscriptionUpdated,
	"customer.subscription.deleted":        domain.EventSubscriptionCanceled,
	"customer.subscription.paused":         domain.EventSubscriptionPaused,
	"customer.subscription.resumed":        domain.EventSubscriptionResumed,
	"customer.subscription.trial_will_end": domain.EventSubscriptionTrialEnd,
	"charge.dispute.created":               domain.EventDisputeCreated,
	"charge.dispute.closed":                domain.EventDisputeClosed,
}

func mapEventType(vendorEventName string) (domain.EventType, bool) {
	eventType, ok := eventTypes[vendorEventName]
	return eventType, ok
}

type stripeEventEnvelope struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent normalizes a verified Stripe event payload. Event names
// without a mapping return ErrEventIgnored so the ingestion layer drops them
// quietly.
func (a *Adapter) ParseWebhookEvent(ctx context.Context, payload []byte) (*domain.Event, error) {
	var envelope stripeEventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("parse stripe event: %w", err)
	}
	if envelope.ID == "" || envelope.Type == "" {
		return nil, fmt.Errorf("parse stripe event: %w", domain.ErrInvalidInput)
	}

	eventType, ok := mapEventType(envelope.Type)
	if !ok {
		return nil, domain.ErrEventIgnored
	}

	return &domain.Event{
		Type:            eventType,
		Provider:        Slug,
		ProviderEventID: envelope.ID,
		CreatedAt:       time.Unix(envelope.Created, 0).UTC(),
		ResourceID:      envelope.Data.Object.ID,
		Metadata:        envelope.Data.Object.Metadata,
		OriginalPayload: append(json.RawMessage(nil), payload...),
	}, nil
}
