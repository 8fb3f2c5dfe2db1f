package domain

import (
	"encoding/json"
	"time"
)

// EventType is the closed set of normalized webhook event names. Vendor
// event names outside the adapter's mapping table never reach this type;
// they are dropped during parsing.
type EventType string

const (
	EventPaymentSucceeded     EventType = "payment.succeeded"
	EventPaymentFailed        EventType = "payment.failed"
	EventPaymentRefunded      EventType = "payment.refunded"
	EventCheckoutCompleted    EventType = "checkout.completed"
	EventCheckoutExpired      EventType = "checkout.expired"
	EventSubscriptionCreated  EventType = "subscription.created"
	EventSubscriptionUpdated  EventType = "subscription.updated"
	EventSubscriptionCanceled EventType = "subscription.canceled"
	EventSubscriptionPaused   EventType = "subscription.paused"
	EventSubscriptionResumed  EventType = "subscription.resumed"
	EventSubscriptionTrialEnd EventType = "subscription.trial_will_end"
	EventDisputeCreated       EventType = "dispute.created"
	EventDisputeClosed        EventType = "dispute.closed"
)

// Event is a normalized webhook event.
type Event struct {
	Type EventType `json:"type"`
	// ProviderEventID is the vendor's own event id and the de-duplication
	// key for idempotent consumption under at-least-once delivery.
	ProviderEventID string            `json:"provider_event_id"`
	Provider        string            `json:"provider,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	ResourceID      string            `json:"resource_id,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	OriginalPayload json.RawMessage   `json:"-"`
}
