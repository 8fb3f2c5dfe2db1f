package domain

import (
	"encoding/json"
	"time"
)

// Entities mirror vendor state at the moment of a call or webhook. The
// vendor stays the source of truth; these are constructed fresh on every
// adapter response and never cached or mutated in place.

type Payment struct {
	Provider   string        `json:"provider"`
	ExternalID string        `json:"external_id"`
	Status     PaymentStatus `json:"status"`
	Amount     int64         `json:"amount"`
	Currency   string        `json:"currency"`
	CustomerID string        `json:"customer_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	// Raw holds the unmapped vendor payload for audit and debugging.
	Raw json.RawMessage `json:"raw,omitempty"`
}

type Refund struct {
	Provider   string          `json:"provider"`
	ExternalID string          `json:"external_id"`
	PaymentID  string          `json:"payment_id"`
	Amount     int64           `json:"amount"`
	Currency   string          `json:"currency"`
	CreatedAt  time.Time       `json:"created_at"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

type Subscription struct {
	Provider         string             `json:"provider"`
	ExternalID       string             `json:"external_id"`
	Status           SubscriptionStatus `json:"status"`
	CustomerID       string             `json:"customer_id,omitempty"`
	PriceID          string             `json:"price_id,omitempty"`
	Quantity         int64              `json:"quantity,omitempty"`
	CurrentPeriodEnd time.Time          `json:"current_period_end,omitzero"`
	CreatedAt        time.Time          `json:"created_at"`
	Raw              json.RawMessage    `json:"raw,omitempty"`
}

type Customer struct {
	Provider   string          `json:"provider"`
	ExternalID string          `json:"external_id"`
	Email      string          `json:"email,omitempty"`
	Name       string          `json:"name,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

type PaymentMethod struct {
	Provider   string          `json:"provider"`
	ExternalID string          `json:"external_id"`
	CustomerID string          `json:"customer_id,omitempty"`
	Type       string          `json:"type,omitempty"`
	Brand      string          `json:"brand,omitempty"`
	Last4      string          `json:"last4,omitempty"`
	ExpMonth   int64           `json:"exp_month,omitempty"`
	ExpYear    int64           `json:"exp_year,omitempty"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

type CheckoutSession struct {
	Provider    string          `json:"provider"`
	SessionID   string          `json:"session_id"`
	RedirectURL string          `json:"redirect_url,omitempty"`
	ExpiresAt   time.Time       `json:"expires_at,omitzero"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}
