package domain

// CheckoutStrategy describes how a provider expects the checkout UX to run.
type CheckoutStrategy string

const (
	// CheckoutRedirect sends the customer to a vendor-hosted page.
	CheckoutRedirect CheckoutStrategy = "redirect"
	// CheckoutNativeSDK embeds a vendor widget in the client.
	CheckoutNativeSDK CheckoutStrategy = "native_sdk"
	// CheckoutSDUI returns server-driven UI primitives rendered natively.
	CheckoutSDUI CheckoutStrategy = "sdui"
)

// SubscriptionMode says who runs the recurring-billing engine.
type SubscriptionMode string

const (
	// SubscriptionNative means the vendor schedules renewals itself.
	SubscriptionNative SubscriptionMode = "native"
	// SubscriptionVirtual means the platform drives renewals and the vendor
	// only processes one-time charges. The gateway exposes the flag; the
	// scheduler lives outside it.
	SubscriptionVirtual SubscriptionMode = "virtual"
)

// ManifestStatus marks the rollout state of a provider integration.
type ManifestStatus string

const (
	ManifestStatusStable ManifestStatus = "stable"
	ManifestStatusBeta   ManifestStatus = "beta"
)

type CheckoutCapabilities struct {
	Supported bool             `json:"supported"`
	Strategy  CheckoutStrategy `json:"strategy,omitempty"`
}

type PaymentCapabilities struct {
	Supported bool `json:"supported"`
	Refunds   bool `json:"refunds"`
	Capture   bool `json:"capture"`
	List      bool `json:"list"`
}

type SubscriptionCapabilities struct {
	Supported bool             `json:"supported"`
	Mode      SubscriptionMode `json:"mode,omitempty"`
	Pause     bool             `json:"pause"`
	Proration bool             `json:"proration"`
	TrialDays bool             `json:"trial_days"`
}

type WebhookCapabilities struct {
	Supported bool `json:"supported"`
	// Register says the vendor API can create webhook endpoints, enabling
	// automatic registration at install time.
	Register        bool   `json:"register"`
	SignatureHeader string `json:"signature_header,omitempty"`
}

type CustomerCapabilities struct {
	Supported bool `json:"supported"`
}

type PaymentMethodCapabilities struct {
	Supported bool `json:"supported"`
}

// Capabilities is the single source of truth for what a provider supports.
// The capability gate rejects calls outside of it; conformance tests are
// responsible for proving the declared subset is actually implemented.
type Capabilities struct {
	Checkout       CheckoutCapabilities      `json:"checkout"`
	Payments       PaymentCapabilities       `json:"payments"`
	Subscriptions  SubscriptionCapabilities  `json:"subscriptions"`
	Webhooks       WebhookCapabilities       `json:"webhooks"`
	Customers      CustomerCapabilities      `json:"customers"`
	PaymentMethods PaymentMethodCapabilities `json:"payment_methods"`
}

// ConfigField describes one entry of a provider's setup form.
type ConfigField struct {
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Pattern  string `json:"pattern,omitempty"`
	// Secure fields are encrypted at rest and masked in logs.
	Secure bool `json:"secure"`
}

// Manifest is the static per-provider declaration, created once at
// registration and immutable for the process lifetime.
type Manifest struct {
	Slug         string                 `json:"slug"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Capabilities Capabilities           `json:"capabilities"`
	ConfigSchema map[string]ConfigField `json:"config_schema"`
	DataSchema   map[string]string      `json:"data_schema,omitempty"`
	Status       ManifestStatus         `json:"status"`
}
