// Package stripe adapts the Stripe API to the unified provider contract.
package stripe

import (
	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// Slug identifies this provider in the registry.
const Slug = "stripe"

// SignatureHeader carries the webhook signature on Stripe deliveries.
const SignatureHeader = "Stripe-Signature"

// Manifest declares what the Stripe integration supports. The capability
// gate trusts this block, so a flag must only be set once the operation
// below it actually works.
func Manifest() domain.Manifest {
	return domain.Manifest{
		Slug:     Slug,
		Name:     "Stripe",
		Category: "payments",
		Status:   domain.ManifestStatusStable,
		Capabilities: domain.Capabilities{
			Checkout: domain.CheckoutCapabilities{
				Supported: true,
				Strategy:  domain.CheckoutRedirect,
			},
			Payments: domain.PaymentCapabilities{
				Supported: true,
				Refunds:   true,
				Capture:   true,
				List:      true,
			},
			Subscriptions: domain.SubscriptionCapabilities{
				Supported: true,
				Mode:      domain.SubscriptionNative,
				Pause:     true,
				Proration: true,
				TrialDays: true,
			},
			Webhooks: domain.WebhookCapabilities{
				Supported:       true,
				Register:        true,
				SignatureHeader: SignatureHeader,
			},
			Customers:      domain.CustomerCapabilities{Supported: true},
			PaymentMethods: domain.PaymentMethodCapabilities{Supported: true},
		},
		ConfigSchema: map[string]domain.ConfigField{
			"secret_key": {
				Type:     "string",
				Required: true,
				Pattern:  `^(sk|rk)_(test|live)_[A-Za-z0-9]+$`,
				Secure:   true,
			},
			"webhook_secret": {
				Type:    "string",
				Pattern: `^whsec_[A-Za-z0-9]+$`,
				Secure:  true,
			},
			"test_mode": {
				Type: "bool",
			},
		},
		DataSchema: map[string]string{
			"customer_id":     "string",
			"subscription_id": "string",
		},
	}
}
