package stripe

import (
	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/gate"
)

// NewProvider wraps the adapter behind the capability gate. This is what
// registry loaders hand out.
func NewProvider(log *zap.Logger, opts ...Option) domain.Provider {
	return gate.New(Manifest(), NewAdapter(log, opts...), log)
}

// The gate dispatches by type assertion; these guard the adapter against
// silently falling out of an interface during refactors.
var (
	_ domain.CredentialValidator     = (*Adapter)(nil)
	_ domain.PaymentOperations       = (*Adapter)(nil)
	_ domain.PaymentCapturer         = (*Adapter)(nil)
	_ domain.PaymentLister           = (*Adapter)(nil)
	_ domain.SubscriptionOperations  = (*Adapter)(nil)
	_ domain.SubscriptionPauser      = (*Adapter)(nil)
	_ domain.CheckoutOperations      = (*Adapter)(nil)
	_ domain.CustomerOperations      = (*Adapter)(nil)
	_ domain.PaymentMethodOperations = (*Adapter)(nil)
	_ domain.WebhookOperations       = (*Adapter)(nil)
	_ domain.WebhookRegistrar        = (*Adapter)(nil)
)
