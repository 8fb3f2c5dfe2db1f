package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v81"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// enabledEvents lists the Stripe events the platform consumes. Registering
// a narrower endpoint keeps delivery volume down; anything outside this list
// would be dropped by the event mapper anyway.
var enabledEvents = []string{
	"checkout.session.completed",
	"checkout.session.expired",
	"payment_intent.succeeded",
	"payment_intent.payment_failed",
	"invoice.payment_succeeded",
	"invoice.payment_failed",
	"charge.refunded",
	"charge.dispute.created",
	"charge.dispute.closed",
	"customer.subscription.created",
	"customer.subscription.updated",
	"customer.subscription.deleted",
	"customer.subscription.paused",
	"customer.subscription.resumed",
	"customer.subscription.trial_will_end",
}

// ValidateCredentials probes the key with a balance read, the cheapest
// authenticated call Stripe offers. A rejected key reports false rather than
// an error; only transport-level failures surface as errors.
func (a *Adapter) ValidateCredentials(ctx context.Context, call domain.CallContext) (bool, error) {
	sc, err := a.client(call)
	if err != nil {
		return false, err
	}

	params := &stripe.BalanceParams{Params: callParams(ctx, call, false)}
	if _, err := sc.Balance.Get(params); err != nil {
		// Stripe reports a bad key as a 401 invalid_request_error; the SDK
		// has no dedicated error type for it.
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusUnauthorized {
			return false, nil
		}
		return false, fmt.Errorf("validate stripe credentials: %w", err)
	}
	return true, nil
}

func (a *Adapter) RegisterWebhook(ctx context.Context, call domain.CallContext, url string) (string, string, error) {
	sc, err := a.client(call)
	if err != nil {
		return "", "", err
	}

	params := &stripe.WebhookEndpointParams{
		Params:        callParams(ctx, call, true),
		URL:           stripe.String(url),
		EnabledEvents: stripe.StringSlice(enabledEvents),
	}
	endpoint, err := sc.WebhookEndpoints.New(params)
	if err != nil {
		return "", "", fmt.Errorf("register stripe webhook endpoint: %w", err)
	}
	return endpoint.ID, endpoint.Secret, nil
}

func (a *Adapter) DeregisterWebhook(ctx context.Context, call domain.CallContext, endpointID string) error {
	sc, err := a.client(call)
	if err != nil {
		return err
	}
	if _, err := sc.WebhookEndpoints.Del(endpointID, &stripe.WebhookEndpointParams{Params: callParams(ctx, call, true)}); err != nil {
		return fmt.Errorf("deregister stripe webhook endpoint: %w", err)
	}
	return nil
}
