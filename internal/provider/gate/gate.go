// Package gate wraps a vendor adapter behind the unified provider contract.
// Every call checks the capability manifest and the adapter's actual method
// set before dispatching; unsupported operations fail fast with a typed
// NotImplemented error instead of silently no-opping.
package gate

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// Provider implements domain.Provider over an arbitrary adapter. The gate
// supplies no business logic of its own, only the presence check, error
// shaping and the install lifecycle policy shared by every vendor.
type Provider struct {
	manifest domain.Manifest
	adapter  any
	log      *zap.Logger
}

func New(manifest domain.Manifest, adapter any, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		manifest: manifest,
		adapter:  adapter,
		log:      log.Named("provider.gate").With(zap.String("provider", manifest.Slug)),
	}
}

func (p *Provider) Manifest() domain.Manifest { return p.manifest }

func (p *Provider) notImplemented(op string) error {
	return &domain.NotImplementedError{Provider: p.manifest.Slug, Op: op}
}

// dispatch resolves the adapter as T when enabled is true, else reports the
// operation unsupported.
func dispatch[T any](p *Provider, op string, enabled bool) (T, error) {
	var zero T
	ops, ok := p.adapter.(T)
	if !ok || !enabled {
		return zero, p.notImplemented(op)
	}
	return ops, nil
}

func (p *Provider) ValidateCredentials(ctx context.Context, call domain.CallContext) (bool, error) {
	ops, err := dispatch[domain.CredentialValidator](p, "validate_credentials", true)
	if err != nil {
		return false, err
	}
	return ops.ValidateCredentials(ctx, call)
}

// OnInstall runs the two-phase install protocol. Credential validation
// failures abort; webhook registration failures do not, installation without
// webhooks is a supported degraded state.
func (p *Provider) OnInstall(ctx context.Context, call domain.CallContext, in domain.InstallInput) (*domain.InstallResult, error) {
	valid, err := p.ValidateCredentials(ctx, call)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	result := &domain.InstallResult{}
	if !p.manifest.Capabilities.Webhooks.Register || in.WebhookURL == "" {
		return result, nil
	}

	registrar, ok := p.adapter.(domain.WebhookRegistrar)
	if !ok {
		return result, nil
	}

	endpointID, secret, err := registrar.RegisterWebhook(ctx, call, in.WebhookURL)
	if err != nil {
		p.log.Warn("webhook registration failed, installing without webhooks",
			zap.String("webhook_url", in.WebhookURL),
			zap.Error(err),
		)
		return result, nil
	}

	result.WebhookEndpointID = endpointID
	result.WebhookSecret = secret
	result.WebhookRegistered = true
	return result, nil
}

// OnUninstall mirrors install: vendor-side cleanup failures are logged and
// swallowed so uninstall is never blocked.
func (p *Provider) OnUninstall(ctx context.Context, call domain.CallContext, in domain.UninstallInput) error {
	if in.WebhookEndpointID == "" {
		return nil
	}
	registrar, ok := p.adapter.(domain.WebhookRegistrar)
	if !ok {
		return nil
	}
	if err := registrar.DeregisterWebhook(ctx, call, in.WebhookEndpointID); err != nil {
		p.log.Warn("webhook deregistration failed during uninstall",
			zap.String("webhook_endpoint_id", in.WebhookEndpointID),
			zap.Error(err),
		)
	}
	return nil
}

func (p *Provider) CreatePayment(ctx context.Context, call domain.CallContext, in domain.CreatePaymentInput) (domain.Result[domain.Payment], error) {
	ops, err := dispatch[domain.PaymentOperations](p, "create_payment", p.manifest.Capabilities.Payments.Supported)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}
	return ops.CreatePayment(ctx, call, in)
}

func (p *Provider) GetPayment(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Payment], error) {
	ops, err := dispatch[domain.PaymentOperations](p, "get_payment", p.manifest.Capabilities.Payments.Supported)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}
	return ops.GetPayment(ctx, call, id)
}

func (p *Provider) CapturePayment(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Payment], error) {
	ops, err := dispatch[domain.PaymentCapturer](p, "capture_payment", p.manifest.Capabilities.Payments.Capture)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}
	return ops.CapturePayment(ctx, call, id)
}

func (p *Provider) RefundPayment(ctx context.Context, call domain.CallContext, in domain.RefundPaymentInput) (domain.Result[domain.Refund], error) {
	ops, err := dispatch[domain.PaymentOperations](p, "refund_payment", p.manifest.Capabilities.Payments.Refunds)
	if err != nil {
		return domain.Result[domain.Refund]{}, err
	}
	return ops.RefundPayment(ctx, call, in)
}

func (p *Provider) ListPayments(ctx context.Context, call domain.CallContext, in domain.ListPaymentsInput) (domain.Result[[]domain.Payment], error) {
	ops, err := dispatch[domain.PaymentLister](p, "list_payments", p.manifest.Capabilities.Payments.List)
	if err != nil {
		return domain.Result[[]domain.Payment]{}, err
	}
	return ops.ListPayments(ctx, call, in)
}

func (p *Provider) CreateSubscription(ctx context.Context, call domain.CallContext, in domain.CreateSubscriptionInput) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionOperations](p, "create_subscription", p.manifest.Capabilities.Subscriptions.Supported)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.CreateSubscription(ctx, call, in)
}

func (p *Provider) GetSubscription(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionOperations](p, "get_subscription", p.manifest.Capabilities.Subscriptions.Supported)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.GetSubscription(ctx, call, id)
}

func (p *Provider) UpdateSubscription(ctx context.Context, call domain.CallContext, in domain.UpdateSubscriptionInput) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionOperations](p, "update_subscription", p.manifest.Capabilities.Subscriptions.Supported)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.UpdateSubscription(ctx, call, in)
}

func (p *Provider) CancelSubscription(ctx context.Context, call domain.CallContext, id string, reason string) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionOperations](p, "cancel_subscription", p.manifest.Capabilities.Subscriptions.Supported)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.CancelSubscription(ctx, call, id, reason)
}

func (p *Provider) PauseSubscription(ctx context.Context, call domain.CallContext, id string, reason string) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionPauser](p, "pause_subscription", p.manifest.Capabilities.Subscriptions.Pause)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.PauseSubscription(ctx, call, id, reason)
}

func (p *Provider) ResumeSubscription(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Subscription], error) {
	ops, err := dispatch[domain.SubscriptionPauser](p, "resume_subscription", p.manifest.Capabilities.Subscriptions.Pause)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	return ops.ResumeSubscription(ctx, call, id)
}

func (p *Provider) CreateCheckoutSession(ctx context.Context, call domain.CallContext, in domain.CreateCheckoutSessionInput) (domain.Result[domain.CheckoutSession], error) {
	ops, err := dispatch[domain.CheckoutOperations](p, "create_checkout_session", p.manifest.Capabilities.Checkout.Supported)
	if err != nil {
		return domain.Result[domain.CheckoutSession]{}, err
	}
	return ops.CreateCheckoutSession(ctx, call, in)
}

func (p *Provider) CreateCustomer(ctx context.Context, call domain.CallContext, in domain.CustomerInput) (domain.Result[domain.Customer], error) {
	ops, err := dispatch[domain.CustomerOperations](p, "create_customer", p.manifest.Capabilities.Customers.Supported)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}
	return ops.CreateCustomer(ctx, call, in)
}

func (p *Provider) GetCustomer(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Customer], error) {
	ops, err := dispatch[domain.CustomerOperations](p, "get_customer", p.manifest.Capabilities.Customers.Supported)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}
	return ops.GetCustomer(ctx, call, id)
}

func (p *Provider) UpdateCustomer(ctx context.Context, call domain.CallContext, id string, in domain.CustomerInput) (domain.Result[domain.Customer], error) {
	ops, err := dispatch[domain.CustomerOperations](p, "update_customer", p.manifest.Capabilities.Customers.Supported)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}
	return ops.UpdateCustomer(ctx, call, id, in)
}

func (p *Provider) DeleteCustomer(ctx context.Context, call domain.CallContext, id string) error {
	ops, err := dispatch[domain.CustomerOperations](p, "delete_customer", p.manifest.Capabilities.Customers.Supported)
	if err != nil {
		return err
	}
	return ops.DeleteCustomer(ctx, call, id)
}

func (p *Provider) AttachPaymentMethod(ctx context.Context, call domain.CallContext, customerID, token string) (domain.Result[domain.PaymentMethod], error) {
	ops, err := dispatch[domain.PaymentMethodOperations](p, "attach_payment_method", p.manifest.Capabilities.PaymentMethods.Supported)
	if err != nil {
		return domain.Result[domain.PaymentMethod]{}, err
	}
	return ops.AttachPaymentMethod(ctx, call, customerID, token)
}

func (p *Provider) DetachPaymentMethod(ctx context.Context, call domain.CallContext, id string) error {
	ops, err := dispatch[domain.PaymentMethodOperations](p, "detach_payment_method", p.manifest.Capabilities.PaymentMethods.Supported)
	if err != nil {
		return err
	}
	return ops.DetachPaymentMethod(ctx, call, id)
}

func (p *Provider) GetPaymentMethod(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.PaymentMethod], error) {
	ops, err := dispatch[domain.PaymentMethodOperations](p, "get_payment_method", p.manifest.Capabilities.PaymentMethods.Supported)
	if err != nil {
		return domain.Result[domain.PaymentMethod]{}, err
	}
	return ops.GetPaymentMethod(ctx, call, id)
}

func (p *Provider) ListPaymentMethods(ctx context.Context, call domain.CallContext, customerID string) (domain.Result[[]domain.PaymentMethod], error) {
	ops, err := dispatch[domain.PaymentMethodOperations](p, "list_payment_methods", p.manifest.Capabilities.PaymentMethods.Supported)
	if err != nil {
		return domain.Result[[]domain.PaymentMethod]{}, err
	}
	return ops.ListPaymentMethods(ctx, call, customerID)
}

func (p *Provider) VerifyWebhook(ctx context.Context, call domain.CallContext, payload []byte, headers http.Header) error {
	ops, err := dispatch[domain.WebhookOperations](p, "verify_webhook", p.manifest.Capabilities.Webhooks.Supported)
	if err != nil {
		return err
	}
	return ops.VerifyWebhook(ctx, call, payload, headers)
}

func (p *Provider) ParseWebhookEvent(ctx context.Context, payload []byte) (*domain.Event, error) {
	ops, err := dispatch[domain.WebhookOperations](p, "parse_webhook_event", p.manifest.Capabilities.Webhooks.Supported)
	if err != nil {
		return nil, err
	}
	return ops.ParseWebhookEvent(ctx, payload)
}

var _ domain.Provider = (*Provider)(nil)
