package gate

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// paymentsOnlyAdapter implements the payment subset and records the
// idempotency keys it was handed.
type paymentsOnlyAdapter struct {
	validCreds   bool
	credsErr     error
	seenKeys     []string
	refundResult domain.Result[domain.Refund]
}

func (a *paymentsOnlyAdapter) ValidateCredentials(ctx context.Context, call domain.CallContext) (bool, error) {
	return a.validCreds, a.credsErr
}

func (a *paymentsOnlyAdapter) CreatePayment(ctx context.Context, call domain.CallContext, in domain.CreatePaymentInput) (domain.Result[domain.Payment], error) {
	a.seenKeys = append(a.seenKeys, call.IdempotencyKey)
	return domain.Succeeded(domain.Payment{ExternalID: "pay_1", Status: domain.PaymentStatusSucceeded}), nil
}

func (a *paymentsOnlyAdapter) GetPayment(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Payment], error) {
	return domain.Succeeded(domain.Payment{ExternalID: id}), nil
}

func (a *paymentsOnlyAdapter) RefundPayment(ctx context.Context, call domain.CallContext, in domain.RefundPaymentInput) (domain.Result[domain.Refund], error) {
	return a.refundResult, nil
}

type registeringAdapter struct {
	paymentsOnlyAdapter
	registerErr    error
	registered     []string
	deregistered   []string
	deregisterErr  error
	endpointID     string
	endpointSecret string
}

func (a *registeringAdapter) RegisterWebhook(ctx context.Context, call domain.CallContext, url string) (string, string, error) {
	if a.registerErr != nil {
		return "", "", a.registerErr
	}
	a.registered = append(a.registered, url)
	return a.endpointID, a.endpointSecret, nil
}

func (a *registeringAdapter) DeregisterWebhook(ctx context.Context, call domain.CallContext, endpointID string) error {
	a.deregistered = append(a.deregistered, endpointID)
	return a.deregisterErr
}

func paymentsManifest() domain.Manifest {
	return domain.Manifest{
		Slug: "testpay",
		Capabilities: domain.Capabilities{
			Payments: domain.PaymentCapabilities{Supported: true, Refunds: true},
			Webhooks: domain.WebhookCapabilities{Supported: true, Register: true},
		},
	}
}

func TestGateRejectsUnimplementedOperation(t *testing.T) {
	p := New(paymentsManifest(), &paymentsOnlyAdapter{}, zap.NewNop())

	_, err := p.CreateSubscription(context.Background(), domain.CallContext{}, domain.CreateSubscriptionInput{
		CustomerID: "cus_1",
		PriceID:    "price_1",
	})
	var nie *domain.NotImplementedError
	if !errors.As(err, &nie) {
		t.Fatalf("expected NotImplementedError, got %v", err)
	}
	if nie.Op != "create_subscription" {
		t.Fatalf("expected op create_subscription, got %q", nie.Op)
	}
	if nie.Provider != "testpay" {
		t.Fatalf("expected provider testpay, got %q", nie.Provider)
	}
}

func TestGateRejectsDisabledCapability(t *testing.T) {
	manifest := paymentsManifest()
	manifest.Capabilities.Payments.Refunds = false
	p := New(manifest, &paymentsOnlyAdapter{}, zap.NewNop())

	// The adapter implements RefundPayment; the manifest says no. The
	// manifest wins.
	_, err := p.RefundPayment(context.Background(), domain.CallContext{}, domain.RefundPaymentInput{PaymentID: "pay_1"})
	var nie *domain.NotImplementedError
	if !errors.As(err, &nie) {
		t.Fatalf("expected NotImplementedError, got %v", err)
	}
}

func TestGateDispatchesSupportedOperation(t *testing.T) {
	adapter := &paymentsOnlyAdapter{}
	p := New(paymentsManifest(), adapter, zap.NewNop())

	res, err := p.CreatePayment(context.Background(), domain.CallContext{IdempotencyKey: "idem-1"}, domain.CreatePaymentInput{
		Amount:   1000,
		Currency: "usd",
	})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if res.Status != domain.ResultSuccess || res.Data == nil {
		t.Fatalf("expected success with data, got %+v", res)
	}
}

func TestGateForwardsIdempotencyKey(t *testing.T) {
	adapter := &paymentsOnlyAdapter{}
	p := New(paymentsManifest(), adapter, zap.NewNop())
	call := domain.CallContext{IdempotencyKey: "retry-me"}

	for i := 0; i < 2; i++ {
		if _, err := p.CreatePayment(context.Background(), call, domain.CreatePaymentInput{Amount: 500, Currency: "usd"}); err != nil {
			t.Fatalf("create payment %d: %v", i, err)
		}
	}
	if len(adapter.seenKeys) != 2 || adapter.seenKeys[0] != "retry-me" || adapter.seenKeys[1] != "retry-me" {
		t.Fatalf("expected the same idempotency key on both calls, got %v", adapter.seenKeys)
	}
}

func TestInstallAbortsOnInvalidCredentials(t *testing.T) {
	adapter := &registeringAdapter{}
	adapter.validCreds = false
	p := New(paymentsManifest(), adapter, zap.NewNop())

	_, err := p.OnInstall(context.Background(), domain.CallContext{}, domain.InstallInput{WebhookURL: "https://platform/hooks"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(adapter.registered) != 0 {
		t.Fatalf("webhook registration must not run before credentials validate")
	}
}

func TestInstallRegistersWebhook(t *testing.T) {
	adapter := &registeringAdapter{endpointID: "we_1", endpointSecret: "whsec_1"}
	adapter.validCreds = true
	p := New(paymentsManifest(), adapter, zap.NewNop())

	result, err := p.OnInstall(context.Background(), domain.CallContext{}, domain.InstallInput{WebhookURL: "https://platform/hooks"})
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if !result.WebhookRegistered || result.WebhookEndpointID != "we_1" || result.WebhookSecret != "whsec_1" {
		t.Fatalf("expected registered webhook in result, got %+v", result)
	}
}

func TestInstallSurvivesWebhookRegistrationFailure(t *testing.T) {
	adapter := &registeringAdapter{registerErr: errors.New("vendor down")}
	adapter.validCreds = true
	p := New(paymentsManifest(), adapter, zap.NewNop())

	result, err := p.OnInstall(context.Background(), domain.CallContext{}, domain.InstallInput{WebhookURL: "https://platform/hooks"})
	if err != nil {
		t.Fatalf("install should succeed without webhooks, got %v", err)
	}
	if result.WebhookRegistered {
		t.Fatalf("webhook must not be marked registered after a failure")
	}
}

func TestUninstallSwallowsDeregistrationFailure(t *testing.T) {
	adapter := &registeringAdapter{deregisterErr: errors.New("already gone")}
	adapter.validCreds = true
	p := New(paymentsManifest(), adapter, zap.NewNop())

	err := p.OnUninstall(context.Background(), domain.CallContext{}, domain.UninstallInput{WebhookEndpointID: "we_1"})
	if err != nil {
		t.Fatalf("uninstall must never be blocked by vendor cleanup, got %v", err)
	}
	if len(adapter.deregistered) != 1 || adapter.deregistered[0] != "we_1" {
		t.Fatalf("expected deregistration attempt for we_1, got %v", adapter.deregistered)
	}
}
