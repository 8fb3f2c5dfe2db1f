package stripe

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/webhook"
)

func TestVerifyWebhookWrongSecret(t *testing.T) {
	adapter := NewAdapter(zap.NewNop(), WithVerifier(webhook.New(0)))
	call := domain.CallContext{Config: map[string]any{"webhook_secret": "whsec_wrong"}}

	headers := http.Header{}
	headers.Set(SignatureHeader, "t=1700000000,v1=deadbeef")

	err := adapter.VerifyWebhook(context.Background(), call, []byte(`{"type":"x"}`), headers)
	var verr *webhook.VerificationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected VerificationError, got %v", err)
	}
	if verr.Reason != webhook.ReasonSignatureMismatch {
		t.Fatalf("expected signature mismatch, got %q", verr.Reason)
	}
}

func TestVerifyWebhookRoundTrip(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	headers := http.Header{}
	headers.Set(SignatureHeader, webhook.BuildHeader("whsec_test", now, body))

	adapter := NewAdapter(zap.NewNop(), WithVerifier(webhook.NewWithClock(webhook.DefaultTolerance, func() time.Time { return now })))
	call := domain.CallContext{Config: map[string]any{"webhook_secret": "whsec_test"}}

	if err := adapter.VerifyWebhook(context.Background(), call, body, headers); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyWebhookRequiresConfiguredSecret(t *testing.T) {
	adapter := NewAdapter(zap.NewNop())
	err := adapter.VerifyWebhook(context.Background(), domain.CallContext{}, []byte(`{}`), http.Header{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing secret must be an integration error, got %v", err)
	}
}
