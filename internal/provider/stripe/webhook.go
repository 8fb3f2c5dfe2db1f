package stripe

import (
	"context"
	"fmt"
	"net/http"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// VerifyWebhook authenticates an inbound delivery against the installed
// webhook secret. Stripe signs the exact raw bytes with the shared
// t=...,v1=... scheme, so the generic verifier applies unmodified; this
// adapter only contributes the header name and the secret lookup.
func (a *Adapter) VerifyWebhook(ctx context.Context, call domain.CallContext, payload []byte, headers http.Header) error {
	secret := call.ConfigString("webhook_secret")
	if secret == "" {
		return fmt.Errorf("%w: webhook_secret not configured", domain.ErrInvalidInput)
	}
	header := headers.Get(SignatureHeader)
	if _, err := a.verifier.Verify(payload, header, secret); err != nil {
		return err
	}
	return nil
}
