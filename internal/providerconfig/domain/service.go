package domain

import (
	"context"
	"errors"
	"fmt"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
)

type Service interface {
	// ListCatalog returns every registered provider with configured and
	// active flags for the install UI.
	ListCatalog(ctx context.Context) ([]CatalogEntry, error)

	// UpsertConfig validates values against the provider's config schema,
	// encrypts them, and stores the row. It never activates the provider.
	UpsertConfig(ctx context.Context, provider string, values map[string]any) (*ProviderConfig, error)

	// Install validates credentials against the vendor, registers a webhook
	// endpoint when the vendor supports it, and activates the provider.
	Install(ctx context.Context, provider string) (*ProviderConfig, error)

	// Uninstall deregisters the webhook endpoint on a best-effort basis and
	// deactivates the provider. Stored credentials are kept for reinstall.
	Uninstall(ctx context.Context, provider string) error

	SetActive(ctx context.Context, provider string, active bool) error

	// ResolveCallContext decrypts the stored configuration of an active
	// provider into a per-call context. The decrypted webhook secret is
	// surfaced under the webhook_secret config key.
	ResolveCallContext(ctx context.Context, provider string, idempotencyKey string) (providerdomain.CallContext, error)
}

var (
	ErrConfigNotFound       = errors.New("provider_config_not_found")
	ErrProviderInactive     = errors.New("provider_inactive")
	ErrEncryptionKeyMissing = errors.New("encryption_key_missing")
	ErrInvalidConfig        = errors.New("invalid_config")
)

// SchemaViolation reports one config field failing schema validation. It
// wraps ErrInvalidConfig so callers can match the class with errors.Is.
type SchemaViolation struct {
	Field  string
	Reason string
}

func (e *SchemaViolation) Error() string {
	return fmt.Sprintf("invalid_config: field %q %s", e.Field, e.Reason)
}

func (e *SchemaViolation) Unwrap() error {
	return ErrInvalidConfig
}
