// Package provider assembles the provider registry with every shipped
// vendor adapter registered.
package provider

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/config"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/registry"
	"github.com/revstack-dev/revstack/internal/provider/stripe"
	"github.com/revstack-dev/revstack/internal/provider/webhook"
)

func NewRegistry(cfg config.Config, log *zap.Logger) *registry.Registry {
	verifier := webhook.New(cfg.WebhookTolerance)
	r := registry.New()
	r.Register(stripe.Slug, func() (providerdomain.Provider, error) {
		return stripe.NewProvider(log, stripe.WithVerifier(verifier)), nil
	})
	return r
}

var Module = fx.Module("provider.registry",
	fx.Provide(NewRegistry),
)
