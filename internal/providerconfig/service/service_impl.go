package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/revstack-dev/revstack/internal/cache"
	"github.com/revstack-dev/revstack/internal/clock"
	"github.com/revstack-dev/revstack/internal/config"
	obscontext "github.com/revstack-dev/revstack/internal/observability/context"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/registry"
	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

const catalogCacheKey = "catalog"

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Cfg      config.Config
	Registry *registry.Registry
	Repo     domain.Repository
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	cfg      config.Config
	registry *registry.Registry
	repo     domain.Repository
	encKey   []byte
	catalog  *cache.TTLCache[string, []domain.CatalogEntry]
}

func NewService(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("providerconfig.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		cfg:      p.Cfg,
		registry: p.Registry,
		repo:     p.Repo,
		encKey:   deriveKey(p.Cfg.ProviderConfigSecret),
		catalog:  cache.NewTTLCache[string, []domain.CatalogEntry](),
	}
}

func (s *Service) ListCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	if entries, ok := s.catalog.Get(catalogCacheKey); ok {
		return entries, nil
	}

	manifests, failures := s.registry.Manifests()
	for slug, err := range failures {
		s.log.Warn("provider manifest unavailable", zap.String("provider", slug), zap.Error(err))
	}

	rows, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}
	installed := make(map[string]domain.ProviderConfig, len(rows))
	for _, row := range rows {
		installed[row.Provider] = row
	}

	entries := make([]domain.CatalogEntry, 0, len(manifests))
	for _, manifest := range manifests {
		row, configured := installed[manifest.Slug]
		entries = append(entries, domain.CatalogEntry{
			Manifest:   manifest,
			Configured: configured,
			Active:     configured && row.IsActive,
		})
	}

	s.catalog.Set(catalogCacheKey, entries, s.cfg.CatalogCacheTTL)
	return entries, nil
}

func (s *Service) UpsertConfig(ctx context.Context, provider string, values map[string]any) (*domain.ProviderConfig, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	manifest, err := s.registry.Manifest(provider)
	if err != nil {
		return nil, err
	}
	if err := validateSchema(manifest.ConfigSchema, values); err != nil {
		return nil, err
	}

	encrypted, err := s.encryptConfig(values)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByProvider(ctx, s.db, provider)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if row == nil {
		row = &domain.ProviderConfig{
			ID:        s.genID.Generate(),
			Provider:  provider,
			CreatedAt: now,
		}
	}
	row.Config = encrypted
	testMode, _ := values["test_mode"].(bool)
	row.TestMode = testMode
	row.UpdatedAt = now

	if err := s.repo.Save(ctx, s.db, row); err != nil {
		return nil, err
	}
	s.catalog.Delete(catalogCacheKey)
	return row, nil
}

func (s *Service) Install(ctx context.Context, provider string) (*domain.ProviderConfig, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	p, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.FindByProvider(ctx, s.db, provider)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrConfigNotFound
	}

	call, err := s.callContext(ctx, row, "")
	if err != nil {
		return nil, err
	}

	result, err := p.OnInstall(ctx, call, providerdomain.InstallInput{
		WebhookURL: s.webhookURL(provider),
	})
	if err != nil {
		s.log.Warn("provider install failed", zap.String("provider", provider), zap.Error(err))
		return nil, err
	}

	if result.WebhookRegistered {
		secret, err := s.encrypt([]byte(result.WebhookSecret))
		if err != nil {
			return nil, err
		}
		row.WebhookEndpointID = result.WebhookEndpointID
		row.WebhookSecret = secret
		row.WebhookRegistered = true
	}
	row.IsActive = true
	row.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, row); err != nil {
		return nil, err
	}
	s.catalog.Delete(catalogCacheKey)

	s.log.Info("provider installed",
		zap.String("provider", provider),
		zap.Bool("webhook_registered", row.WebhookRegistered),
	)
	return row, nil
}

func (s *Service) Uninstall(ctx context.Context, provider string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	p, err := s.registry.Get(provider)
	if err != nil {
		return err
	}

	row, err := s.repo.FindByProvider(ctx, s.db, provider)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrConfigNotFound
	}

	call, err := s.callContext(ctx, row, "")
	if err != nil {
		return err
	}

	if err := p.OnUninstall(ctx, call, providerdomain.UninstallInput{
		WebhookEndpointID: row.WebhookEndpointID,
	}); err != nil {
		return err
	}

	row.WebhookEndpointID = ""
	row.WebhookSecret = nil
	row.WebhookRegistered = false
	row.IsActive = false
	row.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, s.db, row); err != nil {
		return err
	}
	s.catalog.Delete(catalogCacheKey)

	s.log.Info("provider uninstalled", zap.String("provider", provider))
	return nil
}

func (s *Service) SetActive(ctx context.Context, provider string, active bool) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	row, err := s.repo.FindByProvider(ctx, s.db, provider)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrConfigNotFound
	}
	row.IsActive = active
	row.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, s.db, row); err != nil {
		return err
	}
	s.catalog.Delete(catalogCacheKey)
	return nil
}

func (s *Service) ResolveCallContext(ctx context.Context, provider string, idempotencyKey string) (providerdomain.CallContext, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	row, err := s.repo.FindByProvider(ctx, s.db, provider)
	if err != nil {
		return providerdomain.CallContext{}, err
	}
	if row == nil {
		return providerdomain.CallContext{}, domain.ErrConfigNotFound
	}
	if !row.IsActive {
		return providerdomain.CallContext{}, domain.ErrProviderInactive
	}
	return s.callContext(ctx, row, idempotencyKey)
}

func (s *Service) callContext(ctx context.Context, row *domain.ProviderConfig, idempotencyKey string) (providerdomain.CallContext, error) {
	values, err := s.decryptConfig(row.Config)
	if err != nil {
		return providerdomain.CallContext{}, err
	}
	if len(row.WebhookSecret) > 0 {
		secret, err := s.decrypt(row.WebhookSecret)
		if err != nil {
			return providerdomain.CallContext{}, err
		}
		values["webhook_secret"] = string(secret)
	}
	return providerdomain.CallContext{
		Config:         values,
		TraceID:        traceID(ctx),
		IdempotencyKey: idempotencyKey,
		TestMode:       row.TestMode,
	}, nil
}

func (s *Service) webhookURL(provider string) string {
	base := strings.TrimRight(s.cfg.WebhookBaseURL, "/")
	if base == "" {
		return ""
	}
	return base + "/v1/webhooks/" + provider
}

func traceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		return sc.TraceID().String()
	}
	return obscontext.RequestIDFromContext(ctx)
}
