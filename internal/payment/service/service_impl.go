package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/revstack-dev/revstack/internal/clock"
	"github.com/revstack-dev/revstack/internal/observability/metrics"
	"github.com/revstack-dev/revstack/internal/payment/domain"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/registry"
	"github.com/revstack-dev/revstack/internal/provider/webhook"
	providerconfigdomain "github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Registry  *registry.Registry
	ConfigSvc providerconfigdomain.Service
	Metrics   *metrics.WebhookMetrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	registry  *registry.Registry
	configSvc providerconfigdomain.Service
	repo      domain.Repository
	metrics   *metrics.WebhookMetrics
}

func NewService(p Params, repo domain.Repository) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("payment.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		registry:  p.Registry,
		configSvc: p.ConfigSvc,
		repo:      repo,
		metrics:   p.Metrics,
	}
}

func (s *Service) IngestWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return domain.ErrInvalidProvider
	}
	if !s.registry.Exists(provider) {
		return domain.ErrProviderNotFound
	}
	if !json.Valid(payload) {
		return domain.ErrInvalidPayload
	}

	start := time.Now()
	defer func() {
		s.metrics.ObserveIngestDuration(provider, time.Since(start))
	}()

	p, err := s.registry.Get(provider)
	if err != nil {
		return err
	}

	call, err := s.configSvc.ResolveCallContext(ctx, provider, "")
	if err != nil {
		return err
	}

	if err := p.VerifyWebhook(ctx, call, payload, headers); err != nil {
		s.metrics.IncVerifyFailure(provider, verifyFailureReason(err))
		s.metrics.IncEvent(provider, "rejected")
		s.log.Warn("webhook signature rejected", zap.String("provider", provider), zap.Error(err))
		return domain.ErrInvalidSignature
	}

	event, err := p.ParseWebhookEvent(ctx, payload)
	if err != nil {
		if errors.Is(err, providerdomain.ErrEventIgnored) {
			s.metrics.IncEvent(provider, "ignored")
			return nil
		}
		s.metrics.IncEvent(provider, "failed")
		return domain.ErrInvalidEvent
	}
	if event == nil || strings.TrimSpace(event.ProviderEventID) == "" || event.Type == "" {
		s.metrics.IncEvent(provider, "failed")
		return domain.ErrInvalidEvent
	}

	now := s.clock.Now()
	record := domain.EventRecord{
		ID:              s.genID.Generate(),
		Provider:        provider,
		ProviderEventID: event.ProviderEventID,
		EventType:       string(event.Type),
		ResourceID:      event.ResourceID,
		Payload:         datatypes.JSON(payload),
		ReceivedAt:      now,
	}

	inserted, err := s.repo.InsertEvent(ctx, s.db, &record)
	if err != nil {
		return err
	}
	stored := &record
	if !inserted {
		stored, err = s.repo.FindEvent(ctx, s.db, provider, event.ProviderEventID)
		if err != nil {
			return err
		}
		if stored == nil {
			return domain.ErrInvalidEvent
		}
		if stored.ProcessedAt != nil {
			s.metrics.IncEvent(provider, "duplicate")
			return domain.ErrEventAlreadyProcessed
		}
	}

	if err := s.repo.MarkProcessed(ctx, s.db, stored.ID, now); err != nil {
		return err
	}

	s.metrics.IncEvent(provider, "accepted")
	s.log.Info("webhook event ingested",
		zap.String("provider", provider),
		zap.String("event_type", string(event.Type)),
		zap.String("provider_event_id", event.ProviderEventID),
	)
	return nil
}

func (s *Service) ListEvents(ctx context.Context, provider string, limit int) ([]domain.EventRecord, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return nil, domain.ErrInvalidProvider
	}
	return s.repo.ListEvents(ctx, s.db, provider, limit)
}

func verifyFailureReason(err error) string {
	var verr *webhook.VerificationError
	if errors.As(err, &verr) {
		return strings.ReplaceAll(verr.Reason, " ", "_")
	}
	if errors.Is(err, providerdomain.ErrInvalidInput) {
		return "missing_secret"
	}
	return "unknown"
}
