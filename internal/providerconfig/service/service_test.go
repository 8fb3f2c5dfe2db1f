package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/revstack-dev/revstack/internal/clock"
	"github.com/revstack-dev/revstack/internal/config"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/gate"
	"github.com/revstack-dev/revstack/internal/provider/registry"
	"github.com/revstack-dev/revstack/internal/providerconfig/domain"
	"github.com/revstack-dev/revstack/internal/providerconfig/repository"
)

type fakeAdapter struct {
	validCreds bool
	registered []string
}

func (a *fakeAdapter) ValidateCredentials(ctx context.Context, call providerdomain.CallContext) (bool, error) {
	return a.validCreds, nil
}

func (a *fakeAdapter) RegisterWebhook(ctx context.Context, call providerdomain.CallContext, url string) (string, string, error) {
	a.registered = append(a.registered, url)
	return "we_fake_1", "whsec_fake_secret", nil
}

func (a *fakeAdapter) DeregisterWebhook(ctx context.Context, call providerdomain.CallContext, endpointID string) error {
	return nil
}

func fakeManifest() providerdomain.Manifest {
	return providerdomain.Manifest{
		Slug: "fakepay",
		Name: "Fake Pay",
		Capabilities: providerdomain.Capabilities{
			Payments: providerdomain.PaymentCapabilities{Supported: true},
			Webhooks: providerdomain.WebhookCapabilities{Supported: true, Register: true, SignatureHeader: "Fake-Signature"},
		},
		ConfigSchema: testSchema(),
	}
}

func newTestService(t *testing.T, adapter *fakeAdapter) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&domain.ProviderConfig{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	r := registry.New()
	r.Register("fakepay", func() (providerdomain.Provider, error) {
		return gate.New(fakeManifest(), adapter, zap.NewNop()), nil
	})

	svc := NewService(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
		Cfg: config.Config{
			ProviderConfigSecret: "test-master-secret",
			WebhookBaseURL:       "https://platform.example.com",
			CatalogCacheTTL:      time.Minute,
		},
		Registry: r,
		Repo:     repository.Provide(),
	})
	return svc, conn
}

func TestUpsertConfigStoresEncrypted(t *testing.T) {
	svc, conn := newTestService(t, &fakeAdapter{validCreds: true})
	ctx := context.Background()

	row, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{
		"secret_key": "sk_test_abc123",
		"test_mode":  true,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if !row.TestMode {
		t.Fatalf("test_mode flag not captured")
	}

	var stored domain.ProviderConfig
	if err := conn.Where("provider = ?", "fakepay").First(&stored).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if strings.Contains(string(stored.Config), "sk_test_abc123") {
		t.Fatalf("config stored in plaintext: %s", stored.Config)
	}
	if stored.IsActive {
		t.Fatalf("upsert must not activate the provider")
	}
}

func TestUpsertConfigRejectsSchemaViolations(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: true})

	_, err := svc.UpsertConfig(context.Background(), "fakepay", map[string]any{
		"secret_key": "not-a-key",
	})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestInstallActivatesAndRegistersWebhook(t *testing.T) {
	adapter := &fakeAdapter{validCreds: true}
	svc, _ := newTestService(t, adapter)
	ctx := context.Background()

	if _, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{"secret_key": "sk_test_abc123"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	row, err := svc.Install(ctx, "fakepay")
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if !row.IsActive || !row.WebhookRegistered || row.WebhookEndpointID != "we_fake_1" {
		t.Fatalf("install state wrong: %+v", row)
	}
	if len(adapter.registered) != 1 || adapter.registered[0] != "https://platform.example.com/v1/webhooks/fakepay" {
		t.Fatalf("webhook url wrong: %v", adapter.registered)
	}

	call, err := svc.ResolveCallContext(ctx, "fakepay", "idem-1")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if call.ConfigString("secret_key") != "sk_test_abc123" {
		t.Fatalf("decrypted config missing secret_key")
	}
	if call.ConfigString("webhook_secret") != "whsec_fake_secret" {
		t.Fatalf("decrypted webhook secret missing, got %q", call.ConfigString("webhook_secret"))
	}
	if call.IdempotencyKey != "idem-1" {
		t.Fatalf("idempotency key not forwarded")
	}
}

func TestInstallWithoutConfigFails(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: true})
	if _, err := svc.Install(context.Background(), "fakepay"); !errors.Is(err, domain.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestInstallRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: false})
	ctx := context.Background()

	if _, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{"secret_key": "sk_test_abc123"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.Install(ctx, "fakepay"); !errors.Is(err, providerdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResolveCallContextRequiresActiveProvider(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: true})
	ctx := context.Background()

	if _, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{"secret_key": "sk_test_abc123"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.ResolveCallContext(ctx, "fakepay", ""); !errors.Is(err, domain.ErrProviderInactive) {
		t.Fatalf("expected ErrProviderInactive, got %v", err)
	}
}

func TestUninstallDeactivates(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: true})
	ctx := context.Background()

	if _, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{"secret_key": "sk_test_abc123"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.Install(ctx, "fakepay"); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := svc.Uninstall(ctx, "fakepay"); err != nil {
		t.Fatalf("uninstall: %v", err)
	}

	if _, err := svc.ResolveCallContext(ctx, "fakepay", ""); !errors.Is(err, domain.ErrProviderInactive) {
		t.Fatalf("expected inactive after uninstall, got %v", err)
	}
}

func TestListCatalogReportsInstallState(t *testing.T) {
	svc, _ := newTestService(t, &fakeAdapter{validCreds: true})
	ctx := context.Background()

	entries, err := svc.ListCatalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if len(entries) != 1 || entries[0].Configured || entries[0].Active {
		t.Fatalf("fresh catalog should be unconfigured: %+v", entries)
	}

	if _, err := svc.UpsertConfig(ctx, "fakepay", map[string]any{"secret_key": "sk_test_abc123"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := svc.Install(ctx, "fakepay"); err != nil {
		t.Fatalf("install: %v", err)
	}

	entries, err = svc.ListCatalog(ctx)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !entries[0].Configured || !entries[0].Active {
		t.Fatalf("catalog should reflect install: %+v", entries[0])
	}
}
