package registry

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/gate"
)

func stubProvider(slug string) domain.Provider {
	return gate.New(domain.Manifest{Slug: slug}, struct{}{}, zap.NewNop())
}

func TestGetLoadsLazilyAndOnce(t *testing.T) {
	r := New()
	var loads atomic.Int32
	r.Register("stub", func() (domain.Provider, error) {
		loads.Add(1)
		return stubProvider("stub"), nil
	})

	if got := loads.Load(); got != 0 {
		t.Fatalf("loader must not run at registration, ran %d times", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Get("stub"); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loads.Load(); got != 1 {
		t.Fatalf("expected exactly one load under concurrent first use, got %d", got)
	}
}

func TestGetUnknownSlugListsRegistered(t *testing.T) {
	r := New()
	r.Register("stripe", func() (domain.Provider, error) { return stubProvider("stripe"), nil })
	r.Register("adyen", func() (domain.Provider, error) { return stubProvider("adyen"), nil })

	_, err := r.Get("paypal")
	if !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected ErrProviderNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "adyen, stripe") {
		t.Fatalf("expected sorted slug list in error, got %q", err.Error())
	}
}

func TestGetNormalizesSlug(t *testing.T) {
	r := New()
	r.Register("Stripe", func() (domain.Provider, error) { return stubProvider("stripe"), nil })

	if _, err := r.Get("  STRIPE "); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}
}

func TestManifestsReportPerSlugFailures(t *testing.T) {
	r := New()
	r.Register("good", func() (domain.Provider, error) { return stubProvider("good"), nil })
	r.Register("broken", func() (domain.Provider, error) { return nil, errors.New("missing manifest") })

	manifests, failures := r.Manifests()
	if len(manifests) != 1 || manifests[0].Slug != "good" {
		t.Fatalf("expected the healthy provider to load, got %+v", manifests)
	}
	if len(failures) != 1 || failures["broken"] == nil {
		t.Fatalf("expected a per-slug failure for broken, got %v", failures)
	}
}

func TestLoaderErrorDoesNotPanicProcess(t *testing.T) {
	r := New()
	r.Register("flaky", func() (domain.Provider, error) { return nil, errors.New("boom") })

	if _, err := r.Get("flaky"); err == nil {
		t.Fatal("expected load error")
	}
	// Second call reports the same cached failure instead of reloading.
	if _, err := r.Get("flaky"); err == nil {
		t.Fatal("expected cached load error")
	}
}
