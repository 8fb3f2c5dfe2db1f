package stripe

import (
	"errors"
	"testing"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

func TestBuildCheckoutParamsPriceReference(t *testing.T) {
	params, err := buildCheckoutParams(domain.CallContext{}, domain.CreateCheckoutSessionInput{
		Mode:       domain.CheckoutModeSubscription,
		LineItems:  []domain.LineItem{{PriceID: "price_x", Quantity: 1}},
		SuccessURL: "https://a/ok",
		CancelURL:  "https://a/no",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(params.LineItems) != 1 {
		t.Fatalf("expected one line item, got %d", len(params.LineItems))
	}
	line := params.LineItems[0]
	if line.Price == nil || *line.Price != "price_x" {
		t.Fatalf("expected price reference price_x, got %+v", line)
	}
	if line.PriceData != nil {
		t.Fatal("price reference must not carry inline price data")
	}
}

func TestBuildCheckoutParamsInlineSubscriptionPriceNeedsInterval(t *testing.T) {
	in := domain.CreateCheckoutSessionInput{
		Mode:       domain.CheckoutModeSubscription,
		LineItems:  []domain.LineItem{{UnitAmount: 999, Currency: "usd", Quantity: 1}},
		SuccessURL: "https://a/ok",
		CancelURL:  "https://a/no",
	}
	if _, err := buildCheckoutParams(domain.CallContext{}, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("inline subscription price without interval must fail, got %v", err)
	}

	in.LineItems[0].Interval = "month"
	params, err := buildCheckoutParams(domain.CallContext{}, in)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	priceData := params.LineItems[0].PriceData
	if priceData == nil || priceData.Recurring == nil || *priceData.Recurring.Interval != "month" {
		t.Fatalf("expected recurring interval month, got %+v", priceData)
	}
}

func TestBuildCheckoutParamsOneTimeRejectsInterval(t *testing.T) {
	in := domain.CreateCheckoutSessionInput{
		Mode:       domain.CheckoutModePayment,
		LineItems:  []domain.LineItem{{UnitAmount: 2500, Currency: "eur", Interval: "month"}},
		SuccessURL: "https://a/ok",
		CancelURL:  "https://a/no",
	}
	if _, err := buildCheckoutParams(domain.CallContext{}, in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("one-time session with recurring interval must fail, got %v", err)
	}
}

func TestBuildCheckoutParamsValidation(t *testing.T) {
	base := domain.CreateCheckoutSessionInput{
		Mode:       domain.CheckoutModePayment,
		LineItems:  []domain.LineItem{{PriceID: "price_x"}},
		SuccessURL: "https://a/ok",
		CancelURL:  "https://a/no",
	}

	bad := base
	bad.Mode = "donation"
	if _, err := buildCheckoutParams(domain.CallContext{}, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("unknown mode: got %v", err)
	}

	bad = base
	bad.SuccessURL = ""
	if _, err := buildCheckoutParams(domain.CallContext{}, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing success url: got %v", err)
	}

	bad = base
	bad.LineItems = nil
	if _, err := buildCheckoutParams(domain.CallContext{}, bad); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("missing line items: got %v", err)
	}

	// Setup mode legitimately has no line items.
	setup := base
	setup.Mode = domain.CheckoutModeSetup
	setup.LineItems = nil
	if _, err := buildCheckoutParams(domain.CallContext{}, setup); err != nil {
		t.Errorf("setup mode without line items: got %v", err)
	}
}

func TestClientPoolMemoizesPerKey(t *testing.T) {
	pool := newClientPool(0)

	first := pool.get("sk_test_a")
	second := pool.get("sk_test_a")
	other := pool.get("sk_test_b")

	if first != second {
		t.Fatal("same key must return the same memoized handle")
	}
	if first == other {
		t.Fatal("different keys must not share a handle")
	}
}
