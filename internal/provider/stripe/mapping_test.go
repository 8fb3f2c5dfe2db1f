package stripe

import (
	"testing"

	"github.com/stripe/stripe-go/v81"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

func TestMapPaymentStatusIsTotal(t *testing.T) {
	known := map[string]domain.PaymentStatus{
		"requires_payment_method": domain.PaymentStatusPending,
		"requires_confirmation":   domain.PaymentStatusPending,
		"requires_action":         domain.PaymentStatusRequiresAction,
		"processing":              domain.PaymentStatusProcessing,
		"requires_capture":        domain.PaymentStatusProcessing,
		"succeeded":               domain.PaymentStatusSucceeded,
		"canceled":                domain.PaymentStatusCanceled,
	}
	for vendor, want := range known {
		if got := mapPaymentStatus(vendor); got != want {
			t.Errorf("mapPaymentStatus(%q) = %q, want %q", vendor, got, want)
		}
	}
	// An unmapped status degrades to the conservative default.
	if got := mapPaymentStatus("some_future_status"); got != domain.PaymentStatusPending {
		t.Errorf("unmapped payment status = %q, want pending", got)
	}
}

func TestMapSubscriptionStatusIsTotal(t *testing.T) {
	vendorStatuses := []string{
		"incomplete", "incomplete_expired", "trialing", "active",
		"past_due", "paused", "canceled", "unpaid",
	}
	for _, vendor := range vendorStatuses {
		if got := mapSubscriptionStatus(vendor); got == "" {
			t.Errorf("mapSubscriptionStatus(%q) returned empty status", vendor)
		}
	}
	if got := mapSubscriptionStatus("brand_new_state"); got != domain.SubscriptionStatusActive {
		t.Errorf("unmapped subscription status = %q, want active", got)
	}
}

func TestMapErrorCodeTwoTierLookup(t *testing.T) {
	cases := []struct {
		code    string
		decline string
		errType string
		want    domain.ErrorCode
	}{
		// Tier 1: specific code wins.
		{"expired_card", "", "card_error", domain.ErrCodeExpiredCard},
		{"charge_already_refunded", "", "invalid_request_error", domain.ErrCodeRefundAlreadyProcessed},
		{"resource_missing", "", "invalid_request_error", domain.ErrCodeResourceNotFound},
		// Decline code fills in when the code itself is generic.
		{"card_declined", "insufficient_funds", "card_error", domain.ErrCodeCardDeclined},
		{"unknown_to_us", "insufficient_funds", "card_error", domain.ErrCodeInsufficientFunds},
		// Tier 2: category fallback.
		{"unknown_to_us", "", "card_error", domain.ErrCodeCardDeclined},
		{"unknown_to_us", "", "rate_limit_error", domain.ErrCodeRateLimitExceeded},
		{"unknown_to_us", "", "authentication_error", domain.ErrCodeInvalidCredentials},
		// Tier 3: closed-set fallback, never a crash.
		{"unknown_to_us", "", "unknown_type", domain.ErrCodeUnknown},
		{"", "", "", domain.ErrCodeUnknown},
	}
	for _, tc := range cases {
		if got := mapErrorCode(tc.code, tc.decline, tc.errType); got != tc.want {
			t.Errorf("mapErrorCode(%q, %q, %q) = %q, want %q", tc.code, tc.decline, tc.errType, got, tc.want)
		}
	}
}

func TestNormalizeErrorPreservesVendorCode(t *testing.T) {
	vendorErr := &stripe.Error{
		Type: stripe.ErrorTypeInvalidRequest,
		Code: "a_code_we_never_catalogued",
		Msg:  "something new",
	}
	normalized := normalizeError(vendorErr)
	if normalized.Code != domain.ErrCodeInvalidState {
		t.Fatalf("expected category fallback invalid_state, got %q", normalized.Code)
	}
	if normalized.ProviderCode != "a_code_we_never_catalogued" {
		t.Fatalf("original vendor code must be preserved, got %q", normalized.ProviderCode)
	}
}

func TestNormalizeErrorNonStripeFailure(t *testing.T) {
	normalized := normalizeError(assertError("connection refused"))
	if normalized.Code != domain.ErrCodeInternalError {
		t.Fatalf("expected internal_error for unknown failures, got %q", normalized.Code)
	}
}

type assertError string

func (e assertError) Error() string { return string(e) }
