package domain

import "testing"

func TestResultInvariants(t *testing.T) {
	ok := Succeeded(Payment{ExternalID: "pay_1"})
	if !ok.OK() || ok.Data == nil || ok.Error != nil {
		t.Fatalf("success envelope broken: %+v", ok)
	}

	pending := RequiresAction(CheckoutSession{SessionID: "cs_1"}, NextAction{Type: "redirect", URL: "https://x"})
	if !pending.OK() || pending.Data == nil || pending.NextAction == nil || pending.Error != nil {
		t.Fatalf("requires_action envelope broken: %+v", pending)
	}

	failed := Failed[Payment](&Error{Code: ErrCodeCardDeclined})
	if failed.OK() || failed.Data != nil || failed.Error == nil {
		t.Fatalf("failed envelope broken: %+v", failed)
	}
}

func TestFailedNeverCarriesNilError(t *testing.T) {
	failed := Failed[Payment](nil)
	if failed.Error == nil || failed.Error.Code != ErrCodeUnknown {
		t.Fatalf("nil error must degrade to unknown_error, got %+v", failed.Error)
	}
}
