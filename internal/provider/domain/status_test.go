package domain

import "testing"

func TestSubscriptionStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to SubscriptionStatus }{
		{SubscriptionStatusIncomplete, SubscriptionStatusIncompleteExpired},
		{SubscriptionStatusIncomplete, SubscriptionStatusTrialing},
		{SubscriptionStatusIncomplete, SubscriptionStatusActive},
		{SubscriptionStatusActive, SubscriptionStatusPastDue},
		{SubscriptionStatusPastDue, SubscriptionStatusActive},
		{SubscriptionStatusActive, SubscriptionStatusPaused},
		{SubscriptionStatusPaused, SubscriptionStatusActive},
		{SubscriptionStatusPaused, SubscriptionStatusCanceled},
		{SubscriptionStatusPastDue, SubscriptionStatusUnpaid},
		{SubscriptionStatusTrialing, SubscriptionStatusCanceled},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to SubscriptionStatus }{
		{SubscriptionStatusCanceled, SubscriptionStatusActive},
		{SubscriptionStatusUnpaid, SubscriptionStatusActive},
		{SubscriptionStatusIncompleteExpired, SubscriptionStatusActive},
		{SubscriptionStatusPaused, SubscriptionStatusPastDue},
		{SubscriptionStatusIncomplete, SubscriptionStatusPaused},
	}
	for _, tc := range denied {
		if tc.from.CanTransition(tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []SubscriptionStatus{
		SubscriptionStatusCanceled,
		SubscriptionStatusIncompleteExpired,
		SubscriptionStatusUnpaid,
	}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
		for next := range subscriptionTransitions {
			if status.CanTransition(next) {
				t.Errorf("terminal %s must not transition to %s", status, next)
			}
		}
	}
	for _, status := range []SubscriptionStatus{SubscriptionStatusActive, SubscriptionStatusPastDue, SubscriptionStatusPaused} {
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}
