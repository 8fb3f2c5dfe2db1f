package stripe

import (
	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// Status mapping is total by construction: anything Stripe sends that the
// tables below do not know degrades to the most conservative value instead
// of failing, because an unmapped status must never crash a settlement
// pipeline.

var paymentStatuses = map[string]domain.PaymentStatus{
	"requires_payment_method": domain.PaymentStatusPending,
	"requires_confirmation":   domain.PaymentStatusPending,
	"requires_action":         domain.PaymentStatusRequiresAction,
	"processing":              domain.PaymentStatusProcessing,
	"requires_capture":        domain.PaymentStatusProcessing,
	"succeeded":               domain.PaymentStatusSucceeded,
	"canceled":                domain.PaymentStatusCanceled,
}

func mapPaymentStatus(vendorStatus string) domain.PaymentStatus {
	if status, ok := paymentStatuses[vendorStatus]; ok {
		return status
	}
	return domain.PaymentStatusPending
}

var subscriptionStatuses = map[string]domain.SubscriptionStatus{
	"incomplete":         domain.SubscriptionStatusIncomplete,
	"incomplete_expired": domain.SubscriptionStatusIncompleteExpired,
	"trialing":           domain.SubscriptionStatusTrialing,
	"active":             domain.SubscriptionStatusActive,
	"past_due":           domain.SubscriptionStatusPastDue,
	"paused":             domain.SubscriptionStatusPaused,
	"canceled":           domain.SubscriptionStatusCanceled,
	"unpaid":             domain.SubscriptionStatusUnpaid,
}

func mapSubscriptionStatus(vendorStatus string) domain.SubscriptionStatus {
	if status, ok := subscriptionStatuses[vendorStatus]; ok {
		return status
	}
	return domain.SubscriptionStatusActive
}
