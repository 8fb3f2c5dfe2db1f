package domain

// PaymentStatus is the closed payment state vocabulary.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusRequiresAction    PaymentStatus = "requires_action"
	PaymentStatusProcessing        PaymentStatus = "processing"
	PaymentStatusSucceeded         PaymentStatus = "succeeded"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusCanceled          PaymentStatus = "canceled"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// SubscriptionStatus is the closed subscription state vocabulary.
type SubscriptionStatus string

const (
	SubscriptionStatusIncomplete        SubscriptionStatus = "incomplete"
	SubscriptionStatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	SubscriptionStatusTrialing          SubscriptionStatus = "trialing"
	SubscriptionStatusActive            SubscriptionStatus = "active"
	SubscriptionStatusPastDue           SubscriptionStatus = "past_due"
	SubscriptionStatusPaused            SubscriptionStatus = "paused"
	SubscriptionStatusCanceled          SubscriptionStatus = "canceled"
	SubscriptionStatusUnpaid            SubscriptionStatus = "unpaid"
)

// subscriptionTransitions encodes the allowed state machine:
// incomplete -> (incomplete_expired | trialing | active); active <-> past_due;
// active -> paused -> (active | canceled); past_due -> unpaid after exhausted
// retries; any non-terminal state -> canceled.
var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusIncomplete: {
		SubscriptionStatusIncompleteExpired,
		SubscriptionStatusTrialing,
		SubscriptionStatusActive,
		SubscriptionStatusCanceled,
	},
	SubscriptionStatusTrialing: {
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusCanceled,
	},
	SubscriptionStatusActive: {
		SubscriptionStatusPastDue,
		SubscriptionStatusPaused,
		SubscriptionStatusCanceled,
	},
	SubscriptionStatusPastDue: {
		SubscriptionStatusActive,
		SubscriptionStatusUnpaid,
		SubscriptionStatusCanceled,
	},
	SubscriptionStatusPaused: {
		SubscriptionStatusActive,
		SubscriptionStatusCanceled,
	},
}

// IsTerminal reports whether no further transitions exist from s.
func (s SubscriptionStatus) IsTerminal() bool {
	switch s {
	case SubscriptionStatusCanceled, SubscriptionStatusIncompleteExpired, SubscriptionStatusUnpaid:
		return true
	}
	return false
}

// CanTransition reports whether the state machine allows moving from s to next.
func (s SubscriptionStatus) CanTransition(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
