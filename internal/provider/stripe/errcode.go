package stripe

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v81"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

// errorCodes maps specific Stripe error and decline codes. Lookup order is
// code, then decline code, then the coarser error type, then UnknownError;
// every vendor exception becomes a closed-set code the caller can branch on.
var errorCodes = map[string]domain.ErrorCode{
	"card_declined":                     domain.ErrCodeCardDeclined,
	"expired_card":                      domain.ErrCodeExpiredCard,
	"incorrect_cvc":                     domain.ErrCodeIncorrectCVC,
	"invalid_cvc":                       domain.ErrCodeIncorrectCVC,
	"insufficient_funds":                domain.ErrCodeInsufficientFunds,
	"authentication_required":           domain.ErrCodeAuthenticationRequired,
	"payment_intent_authentication_failure": domain.ErrCodeAuthenticationRequired,
	"resource_missing":                  domain.ErrCodeResourceNotFound,
	"resource_already_exists":           domain.ErrCodeResourceAlreadyExists,
	"idempotency_key_in_use":            domain.ErrCodeIdempotencyKeyConflict,
	"amount_too_large":                  domain.ErrCodeInvalidAmount,
	"amount_too_small":                  domain.ErrCodeInvalidAmount,
	"invalid_currency":                  domain.ErrCodeInvalidCurrency,
	"currency_not_supported":            domain.ErrCodeInvalidCurrency,
	"payment_method_not_available":      domain.ErrCodePaymentMethodNotSupported,
	"payment_method_unactivated":        domain.ErrCodePaymentMethodNotSupported,
	"card_decline_rate_limit_exceeded":  domain.ErrCodeLimitExceeded,
	"account_closed":                    domain.ErrCodeAccountSuspended,
	"account_frozen":                    domain.ErrCodeAccountSuspended,
	"charge_already_refunded":           domain.ErrCodeRefundAlreadyProcessed,
	"charge_disputed":                   domain.ErrCodeDisputeLost,
	"charge_expired_for_capture":        domain.ErrCodeRefundWindowExpired,
	"fraudulent":                        domain.ErrCodeFraudDetected,
	"email_invalid":                     domain.ErrCodeInvalidEmail,
	"rate_limit":                        domain.ErrCodeRateLimitExceeded,
	"api_key_expired":                   domain.ErrCodeInvalidCredentials,
	"lock_timeout":                      domain.ErrCodeProviderUnavailable,
}

// errorTypes is the coarse second tier, keyed by Stripe's error category.
var errorTypes = map[string]domain.ErrorCode{
	"card_error":           domain.ErrCodeCardDeclined,
	"rate_limit_error":     domain.ErrCodeRateLimitExceeded,
	"authentication_error": domain.ErrCodeInvalidCredentials,
	"idempotency_error":    domain.ErrCodeIdempotencyKeyConflict,
	"invalid_request_error": domain.ErrCodeInvalidState,
	"api_error":            domain.ErrCodeProviderUnavailable,
}

func mapErrorCode(vendorCode, declineCode, vendorType string) domain.ErrorCode {
	if code, ok := errorCodes[vendorCode]; ok {
		return code
	}
	if code, ok := errorCodes[declineCode]; ok {
		return code
	}
	if code, ok := errorTypes[vendorType]; ok {
		return code
	}
	return domain.ErrCodeUnknown
}

// normalizeError turns any SDK failure into a domain.Error for the result
// envelope. The original vendor code rides along for diagnostics, including
// codes that were not catalogued yet.
func normalizeError(err error) *domain.Error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		vendorCode := string(stripeErr.Code)
		if vendorCode == "" {
			vendorCode = string(stripeErr.Type)
		}
		return &domain.Error{
			Code:         mapErrorCode(string(stripeErr.Code), string(stripeErr.DeclineCode), string(stripeErr.Type)),
			Message:      stripeErr.Msg,
			ProviderCode: vendorCode,
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.Error{
			Code:    domain.ErrCodeProviderUnavailable,
			Message: err.Error(),
		}
	}
	return &domain.Error{
		Code:    domain.ErrCodeInternalError,
		Message: err.Error(),
	}
}
