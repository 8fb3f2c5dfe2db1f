package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed, provider-agnostic error vocabulary. Vendor codes
// are translated into this set before they reach a caller.
type ErrorCode string

const (
	ErrCodeCardDeclined              ErrorCode = "card_declined"
	ErrCodeInsufficientFunds         ErrorCode = "insufficient_funds"
	ErrCodeExpiredCard               ErrorCode = "expired_card"
	ErrCodeIncorrectCVC              ErrorCode = "incorrect_cvc"
	ErrCodeAuthenticationRequired    ErrorCode = "authentication_required"
	ErrCodeResourceNotFound          ErrorCode = "resource_not_found"
	ErrCodeResourceAlreadyExists     ErrorCode = "resource_already_exists"
	ErrCodeIdempotencyKeyConflict    ErrorCode = "idempotency_key_conflict"
	ErrCodeInvalidAmount             ErrorCode = "invalid_amount"
	ErrCodeInvalidCurrency           ErrorCode = "invalid_currency"
	ErrCodePaymentMethodNotSupported ErrorCode = "payment_method_not_supported"
	ErrCodeLimitExceeded             ErrorCode = "limit_exceeded"
	ErrCodeAccountSuspended          ErrorCode = "account_suspended"
	ErrCodeRefundAlreadyProcessed    ErrorCode = "refund_already_processed"
	ErrCodeDisputeLost               ErrorCode = "dispute_lost"
	ErrCodeRefundWindowExpired       ErrorCode = "refund_window_expired"
	ErrCodeFraudDetected             ErrorCode = "fraud_detected"
	ErrCodeInvalidEmail              ErrorCode = "invalid_email"
	ErrCodeRateLimitExceeded         ErrorCode = "rate_limit_exceeded"
	ErrCodeInvalidCredentials        ErrorCode = "invalid_credentials"
	ErrCodeProviderUnavailable       ErrorCode = "provider_unavailable"
	ErrCodeInternalError             ErrorCode = "internal_error"
	ErrCodeNotImplemented            ErrorCode = "not_implemented"
	ErrCodeInvalidState              ErrorCode = "invalid_state"
	ErrCodeUnknown                   ErrorCode = "unknown_error"
)

// Error is a normalized vendor failure. It travels inside a Result envelope,
// never as a Go error; routine business outcomes are returned, not thrown.
type Error struct {
	Code ErrorCode `json:"code"`
	// Message is safe to surface to operators, not to end customers.
	Message string `json:"message,omitempty"`
	// ProviderCode preserves the raw vendor code for diagnostics, including
	// codes that mapped to ErrCodeUnknown.
	ProviderCode string `json:"provider_code,omitempty"`
}

func (e *Error) String() string {
	if e == nil {
		return ""
	}
	if e.ProviderCode != "" {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.ProviderCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotImplementedError reports a call to an operation the provider does not
// support. It is a programmer error, returned as a Go error so it can never
// be mistaken for a vendor-reported business failure.
type NotImplementedError struct {
	Provider string
	Op       string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("provider %s does not implement %s", e.Provider, e.Op)
}

var (
	ErrProviderNotFound   = errors.New("provider_not_found")
	ErrManifestNotFound   = errors.New("manifest_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidInput       = errors.New("invalid_input")
	ErrEventIgnored       = errors.New("event_ignored")
)
