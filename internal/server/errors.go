package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentdomain "github.com/revstack-dev/revstack/internal/payment/domain"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
	providerconfigdomain "github.com/revstack-dev/revstack/internal/providerconfig/domain"
)

var ErrNotFound = errors.New("not_found")

type apiError struct {
	status  int
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return e.Code + ": " + e.Message
}

func invalidRequestError() error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    "invalid_request",
		Message: "request body could not be parsed",
	}
}

func newValidationError(field, code, message string) error {
	return &apiError{
		status:  http.StatusBadRequest,
		Code:    code,
		Field:   field,
		Message: message,
	}
}

// AbortWithError translates service errors into HTTP responses. Sentinel
// errors map to stable status codes; anything unmatched is a 500 with no
// detail leaked.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.status, gin.H{"error": api})
		return
	}

	var notImplemented *providerdomain.NotImplementedError
	if errors.As(err, &notImplemented) {
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"error": gin.H{
			"code":     "not_implemented",
			"provider": notImplemented.Provider,
			"op":       notImplemented.Op,
		}})
		return
	}

	var violation *providerconfigdomain.SchemaViolation
	if errors.As(err, &violation) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "invalid_config",
			"field":   violation.Field,
			"message": violation.Error(),
		}})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, providerdomain.ErrProviderNotFound),
		errors.Is(err, paymentdomain.ErrProviderNotFound):
		status, code = http.StatusNotFound, "provider_not_found"
	case errors.Is(err, providerconfigdomain.ErrConfigNotFound):
		status, code = http.StatusNotFound, "provider_config_not_found"
	case errors.Is(err, providerconfigdomain.ErrProviderInactive):
		status, code = http.StatusConflict, "provider_inactive"
	case errors.Is(err, providerdomain.ErrInvalidCredentials):
		status, code = http.StatusUnprocessableEntity, "invalid_credentials"
	case errors.Is(err, providerconfigdomain.ErrInvalidConfig):
		status, code = http.StatusBadRequest, "invalid_config"
	case errors.Is(err, providerconfigdomain.ErrEncryptionKeyMissing):
		status, code = http.StatusServiceUnavailable, "encryption_unavailable"
	case errors.Is(err, providerdomain.ErrInvalidInput):
		status, code = http.StatusBadRequest, "invalid_input"
	case errors.Is(err, paymentdomain.ErrInvalidProvider):
		status, code = http.StatusBadRequest, "invalid_provider"
	case errors.Is(err, paymentdomain.ErrInvalidPayload),
		errors.Is(err, paymentdomain.ErrInvalidEvent):
		status, code = http.StatusBadRequest, "invalid_payload"
	case errors.Is(err, paymentdomain.ErrInvalidSignature):
		status, code = http.StatusBadRequest, "invalid_signature"
	}

	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": code}})
}
