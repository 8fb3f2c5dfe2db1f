package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	obscontext "github.com/revstack-dev/revstack/internal/observability/context"
	paymentdomain "github.com/revstack-dev/revstack/internal/payment/domain"
)

// maxWebhookBody caps delivery payloads so a hostile sender cannot exhaust
// memory before signature verification.
const maxWebhookBody = 1 << 20

func (s *Server) HandleWebhook(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	ctx := obscontext.WithProvider(c.Request.Context(), provider)
	c.Request = c.Request.WithContext(ctx)

	// The raw body bytes must reach the verifier untouched; any
	// re-serialization would invalidate the signature.
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	err = s.paymentSvc.IngestWebhook(ctx, provider, payload, c.Request.Header)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrEventAlreadyProcessed) {
			c.JSON(http.StatusOK, gin.H{"status": "duplicate"})
			return
		}
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListProviderEvents(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	events, err := s.paymentSvc.ListEvents(c.Request.Context(), provider, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}
