package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	obscontext "github.com/revstack-dev/revstack/internal/observability/context"
	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
)

// providerCall resolves the target provider and its decrypted call context.
// The slug is recorded on the request context so downstream logs carry it;
// the Idempotency-Key header, when present, is forwarded to the vendor on
// mutating calls.
func (s *Server) providerCall(c *gin.Context) (providerdomain.Provider, providerdomain.CallContext, bool) {
	slug := strings.TrimSpace(c.Param("provider"))
	ctx := obscontext.WithProvider(c.Request.Context(), slug)
	c.Request = c.Request.WithContext(ctx)

	p, err := s.registry.Get(slug)
	if err != nil {
		AbortWithError(c, err)
		return nil, providerdomain.CallContext{}, false
	}
	call, err := s.providerSvc.ResolveCallContext(
		ctx, slug, strings.TrimSpace(c.GetHeader("Idempotency-Key")))
	if err != nil {
		AbortWithError(c, err)
		return nil, providerdomain.CallContext{}, false
	}
	return p, call, true
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req providerdomain.CreatePaymentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CreatePayment(c.Request.Context(), call, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetPayment(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.GetPayment(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CapturePayment(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CapturePayment(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type refundRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

func (s *Server) RefundPayment(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.RefundPayment(c.Request.Context(), call, providerdomain.RefundPaymentInput{
		PaymentID: strings.TrimSpace(c.Param("id")),
		Amount:    req.Amount,
		Reason:    strings.TrimSpace(req.Reason),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ListPayments(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.ListPayments(c.Request.Context(), call, providerdomain.ListPaymentsInput{
		CustomerID: strings.TrimSpace(c.Query("customer_id")),
		Limit:      limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) CreateCheckoutSession(c *gin.Context) {
	var req providerdomain.CreateCheckoutSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CreateCheckoutSession(c.Request.Context(), call, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
