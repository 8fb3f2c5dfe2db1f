package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
)

func (s *Server) CreateSubscription(c *gin.Context) {
	var req providerdomain.CreateSubscriptionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CreateSubscription(c.Request.Context(), call, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetSubscription(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.GetSubscription(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type updateSubscriptionRequest struct {
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

func (s *Server) UpdateSubscription(c *gin.Context) {
	var req updateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.UpdateSubscription(c.Request.Context(), call, providerdomain.UpdateSubscriptionInput{
		SubscriptionID: strings.TrimSpace(c.Param("id")),
		PriceID:        strings.TrimSpace(req.PriceID),
		Quantity:       req.Quantity,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

type subscriptionReasonRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) CancelSubscription(c *gin.Context) {
	var req subscriptionReasonRequest
	_ = c.ShouldBindJSON(&req)
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CancelSubscription(c.Request.Context(), call, strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.Reason))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) PauseSubscription(c *gin.Context) {
	var req subscriptionReasonRequest
	_ = c.ShouldBindJSON(&req)
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.PauseSubscription(c.Request.Context(), call, strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.Reason))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ResumeSubscription(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.ResumeSubscription(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}
