package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	providerdomain "github.com/revstack-dev/revstack/internal/provider/domain"
)

func (s *Server) CreateCustomer(c *gin.Context) {
	var req providerdomain.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.CreateCustomer(c.Request.Context(), call, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetCustomer(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.GetCustomer(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req providerdomain.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.UpdateCustomer(c.Request.Context(), call, strings.TrimSpace(c.Param("id")), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	if err := p.DeleteCustomer(c.Request.Context(), call, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type attachPaymentMethodRequest struct {
	Token string `json:"token"`
}

func (s *Server) AttachPaymentMethod(c *gin.Context) {
	var req attachPaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		AbortWithError(c, newValidationError("token", "required", "token is required"))
		return
	}
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.AttachPaymentMethod(c.Request.Context(), call, strings.TrimSpace(c.Param("id")), strings.TrimSpace(req.Token))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ListPaymentMethods(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.ListPaymentMethods(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) GetPaymentMethod(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	result, err := p.GetPaymentMethod(c.Request.Context(), call, strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) DetachPaymentMethod(c *gin.Context) {
	p, call, ok := s.providerCall(c)
	if !ok {
		return
	}
	if err := p.DetachPaymentMethod(c.Request.Context(), call, strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
