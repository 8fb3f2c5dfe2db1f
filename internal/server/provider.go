package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) ListProviders(c *gin.Context) {
	entries, err := s.providerSvc.ListCatalog(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Server) UpsertProviderConfig(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	row, err := s.providerSvc.UpsertConfig(c.Request.Context(), provider, values)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) InstallProvider(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	row, err := s.providerSvc.Install(c.Request.Context(), provider)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": row})
}

func (s *Server) UninstallProvider(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	if err := s.providerSvc.Uninstall(c.Request.Context(), provider); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type setActiveRequest struct {
	Active *bool `json:"active"`
}

func (s *Server) SetProviderActive(c *gin.Context) {
	provider := strings.TrimSpace(c.Param("provider"))
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		AbortWithError(c, newValidationError("active", "required", "active is required"))
		return
	}

	if err := s.providerSvc.SetActive(c.Request.Context(), provider, *req.Active); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
