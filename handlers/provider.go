package handlers

import (
	"net/http"

	"praxis/models"
	"praxis/services/provider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes provider account and configuration endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: svc}
}

func (h *ProviderHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ProviderRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Provider registration failed", zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProviderHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Provider login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProviderHandler) MeHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	prov, err := h.Service.GetProviderByID(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	prov, err := h.Service.UpdateProfile(c.Request.Context(), providerID, profile)
	if err != nil {
		logger.Error("Profile update failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prov)
}

func (h *ProviderHandler) GetConfigHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	cfg, err := h.Service.GetSchedulingConfig(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *ProviderHandler) UpdateConfigHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var cfg models.SchedulingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	stored, err := h.Service.UpdateSchedulingConfig(c.Request.Context(), providerID, cfg)
	if err != nil {
		logger.Error("Scheduling config update failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stored)
}

func (h *ProviderHandler) UpdateFCMTokenHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.UpdateFCMToken(c.Request.Context(), providerID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *ProviderHandler) RevokeTokenHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.RevokeAuthToken(c.Request.Context(), providerID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (h *ProviderHandler) DeleteHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	if err := h.Service.DeleteProvider(c.Request.Context(), providerID); err != nil {
		logger.Error("Provider deletion failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
