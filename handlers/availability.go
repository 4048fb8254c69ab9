package handlers

import (
	"net/http"

	"praxis/models"
	"praxis/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes weekly-rule and blocked-interval management.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

func (h *AvailabilityHandler) UpsertRuleHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rule, err := h.Service.UpsertRule(c.Request.Context(), providerID, req)
	if err != nil {
		logger.Warn("Availability rule rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *AvailabilityHandler) ListRulesHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	rules, err := h.Service.ListRules(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *AvailabilityHandler) DeleteRuleHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	ruleID := c.Param("id")

	if err := h.Service.DeleteRule(c.Request.Context(), providerID, ruleID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *AvailabilityHandler) CreateBlockedHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.CreateBlockedIntervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	blocked, err := h.Service.CreateBlockedInterval(c.Request.Context(), providerID, req)
	if err != nil {
		logger.Warn("Blocked interval rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, blocked)
}

func (h *AvailabilityHandler) ListBlockedHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	dateFrom := c.Query("from")
	dateTo := c.Query("to")

	intervals, err := h.Service.ListBlockedIntervals(c.Request.Context(), providerID, dateFrom, dateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": intervals})
}

func (h *AvailabilityHandler) DeleteBlockedHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	blockedID := c.Param("id")

	if err := h.Service.DeleteBlockedInterval(c.Request.Context(), providerID, blockedID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
