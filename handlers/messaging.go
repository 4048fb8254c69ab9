package handlers

import (
	"net/http"
	"strconv"

	"praxis/models"
	"praxis/services/messaging"

	"github.com/gin-gonic/gin"
)

// MessagingHandler exposes the provider side of patient conversations.
type MessagingHandler struct {
	Service messaging.MessagingService
}

func NewMessagingHandler(svc messaging.MessagingService) *MessagingHandler {
	return &MessagingHandler{Service: svc}
}

func (h *MessagingHandler) ListThreadsHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	threads, err := h.Service.ListProviderThreads(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (h *MessagingHandler) ListMessagesHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	msgs, err := h.Service.ListMessages(c.Request.Context(), c.Param("threadID"), models.SenderProvider, providerID, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *MessagingHandler) SendHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	msg, err := h.Service.SendAsProvider(c.Request.Context(), providerID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessagingHandler) UnreadCountHandler(c *gin.Context) {
	count, err := h.Service.CountUnread(c.Request.Context(), c.Param("threadID"), models.SenderProvider)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
