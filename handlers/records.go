package handlers

import (
	"net/http"

	"praxis/models"
	"praxis/services/records"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecordHandler exposes clinical session notes, provider-only.
type RecordHandler struct {
	Service records.RecordService
}

func NewRecordHandler(svc records.RecordService) *RecordHandler {
	return &RecordHandler{Service: svc}
}

func (h *RecordHandler) CreateHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.SessionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rec, err := h.Service.CreateRecord(c.Request.Context(), providerID, req)
	if err != nil {
		logger.Error("Record creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *RecordHandler) GetHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	rec, err := h.Service.GetRecord(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecordHandler) ListByPatientHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	recs, err := h.Service.ListPatientRecords(c.Request.Context(), providerID, c.Param("patientID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": recs})
}

func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var req models.SessionRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	rec, err := h.Service.UpdateRecord(c.Request.Context(), providerID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *RecordHandler) DeleteHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.DeleteRecord(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
