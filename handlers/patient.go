package handlers

import (
	"net/http"

	"praxis/models"
	"praxis/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PatientHandler exposes provider-side patient management.
type PatientHandler struct {
	Service patient.PatientService
}

func NewPatientHandler(svc patient.PatientService) *PatientHandler {
	return &PatientHandler{Service: svc}
}

func (h *PatientHandler) CreateHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.PatientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	pat, err := h.Service.CreatePatient(c.Request.Context(), providerID, req)
	if err != nil {
		logger.Error("Patient creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pat)
}

func (h *PatientHandler) ListHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	patients, err := h.Service.ListPatients(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (h *PatientHandler) GetHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	pat, err := h.Service.GetPatientByID(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pat)
}

func (h *PatientHandler) UpdateHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var req models.PatientRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	pat, err := h.Service.UpdatePatient(c.Request.Context(), providerID, c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pat)
}

func (h *PatientHandler) ArchiveHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.ArchivePatient(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "archived"})
}

func (h *PatientHandler) DeleteHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.DeletePatient(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// EnablePortalHandler turns on portal login for an existing patient.
func (h *PatientHandler) EnablePortalHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req struct {
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Service.EnablePortal(c.Request.Context(), providerID, c.Param("id"), req.Password); err != nil {
		logger.Error("Portal enable failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "portal enabled"})
}
