package handlers

import (
	"errors"
	"net/http"

	"praxis/models"
	"praxis/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the provider-side agenda.
type AppointmentHandler struct {
	Booking booking.BookingService
}

func NewAppointmentHandler(svc booking.BookingService) *AppointmentHandler {
	return &AppointmentHandler{Booking: svc}
}

func (h *AppointmentHandler) ListHandler(c *gin.Context) {
	providerID := c.GetString("providerID")
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required"})
		return
	}

	appts, err := h.Booking.ListAgenda(c.Request.Context(), providerID, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

func (h *AppointmentHandler) GetHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	appt, err := h.Booking.GetAppointment(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Booking.Book(c.Request.Context(), providerID, req, models.SourceProvider)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Booking rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Booking.Reschedule(c.Request.Context(), providerID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Reschedule rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

func (h *AppointmentHandler) CancelHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Booking.Cancel(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// StatusHandler moves an appointment through its lifecycle
// (confirm, complete, no-show).
func (h *AppointmentHandler) StatusHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.Booking.UpdateStatus(c.Request.Context(), providerID, c.Param("id"), req.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
