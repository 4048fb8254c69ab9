package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"praxis/models"
	"praxis/services/booking"
	"praxis/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes slot resolution: the provider's own calendar, the
// authenticated portal view, and the unauthenticated public booking page.
type ScheduleHandler struct {
	Booking booking.BookingService
}

func NewScheduleHandler(svc booking.BookingService) *ScheduleHandler {
	return &ScheduleHandler{Booking: svc}
}

// MySlotsHandler resolves one date on the authenticated provider's calendar.
func (h *ScheduleHandler) MySlotsHandler(c *gin.Context) {
	h.respondSlots(c, c.GetString("providerID"))
}

// MyDaysHandler returns the provider's own selectable-day strip.
func (h *ScheduleHandler) MyDaysHandler(c *gin.Context) {
	h.respondDays(c, c.GetString("providerID"))
}

// SlotsHandler resolves slots for a provider by ID (portal surface).
func (h *ScheduleHandler) SlotsHandler(c *gin.Context) {
	h.respondSlots(c, c.Param("providerID"))
}

func (h *ScheduleHandler) DaysHandler(c *gin.Context) {
	h.respondDays(c, c.Param("providerID"))
}

// PublicBookHandler creates a pending appointment from the public page.
func (h *ScheduleHandler) PublicBookHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.Param("providerID")

	var req models.PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Booking.BookPublic(c.Request.Context(), providerID, req)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Public booking rejected", zap.String("providerId", providerID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

func (h *ScheduleHandler) respondSlots(c *gin.Context, providerID string) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	day, err := h.Booking.ListSlots(c.Request.Context(), providerID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (h *ScheduleHandler) respondDays(c *gin.Context, providerID string) {
	from := c.Query("from")
	if from == "" {
		from = scheduling.FormatDate(time.Now().UTC())
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		days = 30
	}

	selectable, err := h.Booking.ListSelectableDays(c.Request.Context(), providerID, from, days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": selectable})
}
