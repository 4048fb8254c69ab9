package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"praxis/models"
	"praxis/services/billing"
	"praxis/services/booking"
	"praxis/services/messaging"
	"praxis/services/patient"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PortalHandler serves the authenticated patient portal: own profile,
// appointments, invoices, and the message thread with the provider.
type PortalHandler struct {
	Patients  patient.PatientService
	Booking   booking.BookingService
	Billing   billing.BillingService
	Messaging messaging.MessagingService
}

func NewPortalHandler(
	patients patient.PatientService,
	bookingSvc booking.BookingService,
	billingSvc billing.BillingService,
	messagingSvc messaging.MessagingService,
) *PortalHandler {
	return &PortalHandler{
		Patients:  patients,
		Booking:   bookingSvc,
		Billing:   billingSvc,
		Messaging: messagingSvc,
	}
}

func (h *PortalHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	resp, err := h.Patients.AuthenticatePortal(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Portal login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PortalHandler) MeHandler(c *gin.Context) {
	patientID := c.GetString("patientID")
	providerID := c.GetString("patientProviderID")

	pat, err := h.Patients.GetPatientByID(c.Request.Context(), providerID, patientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pat)
}

func (h *PortalHandler) UpdateFCMTokenHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Patients.UpdateFCMToken(c.Request.Context(), patientID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *PortalHandler) LogoutHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	if err := h.Patients.RevokePortalToken(c.Request.Context(), patientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}

func (h *PortalHandler) ListAppointmentsHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	appts, err := h.Booking.ListPatientAppointments(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// BookHandler books a slot with the patient's own provider. Portal bookings
// start pending until the provider confirms.
func (h *PortalHandler) BookHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("patientID")
	providerID := c.GetString("patientProviderID")

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.PatientID = patientID

	appt, err := h.Booking.Book(c.Request.Context(), providerID, req, models.SourcePortal)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Warn("Portal booking rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CancelAppointmentHandler lets a patient cancel their own appointment.
func (h *PortalHandler) CancelAppointmentHandler(c *gin.Context) {
	patientID := c.GetString("patientID")
	providerID := c.GetString("patientProviderID")

	appt, err := h.Booking.GetAppointment(c.Request.Context(), providerID, c.Param("id"))
	if err != nil || appt.PatientID != patientID {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if err := h.Booking.Cancel(c.Request.Context(), providerID, appt.ID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *PortalHandler) ListInvoicesHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	invoices, err := h.Billing.ListPatientInvoices(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// PayInvoiceHandler opens a Stripe PaymentIntent and returns the client
// secret for the portal's payment form.
func (h *PortalHandler) PayInvoiceHandler(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString("patientID")

	resp, err := h.Billing.CreatePaymentIntent(c.Request.Context(), patientID, c.Param("id"))
	if err != nil {
		logger.Error("Payment intent failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PortalHandler) ListThreadsHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	threads, err := h.Messaging.ListPatientThreads(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (h *PortalHandler) ListMessagesHandler(c *gin.Context) {
	patientID := c.GetString("patientID")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	msgs, err := h.Messaging.ListMessages(c.Request.Context(), c.Param("threadID"), models.SenderPatient, patientID, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *PortalHandler) SendMessageHandler(c *gin.Context) {
	patientID := c.GetString("patientID")

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	msg, err := h.Messaging.SendAsPatient(c.Request.Context(), patientID, req.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}
