package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"praxis/config"
	"praxis/models"
	"praxis/services/billing"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const webhookTolerance = 5 * time.Minute

// BillingHandler exposes provider-side invoicing and the Stripe webhook.
type BillingHandler struct {
	Service billing.BillingService
}

func NewBillingHandler(svc billing.BillingService) *BillingHandler {
	return &BillingHandler{Service: svc}
}

func (h *BillingHandler) CreateInvoiceHandler(c *gin.Context) {
	logger := getLogger(c)
	providerID := c.GetString("providerID")

	var req models.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	inv, err := h.Service.CreateInvoice(c.Request.Context(), providerID, req)
	if err != nil {
		logger.Error("Invoice creation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *BillingHandler) ListInvoicesHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	invoices, err := h.Service.ListProviderInvoices(c.Request.Context(), providerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *BillingHandler) GetInvoiceHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	inv, err := h.Service.GetInvoice(c.Request.Context(), providerID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *BillingHandler) VoidInvoiceHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.VoidInvoice(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "void"})
}

// MarkPaidHandler settles an invoice paid out of band (cash, bank transfer).
func (h *BillingHandler) MarkPaidHandler(c *gin.Context) {
	providerID := c.GetString("providerID")

	if err := h.Service.MarkInvoicePaid(c.Request.Context(), providerID, c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "paid"})
}

// StripeWebhookHandler settles invoices from payment_intent.succeeded events.
// No bearer auth; the signature check is the authentication.
func (h *BillingHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	secret := config.AppConfig.StripeWebhookSecret
	if secret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "stripe webhook not configured"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEventWithTolerance(body, c.GetHeader("Stripe-Signature"), secret, webhookTolerance)
	if err != nil {
		logger.Warn("Stripe webhook signature rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event payload"})
			return
		}
		invoiceID := intent.Metadata["invoiceId"]
		if invoiceID == "" {
			logger.Warn("Payment intent without invoice metadata", zap.String("paymentIntentId", intent.ID))
			break
		}
		if err := h.Service.HandlePaymentSucceeded(c.Request.Context(), intent.ID, invoiceID); err != nil {
			logger.Error("Failed to settle invoice from webhook",
				zap.String("invoiceId", invoiceID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to settle invoice"})
			return
		}
	default:
		// Other event types are acknowledged and ignored.
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
