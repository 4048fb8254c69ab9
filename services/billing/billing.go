package billing

import (
	"context"
	"fmt"
	"time"

	"praxis/models"
	"praxis/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CreateInvoice issues an open invoice for a patient. A zero amount falls
// back to the provider's configured session price.
func (s *DefaultBillingService) CreateInvoice(ctx context.Context, providerID string, req models.InvoiceRequest) (*models.Invoice, error) {
	pat, err := s.Patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil || pat.ProviderID != providerID {
		return nil, fmt.Errorf("patient not found")
	}

	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}

	amount := req.AmountMinorUnits
	if amount == 0 {
		amount = prov.SchedulingConfig.SessionPriceMinorUnits
	}
	if amount <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive")
	}
	currency := prov.SchedulingConfig.Currency
	if currency == "" {
		currency = "BRL"
	}

	inv := &models.Invoice{
		ID:               uuid.New().String(),
		ProviderID:       providerID,
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		AmountMinorUnits: amount,
		Currency:         currency,
		Description:      req.Description,
		Status:           models.InvoiceOpen,
		IssuedAt:         time.Now(),
	}
	if err := s.Repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return inv, nil
}

func (s *DefaultBillingService) GetInvoice(ctx context.Context, providerID, id string) (*models.Invoice, error) {
	inv, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if inv == nil || inv.ProviderID != providerID {
		return nil, fmt.Errorf("invoice not found")
	}
	return inv, nil
}

func (s *DefaultBillingService) ListProviderInvoices(ctx context.Context, providerID string) ([]models.Invoice, error) {
	invoices, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *DefaultBillingService) ListPatientInvoices(ctx context.Context, patientID string) ([]models.Invoice, error) {
	invoices, err := s.Repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *DefaultBillingService) VoidInvoice(ctx context.Context, providerID, id string) error {
	inv, err := s.GetInvoice(ctx, providerID, id)
	if err != nil {
		return err
	}
	if inv.Status == models.InvoicePaid {
		return fmt.Errorf("paid invoices cannot be voided")
	}
	if err := s.Repo.UpdateStatus(ctx, providerID, id, models.InvoiceVoid); err != nil {
		return fmt.Errorf("failed to void invoice: %w", err)
	}
	return nil
}

// MarkInvoicePaid settles an invoice out of band (cash, bank transfer).
func (s *DefaultBillingService) MarkInvoicePaid(ctx context.Context, providerID, id string) error {
	inv, err := s.GetInvoice(ctx, providerID, id)
	if err != nil {
		return err
	}
	if inv.Status != models.InvoiceOpen {
		return fmt.Errorf("only open invoices can be marked paid")
	}
	if err := s.Repo.MarkPaid(ctx, id, time.Now()); err != nil {
		return fmt.Errorf("failed to mark invoice paid: %w", err)
	}
	return nil
}

// CreatePaymentIntent opens a Stripe PaymentIntent for the patient's open
// invoice. The invoice ID rides in the intent metadata so the webhook can
// settle it.
func (s *DefaultBillingService) CreatePaymentIntent(ctx context.Context, patientID, invoiceID string) (*models.PaymentIntentResponse, error) {
	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if inv == nil || inv.PatientID != patientID {
		return nil, fmt.Errorf("invoice not found")
	}
	if inv.Status != models.InvoiceOpen {
		return nil, fmt.Errorf("invoice is %s, not payable", inv.Status)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(inv.AmountMinorUnits),
		Currency: stripe.String(inv.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("invoiceId", inv.ID)
	params.AddMetadata("providerId", inv.ProviderID)

	intent, err := paymentintent.New(params)
	if err != nil {
		utils.GetLogger().Error("Stripe payment intent failed", zap.String("invoiceId", inv.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.Repo.SetPaymentIntent(ctx, inv.ID, intent.ID); err != nil {
		return nil, fmt.Errorf("failed to store payment intent id: %w", err)
	}
	return &models.PaymentIntentResponse{InvoiceID: inv.ID, ClientSecret: intent.ClientSecret}, nil
}

// HandlePaymentSucceeded settles the invoice for a succeeded intent. Replayed
// events are ignored once the invoice is already paid.
func (s *DefaultBillingService) HandlePaymentSucceeded(ctx context.Context, paymentIntentID, invoiceID string) error {
	inv, err := s.Repo.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to fetch invoice: %w", err)
	}
	if inv == nil {
		return fmt.Errorf("invoice %s not found for payment intent %s", invoiceID, paymentIntentID)
	}
	if inv.Status == models.InvoicePaid {
		return nil
	}
	if inv.StripePaymentIntentID != "" && inv.StripePaymentIntentID != paymentIntentID {
		return fmt.Errorf("payment intent mismatch for invoice %s", invoiceID)
	}
	if err := s.Repo.MarkPaid(ctx, invoiceID, time.Now()); err != nil {
		return fmt.Errorf("failed to settle invoice: %w", err)
	}
	utils.GetLogger().Info("Invoice settled via Stripe",
		zap.String("invoiceId", invoiceID), zap.String("paymentIntentId", paymentIntentID))
	return nil
}
