package billing

import (
	"context"

	invoiceRepo "praxis/database/repository/invoice"
	patientRepo "praxis/database/repository/patient"
	providerRepo "praxis/database/repository/provider"
	"praxis/models"
)

// BillingService issues invoices and collects payments through Stripe.
type BillingService interface {
	CreateInvoice(ctx context.Context, providerID string, req models.InvoiceRequest) (*models.Invoice, error)
	GetInvoice(ctx context.Context, providerID, id string) (*models.Invoice, error)
	ListProviderInvoices(ctx context.Context, providerID string) ([]models.Invoice, error)
	ListPatientInvoices(ctx context.Context, patientID string) ([]models.Invoice, error)
	VoidInvoice(ctx context.Context, providerID, id string) error
	MarkInvoicePaid(ctx context.Context, providerID, id string) error

	// CreatePaymentIntent opens a Stripe PaymentIntent for an open invoice
	// and returns the client secret the portal needs to collect the card.
	CreatePaymentIntent(ctx context.Context, patientID, invoiceID string) (*models.PaymentIntentResponse, error)
	// HandlePaymentSucceeded settles the invoice referenced by a Stripe
	// payment_intent.succeeded event.
	HandlePaymentSucceeded(ctx context.Context, paymentIntentID, invoiceID string) error
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Repo      invoiceRepo.InvoiceRepository
	Providers providerRepo.ProviderRepository
	Patients  patientRepo.PatientRepository
}

func NewDefaultBillingService(
	repo invoiceRepo.InvoiceRepository,
	providers providerRepo.ProviderRepository,
	patients patientRepo.PatientRepository,
) *DefaultBillingService {
	return &DefaultBillingService{Repo: repo, Providers: providers, Patients: patients}
}
