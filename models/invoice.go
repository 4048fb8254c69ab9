package models

import "time"

// Invoice statuses.
const (
	InvoiceOpen = "open"
	InvoicePaid = "paid"
	InvoiceVoid = "void"
)

// Invoice charges a patient for one appointment. Amounts are minor units
// (cents) to avoid float money arithmetic.
type Invoice struct {
	ID                    string     `bson:"id" json:"id,omitempty"`
	ProviderID            string     `bson:"providerId" json:"providerId"`
	PatientID             string     `bson:"patientId" json:"patientId"`
	AppointmentID         string     `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	AmountMinorUnits      int64      `bson:"amountMinorUnits" json:"amountMinorUnits"`
	Currency              string     `bson:"currency" json:"currency"`
	Description           string     `bson:"description,omitempty" json:"description,omitempty"`
	Status                string     `bson:"status" json:"status"`
	StripePaymentIntentID string     `bson:"stripePaymentIntentId,omitempty" json:"stripePaymentIntentId,omitempty"`
	IssuedAt              time.Time  `bson:"issuedAt" json:"issuedAt"`
	PaidAt                *time.Time `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
}

// InvoiceRequest issues an invoice; a zero amount falls back to the provider's
// session price.
type InvoiceRequest struct {
	PatientID        string `json:"patientId" binding:"required"`
	AppointmentID    string `json:"appointmentId"`
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	Description      string `json:"description"`
}

// PaymentIntentResponse carries the Stripe client secret back to the portal.
type PaymentIntentResponse struct {
	InvoiceID    string `json:"invoiceId"`
	ClientSecret string `json:"clientSecret"`
}
