package models

import "time"

// Appointment statuses. Cancelled and no-show appointments never count toward
// slot conflicts.
const (
	AppointmentPending   = "pending" // public booking awaiting provider confirmation
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

// Appointment sources: which surface created the booking.
const (
	SourceProvider = "provider" // provider's own agenda
	SourcePortal   = "portal"   // authenticated patient portal
	SourcePublic   = "public"   // unauthenticated public booking page
)

type Appointment struct {
	ID              string    `bson:"id" json:"id,omitempty"`
	ProviderID      string    `bson:"providerId" json:"providerId"`
	PatientID       string    `bson:"patientId,omitempty" json:"patientId,omitempty"`
	ScheduledAt     time.Time `bson:"scheduledAt" json:"scheduledAt"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	Source          string    `bson:"source" json:"source"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PriceMinorUnits int64     `bson:"priceMinorUnits" json:"priceMinorUnits"`
	Currency        string    `bson:"currency,omitempty" json:"currency,omitempty"`

	// Contact details captured by the public booking page before a patient
	// record exists.
	ContactName  string `bson:"contactName,omitempty" json:"contactName,omitempty"`
	ContactEmail string `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
	ContactPhone string `bson:"contactPhone,omitempty" json:"contactPhone,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// CountsTowardConflicts reports whether this appointment occupies its window
// for overlap purposes.
func (a Appointment) CountsTowardConflicts() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentNoShow
}

// BookingRequest books a slot on a provider's calendar. Date and StartTime
// must correspond to a slot produced by the resolver; the write path re-checks
// conflicts regardless.
type BookingRequest struct {
	PatientID       string `json:"patientId"`
	Date            string `json:"date" binding:"required"`      // "2006-01-02"
	StartTime       string `json:"startTime" binding:"required"` // "HH:MM"
	DurationMinutes int    `json:"durationMinutes"`              // 0 = provider default
	Notes           string `json:"notes"`
}

// PublicBookingRequest is the unauthenticated variant carrying contact details.
type PublicBookingRequest struct {
	Date         string `json:"date" binding:"required"`
	StartTime    string `json:"startTime" binding:"required"`
	ContactName  string `json:"contactName" binding:"required"`
	ContactEmail string `json:"contactEmail" binding:"required,email"`
	ContactPhone string `json:"contactPhone"`
	Notes        string `json:"notes"`
}

// RescheduleRequest moves an existing appointment to a new conflict-checked start.
type RescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
}
