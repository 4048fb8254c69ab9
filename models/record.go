package models

import "time"

// SessionRecord is a clinical note a provider keeps for a session. Records are
// visible only to the owning provider, never through the patient portal.
type SessionRecord struct {
	ID            string    `bson:"id" json:"id,omitempty"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	PatientID     string    `bson:"patientId" json:"patientId"`
	AppointmentID string    `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Title         string    `bson:"title" json:"title"`
	Content       string    `bson:"content" json:"content"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// SessionRecordRequest creates or updates a clinical note.
type SessionRecordRequest struct {
	PatientID     string `json:"patientId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	Title         string `json:"title" binding:"required"`
	Content       string `json:"content"`
}
