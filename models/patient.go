package models

import "time"

// Patient is a person under the care of a provider. Every patient document is
// tenant-scoped by ProviderID; the same person seeing two providers exists as
// two patient records.
type Patient struct {
	ID            string    `bson:"id" json:"id,omitempty"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	FullName      string    `bson:"fullName" json:"fullName"`
	Email         string    `bson:"email" json:"email,omitempty"`
	PhoneNumber   string    `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	BirthDate     string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"` // "2006-01-02"
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`         // administrative notes, not clinical
	Security      Security  `bson:"security" json:"security,omitzero"`
	PortalEnabled bool      `bson:"portalEnabled" json:"portalEnabled"`
	FCMToken      string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	Status        string    `bson:"status" json:"status,omitempty"` // "active", "archived"
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// PatientRegistrationRequest creates a patient record under the authenticated provider.
type PatientRegistrationRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	BirthDate   string `json:"birthDate"`
	Notes       string `json:"notes"`
	// When set, the patient gets portal access with this initial password.
	PortalPassword string `json:"portalPassword"`
}

// PatientAuthResponse is returned after a successful portal login.
type PatientAuthResponse struct {
	Patient *Patient `json:"patient"`
	Token   string   `json:"token"`
}
