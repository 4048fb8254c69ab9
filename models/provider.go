package models

import (
	"time"
)

// Profile holds the public-facing details of a provider (psychologist).
type Profile struct {
	FullName         string `bson:"fullName" json:"fullName,omitempty"`
	Title            string `bson:"title" json:"title,omitempty"` // e.g., "Clinical Psychologist"
	Email            string `bson:"email" json:"email,omitempty"`
	PhoneNumber      string `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	RegistrationCode string `bson:"registrationCode" json:"registrationCode,omitempty"` // professional license number
	Bio              string `bson:"bio" json:"bio,omitempty"`
	ProfileImage     string `bson:"profileImage" json:"profileImage,omitempty"`
	Status           string `bson:"status" json:"status,omitempty"` // "pending", "active", "suspended"
}

type Security struct {
	Password     string `bson:"-" json:"password,omitempty"`
	PasswordHash string `bson:"passwordHash" json:"-"`
	Token        string `bson:"-" json:"token,omitempty"`
	TokenHash    string `bson:"tokenHash" json:"-"`
}

// SchedulingConfig is the provider's booking configuration consulted by the
// slot resolver for every surface (agenda, portal, public page).
type SchedulingConfig struct {
	SessionDurationMinutes       int    `bson:"sessionDurationMinutes" json:"sessionDurationMinutes"`
	SessionPriceMinorUnits       int64  `bson:"sessionPriceMinorUnits" json:"sessionPriceMinorUnits"` // cents
	Currency                     string `bson:"currency" json:"currency"`                             // e.g., "BRL"
	BufferBetweenSessionsMinutes int    `bson:"bufferBetweenSessionsMinutes" json:"bufferBetweenSessionsMinutes"`
	AllowParallelSessions        bool   `bson:"allowParallelSessions" json:"allowParallelSessions"`
	PublicBookingEnabled         bool   `bson:"publicBookingEnabled" json:"publicBookingEnabled"`
}

type Provider struct {
	ID               string           `bson:"id" json:"id,omitempty"`
	Profile          Profile          `bson:"profile" json:"profile"`
	Security         Security         `bson:"security" json:"security,omitzero"`
	SchedulingConfig SchedulingConfig `bson:"schedulingConfig" json:"schedulingConfig,omitzero"`
	FCMToken         string           `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// ProviderRegistrationRequest is the payload for provider sign-up.
type ProviderRegistrationRequest struct {
	FullName         string `json:"fullName" binding:"required"`
	Title            string `json:"title"`
	Email            string `json:"email" binding:"required,email"`
	PhoneNumber      string `json:"phoneNumber"`
	RegistrationCode string `json:"registrationCode"`
	Password         string `json:"password" binding:"required,min=8"`
}

// ProviderAuthResponse is returned after a successful login or registration.
type ProviderAuthResponse struct {
	Provider *Provider `json:"provider"`
	Token    string    `json:"token"`
}
