package models

import "time"

// AvailabilityRule defines a provider's open window for one weekday.
// Times are wall-clock "HH:MM" strings; validation happens at the settings
// boundary, never inside the resolver.
type AvailabilityRule struct {
	ID         string    `bson:"id" json:"id,omitempty"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	DayOfWeek  int       `bson:"dayOfWeek" json:"dayOfWeek"` // 0 = Sunday .. 6 = Saturday
	StartTime  string    `bson:"startTime" json:"startTime"` // e.g., "09:00"
	EndTime    string    `bson:"endTime" json:"endTime"`     // e.g., "18:00"
	IsActive   bool      `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// BlockedInterval is an explicit closure carved out of an otherwise-open day
// (lunch extension, personal leave, a conference afternoon).
type BlockedInterval struct {
	ID         string    `bson:"id" json:"id,omitempty"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"`           // "2006-01-02"
	StartTime  string    `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime    string    `bson:"endTime" json:"endTime"`     // "HH:MM"
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// UpsertAvailabilityRequest is the payload to replace a weekday's open window.
type UpsertAvailabilityRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	IsActive  bool   `json:"isActive"`
}

// CreateBlockedIntervalRequest is the payload to close off part of a date.
type CreateBlockedIntervalRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason"`
}
