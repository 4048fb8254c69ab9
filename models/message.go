package models

import "time"

// Sender roles on a message thread.
const (
	SenderProvider = "provider"
	SenderPatient  = "patient"
)

// MessageThread is the single conversation between a provider and one of
// their patients.
type MessageThread struct {
	ID            string    `bson:"id" json:"id,omitempty"`
	ProviderID    string    `bson:"providerId" json:"providerId"`
	PatientID     string    `bson:"patientId" json:"patientId"`
	LastMessageAt time.Time `bson:"lastMessageAt" json:"lastMessageAt,omitzero"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

type Message struct {
	ID         string     `bson:"id" json:"id,omitempty"`
	ThreadID   string     `bson:"threadId" json:"threadId"`
	SenderRole string     `bson:"senderRole" json:"senderRole"` // "provider" or "patient"
	SenderID   string     `bson:"senderId" json:"senderId"`
	Body       string     `bson:"body" json:"body"`
	SentAt     time.Time  `bson:"sentAt" json:"sentAt"`
	ReadAt     *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`
}

// SendMessageRequest posts a message into a thread (created on first use).
type SendMessageRequest struct {
	PatientID string `json:"patientId"` // required for provider senders
	Body      string `json:"body" binding:"required"`
}
