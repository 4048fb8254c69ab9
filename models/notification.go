package models

// ReminderPayload is the asynq task body for a scheduled appointment reminder.
type ReminderPayload struct {
	Target        string `json:"target"` // "provider" or "patient"
	ID            string `json:"id"`     // recipient account ID
	AppointmentID string `json:"appointmentId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"` // RFC3339
}
