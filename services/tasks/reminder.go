package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"praxis/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask marshals the payload into a task scheduled for fireAt.
// Delivery is retried at most three times, then the reminder is dropped.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	if payload.ID == "" || payload.AppointmentID == "" {
		return nil, nil, fmt.Errorf("reminder payload missing recipient or appointment")
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return asynq.NewTask(TypeSendReminder, b), opts, nil
}
