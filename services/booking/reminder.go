package booking

import (
	"fmt"
	"time"

	"praxis/models"
	"praxis/services/tasks"
	"praxis/utils"

	"go.uber.org/zap"
)

const reminderLead = 24 * time.Hour

// scheduleReminder enqueues a push reminder 24 hours before the session, for
// the provider and, when the appointment has a patient record, the patient.
// Appointments closer than the lead time get no reminder.
func (s *DefaultBookingService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	fireAt := appt.ScheduledAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return
	}

	when := appt.ScheduledAt.Format("02 Jan 15:04")
	targets := []models.ReminderPayload{
		{
			Target:        "provider",
			ID:            appt.ProviderID,
			AppointmentID: appt.ID,
			Title:         "Upcoming session",
			Body:          fmt.Sprintf("You have a session tomorrow at %s", when),
			FireDate:      fireAt.Format(time.RFC3339),
		},
	}
	if appt.PatientID != "" {
		targets = append(targets, models.ReminderPayload{
			Target:        "patient",
			ID:            appt.PatientID,
			AppointmentID: appt.ID,
			Title:         "Appointment reminder",
			Body:          fmt.Sprintf("Your session is tomorrow at %s", when),
			FireDate:      fireAt.Format(time.RFC3339),
		})
	}

	for _, payload := range targets {
		task, opts, err := tasks.NewReminderTask(payload, fireAt)
		if err != nil {
			utils.GetLogger().Error("Failed to build reminder task", zap.Error(err))
			continue
		}
		if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
			utils.GetLogger().Error("Failed to enqueue reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}
}
