package booking

import (
	"context"
	"fmt"
	"time"

	"praxis/models"
	"praxis/services/scheduling"
	"praxis/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSlotUnavailable is returned when the write-side conflict check finds the
// requested start no longer bookable.
var ErrSlotUnavailable = fmt.Errorf("slot no longer available")

const slotHoldTTL = 30 * time.Second

// Book creates an appointment on behalf of the provider agenda or the patient
// portal. The resolver's output is advisory; this path re-resolves the day and
// takes a short Redis hold on the start time before persisting.
func (s *DefaultBookingService) Book(ctx context.Context, providerID string, req models.BookingRequest, source string) (*models.Appointment, error) {
	if source != models.SourceProvider && source != models.SourcePortal {
		return nil, fmt.Errorf("invalid booking source %q", source)
	}
	day, startMin, err := parseSlotRef(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}

	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	cfg := prov.SchedulingConfig

	if req.PatientID != "" {
		pat, err := s.Patients.GetByID(ctx, req.PatientID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch patient: %w", err)
		}
		if pat == nil || pat.ProviderID != providerID {
			return nil, fmt.Errorf("patient not found")
		}
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = cfg.SessionDurationMinutes
	}

	status := models.AppointmentConfirmed
	if source == models.SourcePortal {
		status = models.AppointmentPending
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		ProviderID:      providerID,
		PatientID:       req.PatientID,
		ScheduledAt:     day.Add(time.Duration(startMin) * time.Minute),
		DurationMinutes: duration,
		Status:          status,
		Source:          source,
		Notes:           req.Notes,
		PriceMinorUnits: cfg.SessionPriceMinorUnits,
		Currency:        cfg.Currency,
	}

	if err := s.commitSlot(ctx, appt, req.Date, req.StartTime, cfg.AllowParallelSessions); err != nil {
		return nil, err
	}

	s.scheduleReminder(appt)
	return appt, nil
}

// BookPublic creates a pending appointment from the unauthenticated booking
// page, carrying contact details instead of a patient ID.
func (s *DefaultBookingService) BookPublic(ctx context.Context, providerID string, req models.PublicBookingRequest) (*models.Appointment, error) {
	day, startMin, err := parseSlotRef(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}

	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	cfg := prov.SchedulingConfig
	if !cfg.PublicBookingEnabled {
		return nil, fmt.Errorf("online booking is disabled for this provider")
	}

	appt := &models.Appointment{
		ID:              uuid.New().String(),
		ProviderID:      providerID,
		ScheduledAt:     day.Add(time.Duration(startMin) * time.Minute),
		DurationMinutes: cfg.SessionDurationMinutes,
		Status:          models.AppointmentPending,
		Source:          models.SourcePublic,
		Notes:           req.Notes,
		PriceMinorUnits: cfg.SessionPriceMinorUnits,
		Currency:        cfg.Currency,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	}

	if err := s.commitSlot(ctx, appt, req.Date, req.StartTime, cfg.AllowParallelSessions); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		_ = s.Notifier.SendProviderPush(context.Background(), providerID,
			"New booking request",
			fmt.Sprintf("%s requested %s at %s", req.ContactName, req.Date, req.StartTime),
			map[string]string{"type": "booking_request", "appointmentId": appt.ID})
	}
	return appt, nil
}

// Reschedule moves an appointment to a new conflict-checked start.
func (s *DefaultBookingService) Reschedule(ctx context.Context, providerID, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error) {
	day, startMin, err := parseSlotRef(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}

	appt, err := s.GetAppointment(ctx, providerID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.CountsTowardConflicts() {
		return nil, fmt.Errorf("appointment is %s and cannot be rescheduled", appt.Status)
	}

	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}

	// Same hold-then-check sequence as a fresh booking, so a reschedule
	// racing a booking for the same start serializes on the Redis hold.
	release, err := s.acquireSlotHold(ctx, providerID, req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	defer release()

	newStart := day.Add(time.Duration(startMin) * time.Minute)
	if err := s.checkSlotFree(ctx, providerID, req.Date, req.StartTime, appt.DurationMinutes, prov.SchedulingConfig.AllowParallelSessions, appointmentID); err != nil {
		return nil, err
	}
	if err := s.Appointments.UpdateSchedule(ctx, providerID, appointmentID, newStart); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	appt.ScheduledAt = newStart
	appt.UpdatedAt = time.Now()
	s.scheduleReminder(appt)
	return appt, nil
}

// Cancel marks the appointment cancelled. Its window immediately stops
// counting toward conflicts.
func (s *DefaultBookingService) Cancel(ctx context.Context, providerID, appointmentID string) error {
	return s.UpdateStatus(ctx, providerID, appointmentID, models.AppointmentCancelled)
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, providerID, appointmentID, status string) error {
	switch status {
	case models.AppointmentPending, models.AppointmentConfirmed,
		models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow:
	default:
		return fmt.Errorf("invalid appointment status %q", status)
	}
	if err := s.Appointments.UpdateStatus(ctx, providerID, appointmentID, status); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) GetAppointment(ctx context.Context, providerID, appointmentID string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	if appt == nil || appt.ProviderID != providerID {
		return nil, fmt.Errorf("appointment not found")
	}
	return appt, nil
}

func (s *DefaultBookingService) ListAgenda(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.Appointment, error) {
	from, err := scheduling.ParseDate(dateFrom)
	if err != nil {
		return nil, err
	}
	to, err := scheduling.ParseDate(dateTo)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("dateTo must not precede dateFrom")
	}
	appts, err := s.Appointments.ListByProviderInRange(ctx, providerID, from, to.AddDate(0, 0, 1), false)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (s *DefaultBookingService) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appts, err := s.Appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// commitSlot is the write-side conflict path shared by every booking surface:
// take a short Redis hold on the start time, re-check the slot against fresh
// store reads, then persist.
func (s *DefaultBookingService) commitSlot(ctx context.Context, appt *models.Appointment, date, startTime string, allowParallel bool) error {
	release, err := s.acquireSlotHold(ctx, appt.ProviderID, date, startTime)
	if err != nil {
		return err
	}
	defer release()

	if err := s.checkSlotFree(ctx, appt.ProviderID, date, startTime, appt.DurationMinutes, allowParallel, ""); err != nil {
		return err
	}

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if err := s.Appointments.Create(ctx, appt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// checkSlotFree re-resolves the requested day with fresh reads and fails with
// ErrSlotUnavailable unless the requested start is offered and available. The
// overlap and window-fit tests run with the booking's effective duration,
// which may differ from the provider default that shaped the slot grid.
// excludeID ignores one appointment, for reschedules moving within a day.
func (s *DefaultBookingService) checkSlotFree(ctx context.Context, providerID, date, startTime string, duration int, allowParallel bool, excludeID string) error {
	day, startMin, err := parseSlotRef(date, startTime)
	if err != nil {
		return err
	}
	prov, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return fmt.Errorf("provider not found")
	}
	cfg := prov.SchedulingConfig
	if duration <= 0 {
		duration = cfg.SessionDurationMinutes
	}

	rules, err := s.Availability.ListActiveRules(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to list availability rules: %w", err)
	}
	blocked, err := s.Availability.ListBlockedInRange(ctx, providerID, date, date)
	if err != nil {
		return fmt.Errorf("failed to list blocked intervals: %w", err)
	}
	booked, err := s.Appointments.ListByProviderInRange(ctx, providerID, day, day.AddDate(0, 0, 1), true)
	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}
	if excludeID != "" {
		kept := booked[:0]
		for _, a := range booked {
			if a.ID != excludeID {
				kept = append(kept, a)
			}
		}
		booked = kept
	}

	rule := scheduling.ActiveRuleFor(rules, day.Weekday())
	slots := scheduling.Resolve(scheduling.ResolveInput{
		Date:                  date,
		Rule:                  rule,
		DurationMinutes:       cfg.SessionDurationMinutes,
		BufferMinutes:         cfg.BufferBetweenSessionsMinutes,
		Blocked:               blocked,
		Booked:                booked,
		AllowParallelSessions: allowParallel,
		Now:                   time.Now().UTC(),
	})
	for _, slot := range slots {
		if slot.StartTime != startTime {
			continue
		}
		if slot.IsPast || slot.IsBlocked {
			return ErrSlotUnavailable
		}
		// The session must end inside the day's open window.
		endMin, err := scheduling.ParseClock(rule.EndTime)
		if err != nil {
			return fmt.Errorf("invalid availability rule end time: %w", err)
		}
		if startMin+duration > endMin {
			return ErrSlotUnavailable
		}
		if scheduling.SessionConflicts(day, startMin, duration, cfg.BufferBetweenSessionsMinutes, booked, allowParallel) {
			return ErrSlotUnavailable
		}
		return nil
	}
	return ErrSlotUnavailable
}

// acquireSlotHold takes a SETNX hold on the provider/date/start triple so two
// concurrent booking requests for the same slot serialize. Redis being down
// degrades to no hold; the conflict re-check still runs.
func (s *DefaultBookingService) acquireSlotHold(ctx context.Context, providerID, date, startTime string) (func(), error) {
	cache := utils.GetCacheClient()
	if cache == nil {
		return func() {}, nil
	}
	key := fmt.Sprintf("%s%s:%s:%s", utils.SlotHoldPrefix, providerID, date, startTime)
	ok, err := cache.SetNX(ctx, key, 1, slotHoldTTL).Result()
	if err != nil {
		utils.GetLogger().Warn("slot hold unavailable, proceeding without", zap.Error(err))
		return func() {}, nil
	}
	if !ok {
		return nil, ErrSlotUnavailable
	}
	return func() {
		if err := cache.Del(context.Background(), key).Err(); err != nil {
			utils.GetLogger().Warn("failed to release slot hold", zap.Error(err))
		}
	}, nil
}

func parseSlotRef(date, startTime string) (time.Time, int, error) {
	day, err := scheduling.ParseDate(date)
	if err != nil {
		return time.Time{}, 0, err
	}
	startMin, err := scheduling.ParseClock(startTime)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid start time: %w", err)
	}
	return day, startMin, nil
}
