package booking

import (
	"context"

	appointmentRepo "praxis/database/repository/appointment"
	availabilityRepo "praxis/database/repository/availability"
	patientRepo "praxis/database/repository/patient"
	providerRepo "praxis/database/repository/provider"
	"praxis/models"
	"praxis/services/notification"

	"github.com/hibiken/asynq"
)

// BookingService resolves slots and manages appointments for all three
// surfaces: the provider agenda, the patient portal, and the public page.
type BookingService interface {
	ListSlots(ctx context.Context, providerID, date string) (*models.DaySlots, error)
	ListSelectableDays(ctx context.Context, providerID, fromDate string, days int) ([]models.SelectableDay, error)

	Book(ctx context.Context, providerID string, req models.BookingRequest, source string) (*models.Appointment, error)
	BookPublic(ctx context.Context, providerID string, req models.PublicBookingRequest) (*models.Appointment, error)
	Reschedule(ctx context.Context, providerID, appointmentID string, req models.RescheduleRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, providerID, appointmentID string) error
	UpdateStatus(ctx context.Context, providerID, appointmentID, status string) error

	GetAppointment(ctx context.Context, providerID, appointmentID string) (*models.Appointment, error)
	ListAgenda(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.Appointment, error)
	ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Appointments appointmentRepo.AppointmentRepository
	Availability availabilityRepo.AvailabilityRepository
	Providers    providerRepo.ProviderRepository
	Patients     patientRepo.PatientRepository

	Notifier notification.NotificationService
	// Reminders is the asynq client for scheduling appointment reminders.
	// Nil disables reminders.
	Reminders *asynq.Client
}

func NewDefaultBookingService(
	appointments appointmentRepo.AppointmentRepository,
	availability availabilityRepo.AvailabilityRepository,
	providers providerRepo.ProviderRepository,
	patients patientRepo.PatientRepository,
	notifier notification.NotificationService,
	reminders *asynq.Client,
) *DefaultBookingService {
	return &DefaultBookingService{
		Appointments: appointments,
		Availability: availability,
		Providers:    providers,
		Patients:     patients,
		Notifier:     notifier,
		Reminders:    reminders,
	}
}
