// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"
	"log"
	"time"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByProviderInRange returns appointments with from <= scheduledAt < to.
	// When activeOnly is true, cancelled and no-show appointments are excluded.
	ListByProviderInRange(ctx context.Context, providerID string, from, to time.Time, activeOnly bool) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, providerID, id, status string) error
	UpdateSchedule(ctx context.Context, providerID, id string, scheduledAt time.Time) error
	Count(ctx context.Context) (int64, error)
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("appointment repo: failed to ensure indexes: %v", err)
	}
	return repo
}
