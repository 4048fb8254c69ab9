// File: database/repository/patient/interface.go
package patientRepo

import (
	"context"
	"log"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	GetByEmail(ctx context.Context, email string) (*models.Patient, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, providerID, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoPatientRepo struct {
	coll *mongo.Collection
}

// NewMongoPatientRepo constructs a new MongoDB PatientRepository.
func NewMongoPatientRepo() PatientRepository {
	repo := &mongoPatientRepo{
		coll: database.DB().Collection("patients"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("patient repo: failed to ensure indexes: %v", err)
	}
	return repo
}
