package patient

import (
	"context"

	patientRepo "praxis/database/repository/patient"
	"praxis/models"
)

// PatientService manages patient records and portal access. All mutating
// operations are scoped to the owning provider.
type PatientService interface {
	CreatePatient(ctx context.Context, providerID string, req models.PatientRegistrationRequest) (*models.Patient, error)
	GetPatientByID(ctx context.Context, providerID, id string) (*models.Patient, error)
	ListPatients(ctx context.Context, providerID string) ([]models.Patient, error)
	UpdatePatient(ctx context.Context, providerID, id string, req models.PatientRegistrationRequest) (*models.Patient, error)
	ArchivePatient(ctx context.Context, providerID, id string) error
	DeletePatient(ctx context.Context, providerID, id string) error

	EnablePortal(ctx context.Context, providerID, id, password string) error
	AuthenticatePortal(ctx context.Context, email, password string) (*models.PatientAuthResponse, error)
	RevokePortalToken(ctx context.Context, patientID string) error
	UpdateFCMToken(ctx context.Context, patientID, token string) error
}

// DefaultPatientService is the production implementation backed by MongoDB.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func NewDefaultPatientService(repo patientRepo.PatientRepository) *DefaultPatientService {
	return &DefaultPatientService{Repo: repo}
}
