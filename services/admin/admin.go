// Package admin backs the operations console: platform stats and provider
// account oversight. Routes into it are guarded by the admin API key.
package admin

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "praxis/database/repository/appointment"
	patientRepo "praxis/database/repository/patient"
	providerRepo "praxis/database/repository/provider"
	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	Providers    int64 `json:"providers"`
	Patients     int64 `json:"patients"`
	Appointments int64 `json:"appointments"`
}

type AdminService interface {
	GetStats(ctx context.Context) (*PlatformStats, error)
	ListProviders(ctx context.Context) ([]models.Provider, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	ListProviderPatients(ctx context.Context, providerID string) ([]models.Patient, error)
	SetProviderStatus(ctx context.Context, id, status string) error
}

type DefaultAdminService struct {
	Providers    providerRepo.ProviderRepository
	Patients     patientRepo.PatientRepository
	Appointments appointmentRepo.AppointmentRepository
}

func NewDefaultAdminService(
	providers providerRepo.ProviderRepository,
	patients patientRepo.PatientRepository,
	appointments appointmentRepo.AppointmentRepository,
) *DefaultAdminService {
	return &DefaultAdminService{Providers: providers, Patients: patients, Appointments: appointments}
}

func (s *DefaultAdminService) GetStats(ctx context.Context) (*PlatformStats, error) {
	providers, err := s.Providers.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count providers: %w", err)
	}
	patients, err := s.Patients.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	appointments, err := s.Appointments.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}
	return &PlatformStats{Providers: providers, Patients: patients, Appointments: appointments}, nil
}

func (s *DefaultAdminService) ListProviders(ctx context.Context) ([]models.Provider, error) {
	providers, err := s.Providers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	for i := range providers {
		providers[i].Security = models.Security{}
	}
	return providers, nil
}

func (s *DefaultAdminService) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	prov, err := s.Providers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	prov.Security = models.Security{}
	return prov, nil
}

func (s *DefaultAdminService) ListProviderPatients(ctx context.Context, providerID string) ([]models.Patient, error) {
	patients, err := s.Patients.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for i := range patients {
		patients[i].Security = models.Security{}
	}
	return patients, nil
}

// SetProviderStatus suspends or reinstates a provider account.
func (s *DefaultAdminService) SetProviderStatus(ctx context.Context, id, status string) error {
	switch status {
	case "active", "suspended":
	default:
		return fmt.Errorf("invalid provider status %q", status)
	}
	updates := bson.M{
		"profile.status": status,
		"updatedAt":      time.Now(),
	}
	if err := s.Providers.UpdateFields(ctx, id, updates); err != nil {
		return fmt.Errorf("failed to update provider status: %w", err)
	}
	return nil
}
