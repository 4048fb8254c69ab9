package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"praxis/models"
	"praxis/services/scheduling"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// CreatePatient registers a new patient under the given provider. A portal
// password, when supplied, enables portal login immediately.
func (s *DefaultPatientService) CreatePatient(ctx context.Context, providerID string, req models.PatientRegistrationRequest) (*models.Patient, error) {
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if req.BirthDate != "" {
		if _, err := scheduling.ParseDate(req.BirthDate); err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	now := time.Now()
	pat := models.Patient{
		ID:          uuid.New().String(),
		ProviderID:  providerID,
		FullName:    req.FullName,
		Email:       email,
		PhoneNumber: req.PhoneNumber,
		BirthDate:   req.BirthDate,
		Notes:       req.Notes,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.PortalPassword != "" {
		if email == "" {
			return nil, fmt.Errorf("portal access requires an email address")
		}
		existing, err := s.Repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check for existing portal account: %w", err)
		}
		if existing != nil && existing.PortalEnabled {
			return nil, fmt.Errorf("a portal account with email %s already exists", email)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.PortalPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash portal password: %w", err)
		}
		pat.Security.PasswordHash = string(hash)
		pat.PortalEnabled = true
	}

	if err := s.Repo.Create(ctx, &pat); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	pat.Security = models.Security{}
	return &pat, nil
}

func (s *DefaultPatientService) GetPatientByID(ctx context.Context, providerID, id string) (*models.Patient, error) {
	pat, err := s.fetchOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	pat.Security = models.Security{}
	return pat, nil
}

func (s *DefaultPatientService) ListPatients(ctx context.Context, providerID string) ([]models.Patient, error) {
	patients, err := s.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	for i := range patients {
		patients[i].Security = models.Security{}
	}
	return patients, nil
}

func (s *DefaultPatientService) UpdatePatient(ctx context.Context, providerID, id string, req models.PatientRegistrationRequest) (*models.Patient, error) {
	pat, err := s.fetchOwned(ctx, providerID, id)
	if err != nil {
		return nil, err
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}
	if req.BirthDate != "" {
		if _, err := scheduling.ParseDate(req.BirthDate); err != nil {
			return nil, fmt.Errorf("invalid birth date: %w", err)
		}
	}

	pat.FullName = req.FullName
	pat.Email = strings.ToLower(strings.TrimSpace(req.Email))
	pat.PhoneNumber = req.PhoneNumber
	pat.BirthDate = req.BirthDate
	pat.Notes = req.Notes
	pat.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, pat); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	pat.Security = models.Security{}
	return pat, nil
}

// ArchivePatient keeps the record and its history but makes it inactive.
func (s *DefaultPatientService) ArchivePatient(ctx context.Context, providerID, id string) error {
	pat, err := s.fetchOwned(ctx, providerID, id)
	if err != nil {
		return err
	}
	pat.Status = "archived"
	pat.PortalEnabled = false
	pat.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, pat); err != nil {
		return fmt.Errorf("failed to archive patient: %w", err)
	}
	clearAuthCache(id)
	return nil
}

func (s *DefaultPatientService) DeletePatient(ctx context.Context, providerID, id string) error {
	if err := s.Repo.Delete(ctx, providerID, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	clearAuthCache(id)
	return nil
}

func (s *DefaultPatientService) fetchOwned(ctx context.Context, providerID, id string) (*models.Patient, error) {
	pat, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil || pat.ProviderID != providerID {
		return nil, fmt.Errorf("patient not found")
	}
	return pat, nil
}
