// Package records manages a provider's clinical session notes. Notes never
// cross the tenant boundary: every operation is scoped by provider ID and the
// patient portal has no route into this service.
package records

import (
	"context"
	"fmt"
	"time"

	patientRepo "praxis/database/repository/patient"
	recordsRepo "praxis/database/repository/records"
	"praxis/models"

	"github.com/google/uuid"
)

type RecordService interface {
	CreateRecord(ctx context.Context, providerID string, req models.SessionRecordRequest) (*models.SessionRecord, error)
	GetRecord(ctx context.Context, providerID, id string) (*models.SessionRecord, error)
	ListPatientRecords(ctx context.Context, providerID, patientID string) ([]models.SessionRecord, error)
	UpdateRecord(ctx context.Context, providerID, id string, req models.SessionRecordRequest) (*models.SessionRecord, error)
	DeleteRecord(ctx context.Context, providerID, id string) error
}

type DefaultRecordService struct {
	Repo     recordsRepo.SessionRecordRepository
	Patients patientRepo.PatientRepository
}

func NewDefaultRecordService(repo recordsRepo.SessionRecordRepository, patients patientRepo.PatientRepository) *DefaultRecordService {
	return &DefaultRecordService{Repo: repo, Patients: patients}
}

func (s *DefaultRecordService) CreateRecord(ctx context.Context, providerID string, req models.SessionRecordRequest) (*models.SessionRecord, error) {
	if err := s.checkPatientOwned(ctx, providerID, req.PatientID); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &models.SessionRecord{
		ID:            uuid.New().String(),
		ProviderID:    providerID,
		PatientID:     req.PatientID,
		AppointmentID: req.AppointmentID,
		Title:         req.Title,
		Content:       req.Content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create session record: %w", err)
	}
	return rec, nil
}

func (s *DefaultRecordService) GetRecord(ctx context.Context, providerID, id string) (*models.SessionRecord, error) {
	rec, err := s.Repo.GetByID(ctx, providerID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("session record not found")
	}
	return rec, nil
}

func (s *DefaultRecordService) ListPatientRecords(ctx context.Context, providerID, patientID string) ([]models.SessionRecord, error) {
	if err := s.checkPatientOwned(ctx, providerID, patientID); err != nil {
		return nil, err
	}
	recs, err := s.Repo.ListByPatient(ctx, providerID, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session records: %w", err)
	}
	return recs, nil
}

func (s *DefaultRecordService) UpdateRecord(ctx context.Context, providerID, id string, req models.SessionRecordRequest) (*models.SessionRecord, error) {
	rec, err := s.GetRecord(ctx, providerID, id)
	if err != nil {
		return nil, err
	}

	rec.Title = req.Title
	rec.Content = req.Content
	rec.AppointmentID = req.AppointmentID
	rec.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update session record: %w", err)
	}
	return rec, nil
}

func (s *DefaultRecordService) DeleteRecord(ctx context.Context, providerID, id string) error {
	if err := s.Repo.Delete(ctx, providerID, id); err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	return nil
}

func (s *DefaultRecordService) checkPatientOwned(ctx context.Context, providerID, patientID string) error {
	pat, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil || pat.ProviderID != providerID {
		return fmt.Errorf("patient not found")
	}
	return nil
}
