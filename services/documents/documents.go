// Package documents manages uploaded patient files (intake forms, referral
// letters, reports). Binary content lives in Cloudinary; MongoDB keeps only
// the reference.
package documents

import (
	"context"
	"fmt"
	"time"

	documentRepo "praxis/database/repository/document"
	patientRepo "praxis/database/repository/patient"
	"praxis/models"
	"praxis/services/storage"
	"praxis/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const downloadURLTTL = 15 * time.Minute

type DocumentService interface {
	Upload(ctx context.Context, providerID, patientID, fileName, localFilePath string) (*models.PatientDocument, error)
	ListByPatient(ctx context.Context, providerID, patientID string) ([]models.PatientDocument, error)
	GetDownloadURL(ctx context.Context, providerID, id string) (string, error)
	Delete(ctx context.Context, providerID, id string) error
}

type DefaultDocumentService struct {
	Repo     documentRepo.DocumentRepository
	Patients patientRepo.PatientRepository
	Storage  storage.StorageService
}

func NewDefaultDocumentService(
	repo documentRepo.DocumentRepository,
	patients patientRepo.PatientRepository,
	store storage.StorageService,
) *DefaultDocumentService {
	return &DefaultDocumentService{Repo: repo, Patients: patients, Storage: store}
}

func (s *DefaultDocumentService) Upload(ctx context.Context, providerID, patientID, fileName, localFilePath string) (*models.PatientDocument, error) {
	pat, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil || pat.ProviderID != providerID {
		return nil, fmt.Errorf("patient not found")
	}

	folder := fmt.Sprintf("praxis/%s/%s", providerID, patientID)
	publicID, url, err := s.Storage.UploadFile(ctx, localFilePath, folder)
	if err != nil {
		return nil, err
	}

	doc := &models.PatientDocument{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		PatientID:  patientID,
		FileName:   fileName,
		PublicID:   publicID,
		URL:        url,
		UploadedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		// Orphaned upload, best effort cleanup.
		if derr := s.Storage.DeleteFile(context.Background(), publicID); derr != nil {
			utils.GetLogger().Warn("Failed to clean up orphaned upload",
				zap.String("publicId", publicID), zap.Error(derr))
		}
		return nil, fmt.Errorf("failed to save document reference: %w", err)
	}
	return doc, nil
}

func (s *DefaultDocumentService) ListByPatient(ctx context.Context, providerID, patientID string) ([]models.PatientDocument, error) {
	docs, err := s.Repo.ListByPatient(ctx, providerID, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (s *DefaultDocumentService) GetDownloadURL(ctx context.Context, providerID, id string) (string, error) {
	doc, err := s.Repo.GetByID(ctx, providerID, id)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("document not found")
	}
	return s.Storage.GetSecureDownloadURL(ctx, doc.PublicID, downloadURLTTL)
}

func (s *DefaultDocumentService) Delete(ctx context.Context, providerID, id string) error {
	doc, err := s.Repo.GetByID(ctx, providerID, id)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document not found")
	}
	if err := s.Storage.DeleteFile(ctx, doc.PublicID); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, providerID, id); err != nil {
		return fmt.Errorf("failed to delete document reference: %w", err)
	}
	return nil
}
