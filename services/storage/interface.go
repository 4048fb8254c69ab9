package storage

import (
	"context"
	"time"
)

// StorageService defines the interface for patient-document storage.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (publicID, url string, err error)
	DeleteFile(ctx context.Context, publicID string) error
	GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}
