package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"praxis/config"
	"praxis/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// CloudinaryStorageService implements StorageService using Cloudinary.
type CloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService initializes the Cloudinary client from the
// configured CLOUDINARY_URL.
func NewCloudinaryStorageService() (*CloudinaryStorageService, error) {
	if config.AppConfig.CloudinaryURL == "" {
		return nil, fmt.Errorf("cloudinary url not configured")
	}
	cld, err := cloudinary.NewFromURL(config.AppConfig.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{client: cld}, nil
}

func (s *CloudinaryStorageService) UploadFile(ctx context.Context, localFilePath, destFolder string) (string, string, error) {
	logger := utils.GetLogger().With(zap.String("service", "storage"))

	resp, err := s.client.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: destFolder,
	})
	if err != nil {
		logger.Error("Cloudinary upload failed", zap.Error(err))
		return "", "", fmt.Errorf("upload failed: %w", err)
	}
	logger.Info("File uploaded", zap.String("publicID", resp.PublicID))
	return resp.PublicID, resp.SecureURL, nil
}

func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicID string) error {
	logger := utils.GetLogger().With(zap.String("service", "storage"))

	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		logger.Error("Cloudinary destroy failed", zap.String("publicID", publicID), zap.Error(err))
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}

// GetSecureDownloadURL returns a time-limited signed delivery URL for the
// given asset.
func (s *CloudinaryStorageService) GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	asset, err := s.client.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to build asset: %w", err)
	}
	baseURL, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("failed to build url: %w", err)
	}

	expiry := time.Now().Add(expires).Unix()
	token := signDownloadToken(publicID, expiry)

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset url: %w", err)
	}
	q := u.Query()
	q.Set("expires", fmt.Sprintf("%d", expiry))
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func signDownloadToken(publicID string, expiry int64) string {
	h := sha1.New()
	fmt.Fprintf(h, "%s:%d:%s", publicID, expiry, config.AppConfig.JWTSecret)
	return hex.EncodeToString(h.Sum(nil))
}
