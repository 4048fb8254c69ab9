package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"praxis/models"
	"praxis/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const portalTokenTTL = 24 * time.Hour

// EnablePortal turns on portal access for an existing patient, setting the
// initial password.
func (s *DefaultPatientService) EnablePortal(ctx context.Context, providerID, id, password string) error {
	pat, err := s.fetchOwned(ctx, providerID, id)
	if err != nil {
		return err
	}
	if pat.Email == "" {
		return fmt.Errorf("portal access requires an email address")
	}
	if len(password) < 8 {
		return fmt.Errorf("portal password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash portal password: %w", err)
	}
	pat.Security.PasswordHash = string(hash)
	pat.PortalEnabled = true
	pat.UpdatedAt = time.Now()

	if err := s.Repo.Update(ctx, pat); err != nil {
		return fmt.Errorf("failed to enable portal: %w", err)
	}
	return nil
}

// AuthenticatePortal verifies portal credentials and issues a patient token.
func (s *DefaultPatientService) AuthenticatePortal(ctx context.Context, email, password string) (*models.PatientAuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	pat, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch patient", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if pat == nil || !pat.PortalEnabled || pat.Status != "active" {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(pat.Security.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(pat.ID, pat.Email, "patient", portalTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	pat.Security.TokenHash = utils.HashToken(token)
	pat.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, pat); err != nil {
		utils.GetLogger().Error("Failed to update patient token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	clearAuthCache(pat.ID)

	pat.Security = models.Security{}
	return &models.PatientAuthResponse{Patient: pat, Token: token}, nil
}

// RevokePortalToken clears the stored token hash for the patient.
func (s *DefaultPatientService) RevokePortalToken(ctx context.Context, patientID string) error {
	pat, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to retrieve patient: %w", err)
	}
	if pat == nil {
		return fmt.Errorf("patient not found")
	}

	pat.Security.TokenHash = ""
	pat.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, pat); err != nil {
		return fmt.Errorf("failed to revoke portal token: %w", err)
	}

	clearAuthCache(patientID)
	return nil
}

func (s *DefaultPatientService) UpdateFCMToken(ctx context.Context, patientID, token string) error {
	pat, err := s.Repo.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("failed to retrieve patient: %w", err)
	}
	if pat == nil {
		return fmt.Errorf("patient not found")
	}
	pat.FCMToken = token
	pat.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, pat); err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	return nil
}

func clearAuthCache(accountID string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	if err := authCache.Del(context.Background(), utils.AuthCachePrefix+accountID).Err(); err != nil {
		zap.L().Error("Failed to clear auth cache", zap.Error(err))
	}
}
