package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"praxis/models"
	"praxis/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const authTokenTTL = 24 * time.Hour

// Register creates a new provider account, issues a token, stores its hash,
// and returns an auth response.
func (s *DefaultProviderService) Register(ctx context.Context, req models.ProviderRegistrationRequest) (*models.ProviderAuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full name is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing provider: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("provider with email %s already exists", email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	prov := models.Provider{
		ID: uuid.New().String(),
		Profile: models.Profile{
			FullName:         req.FullName,
			Title:            req.Title,
			Email:            email,
			PhoneNumber:      req.PhoneNumber,
			RegistrationCode: req.RegistrationCode,
			Status:           "active",
		},
		Security: models.Security{PasswordHash: string(hashedPassword)},
		SchedulingConfig: models.SchedulingConfig{
			SessionDurationMinutes:       50,
			BufferBetweenSessionsMinutes: 10,
			Currency:                     "BRL",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, &prov); err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	token, err := utils.GenerateToken(prov.ID, prov.Profile.Email, "provider", authTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate auth token: %w", err)
	}
	prov.Security.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(ctx, &prov); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	clearAuthCache(prov.ID)

	prov.Security = models.Security{}
	return &models.ProviderAuthResponse{Provider: &prov, Token: token}, nil
}

// Authenticate verifies credentials, rotates the token hash, and returns a
// fresh auth response.
func (s *DefaultProviderService) Authenticate(ctx context.Context, email, password string) (*models.ProviderAuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	prov, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch provider", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if prov == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(prov.Security.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	token, err := utils.GenerateToken(prov.ID, prov.Profile.Email, "provider", authTokenTTL)
	if err != nil {
		utils.GetLogger().Error("Failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	prov.Security.TokenHash = utils.HashToken(token)
	prov.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, prov); err != nil {
		utils.GetLogger().Error("Failed to update provider token hash", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	clearAuthCache(prov.ID)

	prov.Security = models.Security{}
	return &models.ProviderAuthResponse{Provider: prov, Token: token}, nil
}

// RevokeAuthToken clears the stored token hash so the current token can no
// longer authenticate.
func (s *DefaultProviderService) RevokeAuthToken(ctx context.Context, providerID string) error {
	prov, err := s.Repo.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to retrieve provider: %w", err)
	}
	if prov == nil {
		return fmt.Errorf("provider not found")
	}

	prov.Security.TokenHash = ""
	prov.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, prov); err != nil {
		return fmt.Errorf("failed to revoke auth token: %w", err)
	}

	clearAuthCache(providerID)
	return nil
}

func clearAuthCache(accountID string) {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return
	}
	cacheKey := utils.AuthCachePrefix + accountID
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		zap.L().Error("Failed to clear auth cache", zap.Error(err))
	}
}
