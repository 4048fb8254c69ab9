package provider

import (
	"context"

	providerRepo "praxis/database/repository/provider"
	"praxis/models"
)

// ProviderService manages provider accounts and their scheduling configuration.
type ProviderService interface {
	Register(ctx context.Context, req models.ProviderRegistrationRequest) (*models.ProviderAuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.ProviderAuthResponse, error)
	RevokeAuthToken(ctx context.Context, providerID string) error

	GetProviderByID(ctx context.Context, id string) (*models.Provider, error)
	UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.Provider, error)
	GetSchedulingConfig(ctx context.Context, id string) (*models.SchedulingConfig, error)
	UpdateSchedulingConfig(ctx context.Context, id string, cfg models.SchedulingConfig) (*models.SchedulingConfig, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	DeleteProvider(ctx context.Context, id string) error
}

// DefaultProviderService is the production implementation backed by MongoDB.
type DefaultProviderService struct {
	Repo providerRepo.ProviderRepository
}

func NewDefaultProviderService(repo providerRepo.ProviderRepository) *DefaultProviderService {
	return &DefaultProviderService{Repo: repo}
}
