package provider

import (
	"context"
	"fmt"
	"time"

	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetProviderByID fetches a provider with security fields stripped.
func (s *DefaultProviderService) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	prov.Security = models.Security{}
	return prov, nil
}

// UpdateProfile replaces the mutable profile fields. Email changes are
// rejected here; they would invalidate the login identity.
func (s *DefaultProviderService) UpdateProfile(ctx context.Context, id string, profile models.Profile) (*models.Provider, error) {
	prov, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	if profile.Email != "" && profile.Email != prov.Profile.Email {
		return nil, fmt.Errorf("email cannot be changed")
	}

	updates := bson.M{
		"profile.fullName":         profile.FullName,
		"profile.title":            profile.Title,
		"profile.phoneNumber":      profile.PhoneNumber,
		"profile.registrationCode": profile.RegistrationCode,
		"profile.bio":              profile.Bio,
		"profile.profileImage":     profile.ProfileImage,
		"updatedAt":                time.Now(),
	}
	if err := s.Repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProviderByID(ctx, id)
}

func (s *DefaultProviderService) GetSchedulingConfig(ctx context.Context, id string) (*models.SchedulingConfig, error) {
	prov, err := s.Repo.GetByIDWithProjection(ctx, id, bson.M{"schedulingConfig": 1, "id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider: %w", err)
	}
	if prov == nil {
		return nil, fmt.Errorf("provider not found")
	}
	return &prov.SchedulingConfig, nil
}

// UpdateSchedulingConfig validates and stores the booking configuration the
// slot resolver consults.
func (s *DefaultProviderService) UpdateSchedulingConfig(ctx context.Context, id string, cfg models.SchedulingConfig) (*models.SchedulingConfig, error) {
	if cfg.SessionDurationMinutes <= 0 {
		return nil, fmt.Errorf("session duration must be positive")
	}
	if cfg.BufferBetweenSessionsMinutes < 0 {
		return nil, fmt.Errorf("buffer minutes cannot be negative")
	}
	if cfg.SessionPriceMinorUnits < 0 {
		return nil, fmt.Errorf("session price cannot be negative")
	}

	updates := bson.M{
		"schedulingConfig": cfg,
		"updatedAt":        time.Now(),
	}
	if err := s.Repo.UpdateFields(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("failed to update scheduling config: %w", err)
	}
	return &cfg, nil
}

func (s *DefaultProviderService) UpdateFCMToken(ctx context.Context, id, token string) error {
	updates := bson.M{
		"fcmToken":  token,
		"updatedAt": time.Now(),
	}
	if err := s.Repo.UpdateFields(ctx, id, updates); err != nil {
		return fmt.Errorf("failed to update fcm token: %w", err)
	}
	return nil
}

func (s *DefaultProviderService) DeleteProvider(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}
	clearAuthCache(id)
	return nil
}
