package availability

import (
	"context"

	availabilityRepo "praxis/database/repository/availability"
	"praxis/models"
)

// AvailabilityService manages a provider's weekly rules and blocked intervals.
// All "HH:MM" and date validation happens here, at the settings boundary, so
// the resolver can assume well-formed stored data.
type AvailabilityService interface {
	UpsertRule(ctx context.Context, providerID string, req models.UpsertAvailabilityRequest) (*models.AvailabilityRule, error)
	ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
	DeleteRule(ctx context.Context, providerID, ruleID string) error

	CreateBlockedInterval(ctx context.Context, providerID string, req models.CreateBlockedIntervalRequest) (*models.BlockedInterval, error)
	ListBlockedIntervals(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error)
	DeleteBlockedInterval(ctx context.Context, providerID, blockedID string) error
}

// DefaultAvailabilityService is the production implementation backed by MongoDB.
type DefaultAvailabilityService struct {
	Repo availabilityRepo.AvailabilityRepository
}

func NewDefaultAvailabilityService(repo availabilityRepo.AvailabilityRepository) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{Repo: repo}
}
