// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"log"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository persists weekly availability rules and date-specific
// blocked intervals. These are two of the three read stores the slot resolver
// consults; appointments live in their own repository.
type AvailabilityRepository interface {
	// Rules.
	UpsertRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error)
	ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
	ListActiveRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error)
	DeleteRule(ctx context.Context, providerID, ruleID string) error

	// Blocked intervals.
	CreateBlocked(ctx context.Context, blocked *models.BlockedInterval) error
	ListBlockedInRange(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error)
	DeleteBlocked(ctx context.Context, providerID, blockedID string) error
}

type mongoAvailabilityRepo struct {
	rules   *mongo.Collection
	blocked *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	repo := &mongoAvailabilityRepo{
		rules:   database.DB().Collection("availability_rules"),
		blocked: database.DB().Collection("blocked_intervals"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("availability repo: failed to ensure indexes: %v", err)
	}
	return repo
}
