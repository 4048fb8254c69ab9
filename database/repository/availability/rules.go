// File: database/repository/availability/rules.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"praxis/models"
)

// UpsertRule replaces the rule for (providerID, dayOfWeek). Keeping one
// document per weekday enforces the single-active-rule invariant at the store,
// so the resolver never has to merge windows.
func (r *mongoAvailabilityRepo) UpsertRule(ctx context.Context, rule *models.AvailabilityRule) (*models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	rule.UpdatedAt = now

	filter := bson.M{"providerId": rule.ProviderID, "dayOfWeek": rule.DayOfWeek}
	update := bson.M{
		"$set": bson.M{
			"startTime": rule.StartTime,
			"endTime":   rule.EndTime,
			"isActive":  rule.IsActive,
			"updatedAt": rule.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"id":         rule.ID,
			"providerId": rule.ProviderID,
			"dayOfWeek":  rule.DayOfWeek,
			"createdAt":  now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var saved models.AvailabilityRule
	if err := r.rules.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, fmt.Errorf("failed to upsert availability rule: %w", err)
	}
	return &saved, nil
}

func (r *mongoAvailabilityRepo) ListRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return r.listRules(ctx, bson.M{"providerId": providerID})
}

func (r *mongoAvailabilityRepo) ListActiveRules(ctx context.Context, providerID string) ([]models.AvailabilityRule, error) {
	return r.listRules(ctx, bson.M{"providerId": providerID, "isActive": true})
}

func (r *mongoAvailabilityRepo) listRules(ctx context.Context, filter bson.M) ([]models.AvailabilityRule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}})
	cursor, err := r.rules.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.AvailabilityRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("error decoding availability rules: %w", err)
	}
	return rules, nil
}

func (r *mongoAvailabilityRepo) DeleteRule(ctx context.Context, providerID, ruleID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.rules.DeleteOne(ctx, bson.M{"id": ruleID, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete availability rule: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
