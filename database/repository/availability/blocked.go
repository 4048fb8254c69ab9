// File: database/repository/availability/blocked.go
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

func (r *mongoAvailabilityRepo) CreateBlocked(ctx context.Context, blocked *models.BlockedInterval) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if blocked.ID == "" {
		blocked.ID = uuid.New().String()
	}
	blocked.CreatedAt = time.Now()

	if _, err := r.blocked.InsertOne(ctx, blocked); err != nil {
		return fmt.Errorf("failed to insert blocked interval: %w", err)
	}
	return nil
}

// ListBlockedInRange returns blocked intervals with dateFrom <= date <= dateTo.
// Dates are "2006-01-02" strings, so lexicographic range filters are correct.
func (r *mongoAvailabilityRepo) ListBlockedInRange(ctx context.Context, providerID, dateFrom, dateTo string) ([]models.BlockedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"providerId": providerID,
		"date":       bson.M{"$gte": dateFrom, "$lte": dateTo},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})

	cursor, err := r.blocked.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked intervals: %w", err)
	}
	defer cursor.Close(ctx)

	var intervals []models.BlockedInterval
	if err := cursor.All(ctx, &intervals); err != nil {
		return nil, fmt.Errorf("error decoding blocked intervals: %w", err)
	}
	return intervals, nil
}

func (r *mongoAvailabilityRepo) DeleteBlocked(ctx context.Context, providerID, blockedID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.blocked.DeleteOne(ctx, bson.M{"id": blockedID, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete blocked interval: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
