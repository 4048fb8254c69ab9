// File: database/repository/records/crud.go
package recordsRepo

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

func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

func (r *mongoRecordRepo) Create(ctx context.Context, rec *models.SessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert session record: %w", err)
	}
	return nil
}

func (r *mongoRecordRepo) GetByID(ctx context.Context, providerID, id string) (*models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.SessionRecord
	err := r.coll.FindOne(ctx, bson.M{"id": id, "providerId": providerID}).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch session record: %w", err)
	}
	return &rec, nil
}

func (r *mongoRecordRepo) ListByPatient(ctx context.Context, providerID, patientID string) ([]models.SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "patientId": patientID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session records: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.SessionRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("error decoding session records: %w", err)
	}
	return recs, nil
}

func (r *mongoRecordRepo) Update(ctx context.Context, rec *models.SessionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rec.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": rec.ID, "providerId": rec.ProviderID}, rec)
	if err != nil {
		return fmt.Errorf("failed to update session record: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoRecordRepo) Delete(ctx context.Context, providerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete session record: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
