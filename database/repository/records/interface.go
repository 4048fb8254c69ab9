// File: database/repository/records/interface.go
package recordsRepo

import (
	"context"
	"log"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionRecordRepository persists clinical session notes. Every query is
// scoped by providerID: records are never visible outside the owning tenant.
type SessionRecordRepository interface {
	Create(ctx context.Context, rec *models.SessionRecord) error
	GetByID(ctx context.Context, providerID, id string) (*models.SessionRecord, error)
	ListByPatient(ctx context.Context, providerID, patientID string) ([]models.SessionRecord, error)
	Update(ctx context.Context, rec *models.SessionRecord) error
	Delete(ctx context.Context, providerID, id string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo constructs a new MongoDB SessionRecordRepository.
func NewMongoRecordRepo() SessionRecordRepository {
	repo := &mongoRecordRepo{
		coll: database.DB().Collection("session_records"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("records repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func (r *mongoRecordRepo) ensureIndexes() error {
	ctx, cancel := contextWithTimeout()
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
