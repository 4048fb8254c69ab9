// File: database/repository/message/interface.go
package messageRepo

import (
	"context"
	"log"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepository interface {
	GetOrCreateThread(ctx context.Context, providerID, patientID string) (*models.MessageThread, error)
	GetThread(ctx context.Context, threadID string) (*models.MessageThread, error)
	ListThreadsByProvider(ctx context.Context, providerID string) ([]models.MessageThread, error)
	ListThreadsByPatient(ctx context.Context, patientID string) ([]models.MessageThread, error)
	InsertMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, threadID string, limit int64) ([]models.Message, error)
	MarkThreadRead(ctx context.Context, threadID, readerRole string) error
	CountUnread(ctx context.Context, threadID, readerRole string) (int64, error)
}

type mongoMessageRepo struct {
	threads  *mongo.Collection
	messages *mongo.Collection
}

// NewMongoMessageRepo constructs a new MongoDB MessageRepository.
func NewMongoMessageRepo() MessageRepository {
	repo := &mongoMessageRepo{
		threads:  database.DB().Collection("message_threads"),
		messages: database.DB().Collection("messages"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("message repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func (r *mongoMessageRepo) ensureIndexes() error {
	ctx, cancel := defaultTimeout()
	defer cancel()

	threadModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "providerId", Value: 1}, {Key: "patientId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := r.threads.Indexes().CreateMany(ctx, threadModels); err != nil {
		return err
	}

	messageModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "threadId", Value: 1}, {Key: "sentAt", Value: -1}}},
	}
	_, err := r.messages.Indexes().CreateMany(ctx, messageModels)
	return err
}
