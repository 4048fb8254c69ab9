// File: database/repository/message/crud.go
package messageRepo

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

func defaultTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func (r *mongoMessageRepo) GetOrCreateThread(ctx context.Context, providerID, patientID string) (*models.MessageThread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"providerId": providerID, "patientId": patientID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"providerId": providerID,
			"patientId":  patientID,
			"createdAt":  now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var thread models.MessageThread
	if err := r.threads.FindOneAndUpdate(ctx, filter, update, opts).Decode(&thread); err != nil {
		return nil, fmt.Errorf("failed to get or create thread: %w", err)
	}
	return &thread, nil
}

func (r *mongoMessageRepo) GetThread(ctx context.Context, threadID string) (*models.MessageThread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var thread models.MessageThread
	err := r.threads.FindOne(ctx, bson.M{"id": threadID}).Decode(&thread)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return &thread, nil
}

func (r *mongoMessageRepo) ListThreadsByProvider(ctx context.Context, providerID string) ([]models.MessageThread, error) {
	return r.listThreads(ctx, bson.M{"providerId": providerID})
}

func (r *mongoMessageRepo) ListThreadsByPatient(ctx context.Context, patientID string) ([]models.MessageThread, error) {
	return r.listThreads(ctx, bson.M{"patientId": patientID})
}

func (r *mongoMessageRepo) listThreads(ctx context.Context, filter bson.M) ([]models.MessageThread, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	cursor, err := r.threads.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer cursor.Close(ctx)

	var threads []models.MessageThread
	if err := cursor.All(ctx, &threads); err != nil {
		return nil, fmt.Errorf("error decoding threads: %w", err)
	}
	return threads, nil
}

func (r *mongoMessageRepo) InsertMessage(ctx context.Context, msg *models.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now()
	}

	if _, err := r.messages.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	_, err := r.threads.UpdateOne(ctx,
		bson.M{"id": msg.ThreadID},
		bson.M{"$set": bson.M{"lastMessageAt": msg.SentAt}},
	)
	if err != nil {
		return fmt.Errorf("failed to bump thread activity: %w", err)
	}
	return nil
}

func (r *mongoMessageRepo) ListMessages(ctx context.Context, threadID string, limit int64) ([]models.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.messages.Find(ctx, bson.M{"threadId": threadID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("error decoding messages: %w", err)
	}
	return msgs, nil
}

// MarkThreadRead stamps ReadAt on every unread message sent by the other
// party; readerRole is the role of the account doing the reading.
func (r *mongoMessageRepo) MarkThreadRead(ctx context.Context, threadID, readerRole string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"threadId":   threadID,
		"senderRole": bson.M{"$ne": readerRole},
		"readAt":     nil,
	}
	_, err := r.messages.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"readAt": time.Now()}})
	if err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}
	return nil
}

func (r *mongoMessageRepo) CountUnread(ctx context.Context, threadID, readerRole string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"threadId":   threadID,
		"senderRole": bson.M{"$ne": readerRole},
		"readAt":     nil,
	}
	return r.messages.CountDocuments(ctx, filter)
}
