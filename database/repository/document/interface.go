// File: database/repository/document/interface.go
package documentRepo

import (
	"context"
	"fmt"
	"log"
	"time"

	"praxis/database"
	"praxis/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.PatientDocument) error
	GetByID(ctx context.Context, providerID, id string) (*models.PatientDocument, error)
	ListByPatient(ctx context.Context, providerID, patientID string) ([]models.PatientDocument, error)
	Delete(ctx context.Context, providerID, id string) error
}

type mongoDocumentRepo struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepo constructs a new MongoDB DocumentRepository.
func NewMongoDocumentRepo() DocumentRepository {
	repo := &mongoDocumentRepo{
		coll: database.DB().Collection("patient_documents"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("document repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func (r *mongoDocumentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "patientId", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}

func (r *mongoDocumentRepo) Create(ctx context.Context, doc *models.PatientDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *mongoDocumentRepo) GetByID(ctx context.Context, providerID, id string) (*models.PatientDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc models.PatientDocument
	err := r.coll.FindOne(ctx, bson.M{"id": id, "providerId": providerID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return &doc, nil
}

func (r *mongoDocumentRepo) ListByPatient(ctx context.Context, providerID, patientID string) ([]models.PatientDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"providerId": providerID, "patientId": patientID}
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.PatientDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding documents: %w", err)
	}
	return docs, nil
}

func (r *mongoDocumentRepo) Delete(ctx context.Context, providerID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "providerId": providerID})
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
