// File: database/repository/invoice/interface.go
package invoiceRepo

import (
	"context"
	"log"
	"time"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *models.Invoice) error
	GetByID(ctx context.Context, id string) (*models.Invoice, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Invoice, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Invoice, error)
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error
	UpdateStatus(ctx context.Context, providerID, id, status string) error
}

type mongoInvoiceRepo struct {
	coll *mongo.Collection
}

// NewMongoInvoiceRepo constructs a new MongoDB InvoiceRepository.
func NewMongoInvoiceRepo() InvoiceRepository {
	repo := &mongoInvoiceRepo{
		coll: database.DB().Collection("invoices"),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Printf("invoice repo: failed to ensure indexes: %v", err)
	}
	return repo
}

func (r *mongoInvoiceRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "issuedAt", Value: -1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "issuedAt", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	return err
}
