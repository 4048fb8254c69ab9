// File: database/repository/invoice/crud.go
package invoiceRepo

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

func (r *mongoInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Status == "" {
		inv.Status = models.InvoiceOpen
	}
	if inv.IssuedAt.IsZero() {
		inv.IssuedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, inv); err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}
	return nil
}

func (r *mongoInvoiceRepo) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var inv models.Invoice
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&inv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch invoice: %w", err)
	}
	return &inv, nil
}

func (r *mongoInvoiceRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{"providerId": providerID})
}

func (r *mongoInvoiceRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Invoice, error) {
	return r.list(ctx, bson.M{"patientId": patientID})
}

func (r *mongoInvoiceRepo) list(ctx context.Context, filter bson.M) ([]models.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "issuedAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, fmt.Errorf("error decoding invoices: %w", err)
	}
	return invoices, nil
}

func (r *mongoInvoiceRepo) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	return r.update(ctx, bson.M{"id": id}, bson.M{"stripePaymentIntentId": paymentIntentID})
}

func (r *mongoInvoiceRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	return r.update(ctx, bson.M{"id": id}, bson.M{"status": models.InvoicePaid, "paidAt": paidAt})
}

func (r *mongoInvoiceRepo) UpdateStatus(ctx context.Context, providerID, id, status string) error {
	return r.update(ctx, bson.M{"id": id, "providerId": providerID}, bson.M{"status": status})
}

func (r *mongoInvoiceRepo) update(ctx context.Context, filter, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
