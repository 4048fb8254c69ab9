// File: database/repository/provider/interface.go
package providerRepo

import (
	"context"
	"log"

	"praxis/database"
	"praxis/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProviderRepository interface {
	Create(ctx context.Context, prov *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.Provider, error)
	Update(ctx context.Context, prov *models.Provider) error
	UpdateFields(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]models.Provider, error)
	Count(ctx context.Context) (int64, error)
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	repo := &mongoProviderRepo{
		coll: database.DB().Collection("providers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("provider repo: failed to ensure indexes: %v", err)
	}
	return repo
}
