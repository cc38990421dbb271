package catalog

import (
	"context"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// Repository is the remote catalog store. GetProduct reports an absent id with
// pkg/mongo.ErrNotFound.
type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
}

// Cache holds the full catalog lists. A missing entry is reported with
// pkg/redis.ErrCacheMiss.
type Cache interface {
	GetCategories(ctx context.Context) ([]models.Category, error)
	SetCategories(ctx context.Context, categories []models.Category) error
	GetProducts(ctx context.Context) ([]models.Product, error)
	SetProducts(ctx context.Context, products []models.Product) error
}
