package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IndexConfig struct {
	CollectionName string
	IndexModel     mongo.IndexModel
}

var requiredIndexes = []IndexConfig{
	// Categories are listed alphabetically
	{
		CollectionName: categoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_category_name"),
		},
	},
	{
		CollectionName: categoriesCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_category_slug_unique"),
		},
	},

	// Storefront listing: in-stock products, featured first
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "in_stock", Value: 1},
				{Key: "featured", Value: -1},
			},
			Options: options.Index().SetName("idx_in_stock_featured"),
		},
	},
	{
		CollectionName: productsCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetName("idx_category"),
		},
	},

	// One row per product per session; IncrementCartItem relies on this for its upsert
	{
		CollectionName: cartItemsCollection,
		IndexModel: mongo.IndexModel{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "product_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("idx_session_product_unique"),
		},
	},

	{
		CollectionName: ordersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_order_number_unique"),
		},
	},
	{
		CollectionName: ordersCollection,
		IndexModel: mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_order_created"),
		},
	},
}

// EnsureIndexes creates every required index. CreateOne is idempotent for an
// identical definition, so this runs on each startup.
func (s *Store) EnsureIndexes(ctx context.Context, log *slog.Logger) error {
	for _, idxConfig := range requiredIndexes {
		indexName, err := s.collection(idxConfig.CollectionName).Indexes().CreateOne(ctx, idxConfig.IndexModel)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", idxConfig.CollectionName, err)
		}
		log.Debug("index ensured",
			slog.String("collection", idxConfig.CollectionName),
			slog.String("index", indexName))
	}
	return nil
}
