package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
	cartItemsCollection  = "cart_items"
	ordersCollection     = "orders"
)

var ErrNotFound = errors.New("document not found")

// Store is the storefront's remote store. It backs the catalog, cart and order
// ports of the internal packages.
type Store struct {
	db  *mongo.Database
	now func() time.Time
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Connect opens a client against uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)

	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)
	client, err := mongo.Connect(clientOptions)
	if err != nil {
		return nil, fmt.Errorf("create mongo client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}
