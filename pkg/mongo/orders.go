package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// ErrDuplicateOrderNumber is returned when an order number collides with an
// existing one.
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

func (s *Store) InsertOrder(ctx context.Context, order models.Order) error {
	_, err := s.collection(ordersCollection).InsertOne(ctx, newOrderDoc(order))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateOrderNumber
	}
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func (s *Store) GetOrderByNumber(ctx context.Context, orderNumber string) (models.Order, error) {
	var doc orderDoc
	err := s.collection(ordersCollection).
		FindOne(ctx, bson.D{{Key: "order_number", Value: orderNumber}}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order %s: %w", orderNumber, err)
	}
	return doc.toModel(), nil
}

// ListOrders returns orders created in [from, to), newest first. A zero bound
// is left open.
func (s *Store) ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection(ordersCollection).Find(ctx, createdRange(from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	out := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func createdRange(from, to time.Time) bson.D {
	bounds := bson.D{}
	if !from.IsZero() {
		bounds = append(bounds, bson.E{Key: "$gte", Value: from.UTC()})
	}
	if !to.IsZero() {
		bounds = append(bounds, bson.E{Key: "$lt", Value: to.UTC()})
	}
	if len(bounds) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "created_at", Value: bounds}}
}
