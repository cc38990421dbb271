package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// ListCategories returns every category ordered by name.
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.collection(categoriesCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

// ListProducts returns in-stock products, featured first, then oldest first.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "featured", Value: -1},
		{Key: "created_at", Value: 1},
	})

	cursor, err := s.collection(productsCollection).Find(ctx, bson.D{{Key: "in_stock", Value: true}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var doc productDoc
	err := s.collection(productsCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %s: %w", id, err)
	}
	return doc.toModel(), nil
}

// UpsertCategory and UpsertProduct are used by the seed command only; the
// storefront itself never writes catalog data.
func (s *Store) UpsertCategory(ctx context.Context, c models.Category) error {
	_, err := s.collection(categoriesCollection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: c.ID}},
		newCategoryDoc(c),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert category %s: %w", c.ID, err)
	}
	return nil
}

func (s *Store) UpsertProduct(ctx context.Context, p models.Product) error {
	_, err := s.collection(productsCollection).ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: p.ID}},
		newProductDoc(p),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert product %s: %w", p.ID, err)
	}
	return nil
}
