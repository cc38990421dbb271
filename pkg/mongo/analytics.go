package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

type dailySalesDoc struct {
	Date    string          `bson:"_id"`
	Orders  int             `bson:"orders"`
	Units   int             `bson:"units"`
	Revenue bson.Decimal128 `bson:"revenue"`
}

type productSalesDoc struct {
	ProductID   string          `bson:"_id"`
	ProductName string          `bson:"product_name"`
	Units       int             `bson:"units"`
	Revenue     bson.Decimal128 `bson:"revenue"`
}

// DailySales groups orders in [from, to) by UTC calendar day, oldest first.
func (s *Store) DailySales(ctx context.Context, from, to time.Time) ([]models.DailySales, error) {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: createdRange(from, to)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$created_at"},
			}}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$sum", Value: "$order_items.quantity"}}}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.collection(ordersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []dailySalesDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode daily sales: %w", err)
	}

	out := make([]models.DailySales, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.DailySales{
			Date:    d.Date,
			Orders:  d.Orders,
			Units:   d.Units,
			Revenue: fromDecimal128(d.Revenue),
		})
	}
	return out, nil
}

// TopProducts ranks line items in [from, to) by revenue.
func (s *Store) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]models.ProductSales, error) {
	if limit <= 0 {
		limit = 5
	}

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: createdRange(from, to)}},
		bson.D{{Key: "$unwind", Value: "$order_items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$order_items.product_id"},
			{Key: "product_name", Value: bson.D{{Key: "$first", Value: "$order_items.product_name"}}},
			{Key: "units", Value: bson.D{{Key: "$sum", Value: "$order_items.quantity"}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$order_items.price", "$order_items.quantity"}},
			}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.collection(ordersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productSalesDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode top products: %w", err)
	}

	out := make([]models.ProductSales, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.ProductSales{
			ProductID:   d.ProductID,
			ProductName: d.ProductName,
			Units:       d.Units,
			Revenue:     fromDecimal128(d.Revenue),
		})
	}
	return out, nil
}

// SalesSummary combines DailySales and TopProducts for one window.
func (s *Store) SalesSummary(ctx context.Context, from, to time.Time) (models.SalesSummary, error) {
	days, err := s.DailySales(ctx, from, to)
	if err != nil {
		return models.SalesSummary{}, err
	}
	top, err := s.TopProducts(ctx, from, to, 5)
	if err != nil {
		return models.SalesSummary{}, err
	}
	return models.NewSalesSummary(days, top), nil
}
