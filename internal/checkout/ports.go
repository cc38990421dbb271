package checkout

import (
	"context"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// CartStore is the part of the cart store checkout needs.
type CartStore interface {
	Snapshot(ctx context.Context, sessionID string) (models.Cart, error)
	ConsumeItems(ctx context.Context, sessionID string, items []models.CartItem) (models.Cart, error)
}

// OrderRepository persists orders. InsertOrder reports an order number clash
// with pkg/mongo.ErrDuplicateOrderNumber and GetOrderByNumber a missing order
// with pkg/mongo.ErrNotFound.
type OrderRepository interface {
	InsertOrder(ctx context.Context, order models.Order) error
	GetOrderByNumber(ctx context.Context, orderNumber string) (models.Order, error)
}

// Notifier is told about every placed order.
type Notifier interface {
	Broadcast(order models.Order)
}
