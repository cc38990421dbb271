package cart

import (
	"context"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// Repository is the remote cart_items store. SetCartItemQuantity reports a
// row that does not belong to the session with pkg/mongo.ErrNotFound.
type Repository interface {
	ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error)
	IncrementCartItem(ctx context.Context, sessionID, productID string) error
	SetCartItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) error
	DeleteCartItem(ctx context.Context, sessionID, itemID string) error
	SubtractCartItems(ctx context.Context, sessionID string, items []models.CartItem) error
	DeleteCartItemsBySession(ctx context.Context, sessionID string) error
}

// ProductLookup resolves a product id before it is added to a cart.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
}
