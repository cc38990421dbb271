package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one row of a session's cart. Product is joined at read time and
// is nil when the referenced product no longer exists.
type CartItem struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Product   *Product  `json:"product,omitempty"`
}

// UnitPrice returns the joined product price, or zero when the join is missing.
func (ci CartItem) UnitPrice() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}
	return ci.Product.Price
}

func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.UnitPrice().Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

// Cart is a snapshot of every row belonging to one session.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
}

func (c Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}
