package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

// LineItem is the immutable snapshot of one product captured into an order.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is written once at checkout and never mutated afterwards.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []LineItem      `json:"order_items"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BuildLineItems projects cart rows into order lines. A row whose product join
// is missing yields an empty name and a zero price.
func BuildLineItems(items []CartItem) []LineItem {
	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		line := LineItem{
			ProductID: item.ProductID,
			Price:     decimal.Zero,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
			line.Price = item.Product.Price
		}
		lines = append(lines, line)
	}
	return lines
}

func SumLineItems(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// GetItemCount returns the total number of units in the order
func (o *Order) GetItemCount() int {
	var count int
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// GenerateOrderNumber formats ORD-YYYYMMDD-HHMMSS-XXXXXX from the UTC time and
// six hex characters of a random UUID.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102-150405"), suffix)
}
