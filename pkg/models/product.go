package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a skincare product in the catalog. The storefront never
// mutates products; they are provisioned out of band (see cmd/seed).
type Product struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Ingredients string          `json:"ingredients"`
	SkinType    string          `json:"skin_type"`
	Size        string          `json:"size"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (p *Product) IsInStock() bool {
	return p.InStock
}
