package models

import "github.com/shopspring/decimal"

// DailySales is one UTC day of order activity.
type DailySales struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Units   int             `json:"units"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ProductSales struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       int             `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// SalesSummary aggregates a reporting window.
type SalesSummary struct {
	Days        []DailySales    `json:"days"`
	TopProducts []ProductSales  `json:"top_products"`
	Orders      int             `json:"total_orders"`
	Units       int             `json:"total_units"`
	Revenue     decimal.Decimal `json:"total_revenue"`
}

// NewSalesSummary totals the per-day rows.
func NewSalesSummary(days []DailySales, top []ProductSales) SalesSummary {
	summary := SalesSummary{Days: days, TopProducts: top, Revenue: decimal.Zero}
	for _, d := range days {
		summary.Orders += d.Orders
		summary.Units += d.Units
		summary.Revenue = summary.Revenue.Add(d.Revenue)
	}
	return summary
}

// AverageOrderValue is zero for an empty window.
func (s SalesSummary) AverageOrderValue() decimal.Decimal {
	if s.Orders == 0 {
		return decimal.Zero
	}
	return s.Revenue.Div(decimal.NewFromInt(int64(s.Orders))).Round(2)
}
