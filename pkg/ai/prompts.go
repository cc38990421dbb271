package ai

import (
	"fmt"
	"strings"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

const SalesReportSystemPrompt = `You are a business analyst for an online skincare boutique.
Generate concise, actionable insights from the store's order data. Focus on:
- Revenue, order volume and average order value trends
- Which products drive revenue and which lag
- Specific recommendations for merchandising and featured products
Keep responses to 3-4 paragraphs maximum.`

// formatSalesPrompt renders summary as plain text for the model.
func formatSalesPrompt(from, to string, summary models.SalesSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reporting window: %s to %s\n", from, to)
	fmt.Fprintf(&b, "Orders: %d\nUnits sold: %d\nRevenue: %s\nAverage order value: %s\n\n",
		summary.Orders, summary.Units,
		summary.Revenue.StringFixed(2), summary.AverageOrderValue().StringFixed(2))

	b.WriteString("Daily breakdown (date, orders, units, revenue):\n")
	if len(summary.Days) == 0 {
		b.WriteString("- no orders\n")
	}
	for _, d := range summary.Days {
		fmt.Fprintf(&b, "- %s, %d, %d, %s\n", d.Date, d.Orders, d.Units, d.Revenue.StringFixed(2))
	}

	if len(summary.TopProducts) > 0 {
		b.WriteString("\nTop products by revenue (name, units, revenue):\n")
		for _, p := range summary.TopProducts {
			name := p.ProductName
			if name == "" {
				name = p.ProductID
			}
			fmt.Fprintf(&b, "- %s, %d, %s\n", name, p.Units, p.Revenue.StringFixed(2))
		}
	}
	return b.String()
}
