package catalog

import (
	"strings"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// AllCategories selects every category.
const AllCategories = "all"

type Filter struct {
	CategoryID string
	Query      string
}

func (f Filter) matchesCategory(p models.Product) bool {
	return f.CategoryID == "" || f.CategoryID == AllCategories || f.CategoryID == p.CategoryID
}

func (f Filter) matchesQuery(p models.Product) bool {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// FilterProducts keeps the products matching both the category and the
// free-text query, preserving input order.
func FilterProducts(products []models.Product, f Filter) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.matchesCategory(p) && f.matchesQuery(p) {
			out = append(out, p)
		}
	}
	return out
}
