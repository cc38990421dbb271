package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

func TestFilterProducts(t *testing.T) {
	products := []models.Product{
		{ID: "1", CategoryID: "A", Name: "Rose Serum", Description: "Brightening"},
		{ID: "2", CategoryID: "B", Name: "Clay Mask", Description: "Deep clean with kaolin"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "category only", filter: Filter{CategoryID: "B"}, want: []string{"Clay Mask"}},
		{name: "all with name query", filter: Filter{CategoryID: "all", Query: "rose"}, want: []string{"Rose Serum"}},
		{name: "query is case-insensitive", filter: Filter{CategoryID: "all", Query: "ROSE"}, want: []string{"Rose Serum"}},
		{name: "description match", filter: Filter{Query: "Kaolin"}, want: []string{"Clay Mask"}},
		{name: "query matches both", filter: Filter{CategoryID: AllCategories, Query: "e"}, want: []string{"Rose Serum", "Clay Mask"}},
		{name: "pass-through", filter: Filter{}, want: []string{"Rose Serum", "Clay Mask"}},
		{name: "category and query disagree", filter: Filter{CategoryID: "A", Query: "mask"}, want: []string{}},
		{name: "unknown category", filter: Filter{CategoryID: "Z"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(FilterProducts(products, tt.filter)))
		})
	}
}
