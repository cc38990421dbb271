package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openai/openai-go/v2/option"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhaniKale/skincare-marketplace/pkg/logger"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

type stubSales struct {
	summary models.SalesSummary
	err     error
}

func (s stubSales) SalesSummary(ctx context.Context, from, to time.Time) (models.SalesSummary, error) {
	return s.summary, s.err
}

func sampleSummary() models.SalesSummary {
	return models.NewSalesSummary(
		[]models.DailySales{
			{Date: "2026-10-16", Orders: 2, Units: 3, Revenue: decimal.RequireFromString("45.00")},
			{Date: "2026-10-17", Orders: 1, Units: 1, Revenue: decimal.RequireFromString("15.00")},
		},
		[]models.ProductSales{{ProductID: "p1", ProductName: "Rose Serum", Units: 2, Revenue: decimal.RequireFromString("40.00")}},
	)
}

func TestGenerateSalesReport_Disabled(t *testing.T) {
	r := NewReporter(NewClient("", "", ""), stubSales{summary: sampleSummary()}, logger.Discard())

	resp, err := r.GenerateSalesReport(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.False(t, resp.AIEnabled)
	assert.Empty(t, resp.Data.AIInsights)
	assert.Equal(t, 3, resp.Data.RawData.Orders)
	assert.True(t, resp.Data.RawData.Revenue.Equal(decimal.RequireFromString("60.00")))
}

func TestGenerateSalesReport_SourceFailure(t *testing.T) {
	r := NewReporter(NewClient("", "", ""), stubSales{err: errors.New("mongo down")}, logger.Discard())

	_, err := r.GenerateSalesReport(context.Background(), time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestGenerateSalesReport_WithInsights(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel = body.Model

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1760700000,
			"model": "skincare-gpt",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "Serums carry revenue."},
				"finish_reason": "stop"
			}]
		}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "test-key", "skincare-gpt", option.WithMaxRetries(0))
	r := NewReporter(client, stubSales{summary: sampleSummary()}, logger.Discard())

	resp, err := r.GenerateSalesReport(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.True(t, resp.AIEnabled)
	assert.Equal(t, "Serums carry revenue.", resp.Data.AIInsights)
	assert.Equal(t, "skincare-gpt", gotModel)
}

func TestFormatSalesPrompt(t *testing.T) {
	prompt := formatSalesPrompt("2026-10-16", "now", sampleSummary())

	assert.Contains(t, prompt, "Orders: 3")
	assert.Contains(t, prompt, "Average order value: 20.00")
	assert.Contains(t, prompt, "- 2026-10-16, 2, 3, 45.00")
	assert.Contains(t, prompt, "- Rose Serum, 2, 40.00")
}
