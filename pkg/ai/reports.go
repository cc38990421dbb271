package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

// SalesSource supplies aggregated order data; pkg/mongo.Store implements it.
type SalesSource interface {
	SalesSummary(ctx context.Context, from, to time.Time) (models.SalesSummary, error)
}

type ReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type ReportData struct {
	RawData    models.SalesSummary `json:"raw_data"`
	AIInsights string              `json:"ai_insights,omitempty"`
	Summary    string              `json:"summary"`
	Error      string              `json:"error,omitempty"`
}

type Reporter struct {
	client *Client
	sales  SalesSource
	log    *slog.Logger
}

func NewReporter(client *Client, sales SalesSource, log *slog.Logger) *Reporter {
	return &Reporter{client: client, sales: sales, log: log}
}

// GenerateSalesReport aggregates orders in [from, to) and, when the AI
// service is enabled, attaches generated insights. An AI failure is reported
// in the response, not as an error; only a failed aggregation is.
func (r *Reporter) GenerateSalesReport(ctx context.Context, from, to time.Time) (*ReportResponse, error) {
	summary, err := r.sales.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch sales data: %w", err)
	}

	response := &ReportResponse{
		Status:      "success",
		GeneratedAt: time.Now().UTC(),
		AIEnabled:   r.client.Enabled(),
		Data: ReportData{
			RawData: summary,
			Summary: "Raw sales data (AI insights unavailable)",
		},
	}
	if !r.client.Enabled() {
		return response, nil
	}

	prompt := formatSalesPrompt(formatBound(from, "beginning"), formatBound(to, "now"), summary)
	insights, err := r.client.generateCompletion(ctx, SalesReportSystemPrompt, prompt)
	if err != nil {
		r.log.Warn("AI sales report failed", slog.Any("error", err))
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response, nil
	}

	response.Data.AIInsights = insights
	response.Data.Summary = "AI-generated sales insights and recommendations"
	return response, nil
}

func formatBound(t time.Time, open string) string {
	if t.IsZero() {
		return open
	}
	return t.UTC().Format("2006-01-02")
}
