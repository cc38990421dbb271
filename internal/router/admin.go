package router

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GhaniKale/skincare-marketplace/pkg/export"
	"github.com/GhaniKale/skincare-marketplace/pkg/global"
)

const dateLayout = "2006-01-02"

// parseRange reads ?from= and ?to= as inclusive YYYY-MM-DD days and returns
// the half-open [from, to) window. Missing bounds stay zero.
func parseRange(c *gin.Context) (from, to time.Time, ok bool) {
	var errs []global.ValidationError

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs = append(errs, global.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD", Code: "invalid_format"})
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs = append(errs, global.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD", Code: "invalid_format"})
		} else {
			to = t.AddDate(0, 0, 1)
		}
	}
	if len(errs) == 0 && !from.IsZero() && !to.IsZero() && !from.Before(to) {
		errs = append(errs, global.ValidationError{Field: "from", Message: "from must not be after to", Code: "invalid_range"})
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid date range", errs))
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func (h *Handler) ExportOrders(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), from, to)
	if err != nil {
		h.log.Error("list orders for export failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, global.RetryableResponse("Failed to load orders"))
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		h.log.Error("order export failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to write Excel file", nil))
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

func (h *Handler) LiveOrders(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}

func (h *Handler) GetSalesAnalytics(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	summary, err := h.orders.SalesSummary(c.Request.Context(), from, to)
	if err != nil {
		h.log.Error("sales analytics failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, global.RetryableResponse("Failed to get sales analytics"))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"summary":             summary,
		"average_order_value": summary.AverageOrderValue(),
	}))
}

func (h *Handler) GenerateAISalesReport(c *gin.Context) {
	from, to, ok := parseRange(c)
	if !ok {
		return
	}

	report, err := h.reports.GenerateSalesReport(c.Request.Context(), from, to)
	if err != nil {
		h.log.Error("AI sales report failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, global.RetryableResponse("Failed to generate sales report"))
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(report))
}
