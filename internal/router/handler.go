package router

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/GhaniKale/skincare-marketplace/internal/cart"
	"github.com/GhaniKale/skincare-marketplace/internal/catalog"
	"github.com/GhaniKale/skincare-marketplace/internal/checkout"
	"github.com/GhaniKale/skincare-marketplace/internal/session"
	"github.com/GhaniKale/skincare-marketplace/pkg/ai"
	"github.com/GhaniKale/skincare-marketplace/pkg/global"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	"github.com/GhaniKale/skincare-marketplace/pkg/notify"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// OrderSource backs the admin endpoints; pkg/mongo.Store implements it.
type OrderSource interface {
	ListOrders(ctx context.Context, from, to time.Time) ([]models.Order, error)
	SalesSummary(ctx context.Context, from, to time.Time) (models.SalesSummary, error)
}

type Deps struct {
	Catalog  *catalog.Reader
	Carts    *cart.Store
	Checkout *checkout.Processor
	Orders   OrderSource
	Reports  *ai.Reporter
	Hub      *notify.Hub
	Health   map[string]HealthCheck
	Log      *slog.Logger
}

type Handler struct {
	catalog  *catalog.Reader
	carts    *cart.Store
	checkout *checkout.Processor
	orders   OrderSource
	reports  *ai.Reporter
	hub      *notify.Hub
	health   map[string]HealthCheck
	log      *slog.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		catalog:  d.Catalog,
		carts:    d.Carts,
		checkout: d.Checkout,
		orders:   d.Orders,
		reports:  d.Reports,
		hub:      d.Hub,
		health:   d.Health,
		log:      d.Log,
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	status := make(map[string]string, len(h.health))
	healthy := true
	for name, check := range h.health {
		if err := check(c.Request.Context()); err != nil {
			h.log.Warn("health check failed", slog.String("dependency", name), slog.Any("error", err))
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "connected"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, global.APIResponse{Success: false, Data: status, Message: "Dependency unavailable", Code: "retry"})
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(status))
}

func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{"session_id": session.FromContext(c)}))
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(categories))
}

// GetProducts lists in-stock products, optionally narrowed by ?category= and
// a free-text ?q=.
func (h *Handler) GetProducts(c *gin.Context) {
	filter := catalog.Filter{
		CategoryID: c.Query("category"),
		Query:      c.Query("q"),
	}
	products, err := h.catalog.Browse(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(product))
}

type cartView struct {
	SessionID string            `json:"session_id"`
	Items     []models.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Total     decimal.Decimal   `json:"total"`
}

func newCartView(snap models.Cart) cartView {
	return cartView{
		SessionID: snap.SessionID,
		Items:     snap.Items,
		ItemCount: snap.ItemCount(),
		Total:     snap.Total(),
	}
}

func (h *Handler) respondCart(c *gin.Context, snap models.Cart, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(newCartView(snap)))
}

func (h *Handler) GetCart(c *gin.Context) {
	snap, err := h.carts.Snapshot(c.Request.Context(), session.FromContext(c))
	h.respondCart(c, snap, err)
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	snap, err := h.carts.AddToCart(c.Request.Context(), session.FromContext(c), strings.TrimSpace(req.ProductID))
	h.respondCart(c, snap, err)
}

// UpdateCartItem sets an item's quantity; zero or less removes it.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	snap, err := h.carts.UpdateQuantity(c.Request.Context(), session.FromContext(c), c.Param("id"), *req.Quantity)
	h.respondCart(c, snap, err)
}

func (h *Handler) RemoveFromCart(c *gin.Context) {
	snap, err := h.carts.RemoveFromCart(c.Request.Context(), session.FromContext(c), c.Param("id"))
	h.respondCart(c, snap, err)
}

func (h *Handler) ClearCart(c *gin.Context) {
	snap, err := h.carts.ClearCart(c.Request.Context(), session.FromContext(c))
	h.respondCart(c, snap, err)
}

// Checkout places an order for the session's cart. The total is always
// recomputed from the cart; any client-sent total is ignored.
func (h *Handler) Checkout(c *gin.Context) {
	var form checkout.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}

	order, err := h.checkout.SubmitOrder(c.Request.Context(), session.FromContext(c), form)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, global.SuccessResponse(gin.H{
		"order_number": order.OrderNumber,
		"order":        order,
	}))
}

func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, global.SuccessResponse(order))
}
