package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	storemongo "github.com/GhaniKale/skincare-marketplace/pkg/mongo"
)

var (
	ErrInvalidForm   = errors.New("invalid checkout form")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrSubmitFailed  = errors.New("order submission failed")
	ErrOrderNotFound = errors.New("order not found")
)

// orderNumberAttempts bounds regeneration when a number clashes with an
// existing order.
const orderNumberAttempts = 3

type Processor struct {
	carts    CartStore
	orders   OrderRepository
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// NewProcessor builds a Processor. notifier may be nil.
func NewProcessor(carts CartStore, orders OrderRepository, notifier Notifier, log *slog.Logger) *Processor {
	return &Processor{
		carts:    carts,
		orders:   orders,
		notifier: notifier,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SubmitOrder records the session's cart as a pending order and takes the
// ordered items out of the cart. Items added while the order is being written
// stay in the cart. On failure the cart is left as it was and nothing is
// retried.
func (p *Processor) SubmitOrder(ctx context.Context, sessionID string, form Form) (models.Order, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return models.Order{}, err
	}

	cart, err := p.carts.Snapshot(ctx, sessionID)
	if err != nil {
		return models.Order{}, err
	}
	if cart.IsEmpty() {
		return models.Order{}, ErrEmptyCart
	}

	lines := models.BuildLineItems(cart.Items)
	order := models.Order{
		ID:              uuid.NewString(),
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		CustomerPhone:   form.Phone,
		ShippingAddress: form.Address,
		Items:           lines,
		TotalAmount:     models.SumLineItems(lines),
		Status:          models.OrderStatusPending,
		CreatedAt:       p.now(),
	}

	if err := p.insert(ctx, &order); err != nil {
		p.log.Error("order insert failed",
			slog.String("session_id", sessionID),
			slog.Any("error", err))
		return models.Order{}, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	p.log.Info("order placed",
		slog.String("order_number", order.OrderNumber),
		slog.String("session_id", sessionID),
		slog.Int("items", order.GetItemCount()),
		slog.String("total", order.TotalAmount.StringFixed(2)))

	if _, err := p.carts.ConsumeItems(ctx, sessionID, cart.Items); err != nil {
		p.log.Warn("cart clear after order failed",
			slog.String("order_number", order.OrderNumber),
			slog.String("session_id", sessionID),
			slog.Any("error", err))
	}
	if p.notifier != nil {
		p.notifier.Broadcast(order)
	}
	return order, nil
}

func (p *Processor) insert(ctx context.Context, order *models.Order) error {
	var err error
	for range orderNumberAttempts {
		order.OrderNumber = models.GenerateOrderNumber(order.CreatedAt)
		err = p.orders.InsertOrder(ctx, *order)
		if !errors.Is(err, storemongo.ErrDuplicateOrderNumber) {
			return err
		}
		p.log.Warn("order number clash", slog.String("order_number", order.OrderNumber))
	}
	return err
}

func (p *Processor) GetOrder(ctx context.Context, orderNumber string) (models.Order, error) {
	order, err := p.orders.GetOrderByNumber(ctx, orderNumber)
	if errors.Is(err, storemongo.ErrNotFound) {
		return models.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", orderNumber, err)
	}
	return order, nil
}
