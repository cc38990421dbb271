package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	storemongo "github.com/GhaniKale/skincare-marketplace/pkg/mongo"
)

var (
	ErrMissingSession = errors.New("missing session id")
	ErrItemNotFound   = errors.New("cart item not found")
	// ErrUnavailable wraps failed reads and writes against the cart store.
	ErrUnavailable = errors.New("cart store unavailable")
)

// Store manages session carts. Every mutation ends with a full re-fetch and
// the re-fetched cart is what the caller gets back.
type Store struct {
	repo     Repository
	products ProductLookup
	locks    *sessionLocks
	log      *slog.Logger
}

func NewStore(repo Repository, products ProductLookup, log *slog.Logger) *Store {
	return &Store{
		repo:     repo,
		products: products,
		locks:    newSessionLocks(),
		log:      log,
	}
}

// Snapshot returns every row of the session, oldest first.
func (s *Store) Snapshot(ctx context.Context, sessionID string) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}
	return s.fetch(ctx, sessionID)
}

// AddToCart adds one unit of productID. The product must exist; its stock
// flag is not consulted.
func (s *Store) AddToCart(ctx context.Context, sessionID, productID string) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return models.Cart{}, err
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.IncrementCartItem(ctx, sessionID, productID); err != nil {
		return models.Cart{}, s.writeErr("add to cart", sessionID, err)
	}
	return s.fetch(ctx, sessionID)
}

// UpdateQuantity sets the quantity of itemID. A quantity of zero or less
// removes the row.
func (s *Store) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}
	if quantity <= 0 {
		return s.RemoveFromCart(ctx, sessionID, itemID)
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	err := s.repo.SetCartItemQuantity(ctx, sessionID, itemID, quantity)
	if errors.Is(err, storemongo.ErrNotFound) {
		return models.Cart{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}
	if err != nil {
		return models.Cart{}, s.writeErr("update quantity", sessionID, err)
	}
	return s.fetch(ctx, sessionID)
}

// RemoveFromCart deletes itemID. Removing a row that is already gone is not
// an error.
func (s *Store) RemoveFromCart(ctx context.Context, sessionID, itemID string) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.DeleteCartItem(ctx, sessionID, itemID); err != nil {
		return models.Cart{}, s.writeErr("remove from cart", sessionID, err)
	}
	return s.fetch(ctx, sessionID)
}

// ClearCart deletes every row of the session and no other.
func (s *Store) ClearCart(ctx context.Context, sessionID string) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.DeleteCartItemsBySession(ctx, sessionID); err != nil {
		return models.Cart{}, s.writeErr("clear cart", sessionID, err)
	}
	return s.fetch(ctx, sessionID)
}

// ConsumeItems takes the quantities in items out of the session's cart, as
// after they were ordered. Anything added since items were read stays.
func (s *Store) ConsumeItems(ctx context.Context, sessionID string, items []models.CartItem) (models.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return models.Cart{}, ErrMissingSession
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	if err := s.repo.SubtractCartItems(ctx, sessionID, items); err != nil {
		return models.Cart{}, s.writeErr("consume items", sessionID, err)
	}
	return s.fetch(ctx, sessionID)
}

func (s *Store) fetch(ctx context.Context, sessionID string) (models.Cart, error) {
	items, err := s.repo.ListCartItems(ctx, sessionID)
	if err != nil {
		return models.Cart{}, fmt.Errorf("%w: fetch cart: %w", ErrUnavailable, err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return models.Cart{SessionID: sessionID, Items: items}, nil
}

func (s *Store) writeErr(op, sessionID string, err error) error {
	s.log.Error("cart write failed",
		slog.String("op", op),
		slog.String("session_id", sessionID),
		slog.Any("error", err))
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}
