// Package carttest provides an in-memory cart repository for tests.
package carttest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GhaniKale/skincare-marketplace/internal/catalog"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	storemongo "github.com/GhaniKale/skincare-marketplace/pkg/mongo"
)

// Repo mimics pkg/mongo's cart queries over a fixed product set. Setting
// WriteErr or ReadErr makes the matching calls fail.
type Repo struct {
	mu       sync.Mutex
	products map[string]models.Product
	rows     []models.CartItem
	clock    time.Time

	WriteErr error
	ReadErr  error
}

func NewRepo(products ...models.Product) *Repo {
	r := &Repo{
		products: make(map[string]models.Product),
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

// RemoveProduct drops a product so later joins come back empty.
func (r *Repo) RemoveProduct(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
}

// Rows returns a copy of the raw rows for a session.
func (r *Repo) Rows(sessionID string) []models.CartItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CartItem
	for _, row := range r.rows {
		if row.SessionID == sessionID {
			out = append(out, row)
		}
	}
	return out
}

func (r *Repo) GetProduct(ctx context.Context, id string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %s", catalog.ErrProductNotFound, id)
	}
	return p, nil
}

func (r *Repo) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ReadErr != nil {
		return nil, r.ReadErr
	}
	var out []models.CartItem
	for _, row := range r.rows {
		if row.SessionID != sessionID {
			continue
		}
		if p, ok := r.products[row.ProductID]; ok {
			row.Product = &p
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *Repo) IncrementCartItem(ctx context.Context, sessionID, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	now := r.tick()
	for i := range r.rows {
		if r.rows[i].SessionID == sessionID && r.rows[i].ProductID == productID {
			r.rows[i].Quantity++
			r.rows[i].UpdatedAt = now
			return nil
		}
	}
	r.rows = append(r.rows, models.CartItem{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

func (r *Repo) SetCartItemQuantity(ctx context.Context, sessionID, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	for i := range r.rows {
		if r.rows[i].ID == itemID && r.rows[i].SessionID == sessionID {
			r.rows[i].Quantity = quantity
			r.rows[i].UpdatedAt = r.tick()
			return nil
		}
	}
	return storemongo.ErrNotFound
}

func (r *Repo) DeleteCartItem(ctx context.Context, sessionID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.rows = r.keep(func(row models.CartItem) bool {
		return !(row.ID == itemID && row.SessionID == sessionID)
	})
	return nil
}

func (r *Repo) SubtractCartItems(ctx context.Context, sessionID string, items []models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	taken := make(map[string]int, len(items))
	for _, item := range items {
		taken[item.ID] += item.Quantity
	}
	now := r.tick()
	for i := range r.rows {
		if q, ok := taken[r.rows[i].ID]; ok && r.rows[i].SessionID == sessionID {
			r.rows[i].Quantity -= q
			r.rows[i].UpdatedAt = now
		}
	}
	r.rows = r.keep(func(row models.CartItem) bool {
		_, ok := taken[row.ID]
		return !(ok && row.SessionID == sessionID && row.Quantity <= 0)
	})
	return nil
}

func (r *Repo) DeleteCartItemsBySession(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.rows = r.keep(func(row models.CartItem) bool {
		return row.SessionID != sessionID
	})
	return nil
}

func (r *Repo) keep(fn func(models.CartItem) bool) []models.CartItem {
	out := r.rows[:0]
	for _, row := range r.rows {
		if fn(row) {
			out = append(out, row)
		}
	}
	return out
}

func (r *Repo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}
