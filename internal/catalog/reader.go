package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"

	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	storemongo "github.com/GhaniKale/skincare-marketplace/pkg/mongo"
	storeredis "github.com/GhaniKale/skincare-marketplace/pkg/redis"
)

var (
	// ErrUnavailable wraps every failed catalog read. Callers may retry.
	ErrUnavailable     = errors.New("catalog unavailable")
	ErrProductNotFound = errors.New("product not found")
)

const (
	categoriesFlight = "categories"
	productsFlight   = "products"

	flightTimeout = 10 * time.Second
)

// Reader serves the catalog through a read-through cache. Store reads go
// through a circuit breaker; a failed read is always returned as an error
// wrapping ErrUnavailable, never as an empty list.
type Reader struct {
	repo    Repository
	cache   Cache
	breaker *gobreaker.CircuitBreaker[any]
	sfg     singleflight.Group
	log     *slog.Logger
}

// NewReader builds a Reader. cache may be nil, in which case every read goes
// to the store.
func NewReader(repo Repository, cache Cache, log *slog.Logger) *Reader {
	r := &Reader{repo: repo, cache: cache, log: log}
	r.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "catalog-store",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, storemongo.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return r
}

func (r *Reader) ListCategories(ctx context.Context) ([]models.Category, error) {
	v, err := r.flight(ctx, categoriesFlight, func(ctx context.Context) (any, error) {
		if r.cache != nil {
			categories, err := r.cache.GetCategories(ctx)
			if err == nil {
				return categories, nil
			}
			r.logCacheErr("get categories", err)
		}

		categories, err := r.fetchCategories(ctx)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			if err := r.cache.SetCategories(ctx, categories); err != nil {
				r.logCacheErr("set categories", err)
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]models.Category)), nil
}

// ListProducts returns in-stock products with featured ones first. Relative
// order is otherwise kept as the store returned it.
func (r *Reader) ListProducts(ctx context.Context) ([]models.Product, error) {
	v, err := r.flight(ctx, productsFlight, func(ctx context.Context) (any, error) {
		if r.cache != nil {
			products, err := r.cache.GetProducts(ctx)
			if err == nil {
				return products, nil
			}
			r.logCacheErr("get products", err)
		}

		products, err := r.fetchProducts(ctx)
		if err != nil {
			return nil, err
		}
		if r.cache != nil {
			if err := r.cache.SetProducts(ctx, products); err != nil {
				r.logCacheErr("set products", err)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	// Ordered on the way into the cache; the clone keeps callers off the
	// slice shared by the flight.
	return slices.Clone(v.([]models.Product)), nil
}

// flight runs fn once for all concurrent callers of key. fn gets a context
// that outlives any single caller; each caller stops waiting when its own ctx
// is done.
func (r *Reader) flight(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := r.sfg.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return fn(fctx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, key, ctx.Err())
	}
}

// Browse lists products and applies f.
func (r *Reader) Browse(ctx context.Context, f Filter) ([]models.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, f), nil
}

// GetProduct looks a single product up in the store, in stock or not.
func (r *Reader) GetProduct(ctx context.Context, id string) (models.Product, error) {
	v, err := r.breaker.Execute(func() (any, error) {
		return r.repo.GetProduct(ctx, id)
	})
	if errors.Is(err, storemongo.ErrNotFound) {
		return models.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: get product %s: %w", ErrUnavailable, id, err)
	}
	return v.(models.Product), nil
}

// Warm reloads both cache entries from the store.
func (r *Reader) Warm(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}

	categories, err := r.fetchCategories(ctx)
	if err != nil {
		return err
	}
	products, err := r.fetchProducts(ctx)
	if err != nil {
		return err
	}

	return errors.Join(
		r.cache.SetCategories(ctx, categories),
		r.cache.SetProducts(ctx, products),
	)
}

func (r *Reader) fetchCategories(ctx context.Context) ([]models.Category, error) {
	v, err := r.breaker.Execute(func() (any, error) {
		return r.repo.ListCategories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", ErrUnavailable, err)
	}
	categories := v.([]models.Category)
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (r *Reader) fetchProducts(ctx context.Context) ([]models.Product, error) {
	v, err := r.breaker.Execute(func() (any, error) {
		return r.repo.ListProducts(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", ErrUnavailable, err)
	}
	return storefrontOrder(v.([]models.Product)), nil
}

func (r *Reader) logCacheErr(op string, err error) {
	if errors.Is(err, storeredis.ErrCacheMiss) {
		return
	}
	r.log.Warn("catalog cache error", slog.String("op", op), slog.Any("error", err))
}

// storefrontOrder drops out-of-stock products and moves featured ones to the
// front, keeping relative order within each group.
func storefrontOrder(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.IsInStock() {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Product) int {
		switch {
		case a.Featured == b.Featured:
			return 0
		case a.Featured:
			return -1
		default:
			return 1
		}
	})
	return out
}
