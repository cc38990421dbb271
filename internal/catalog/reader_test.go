package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhaniKale/skincare-marketplace/pkg/logger"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
	storemongo "github.com/GhaniKale/skincare-marketplace/pkg/mongo"
	storeredis "github.com/GhaniKale/skincare-marketplace/pkg/redis"
)

type fakeRepo struct {
	mu         sync.Mutex
	categories []models.Category
	products   []models.Product
	err        error
	calls      int
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

func (f *fakeRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func (f *fakeRepo) GetProduct(ctx context.Context, id string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return models.Product{}, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, storemongo.ErrNotFound
}

// gatedRepo holds ListCategories until release is closed or the store context
// is done.
type gatedRepo struct {
	fakeRepo
	entered chan context.Context
	release chan struct{}
}

func (g *gatedRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	g.entered <- ctx
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.fakeRepo.ListCategories(ctx)
}

type fakeCache struct {
	mu         sync.Mutex
	categories []models.Category
	products   []models.Product
	getErr     error
}

func (f *fakeCache) GetCategories(ctx context.Context) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.categories == nil {
		return nil, storeredis.ErrCacheMiss
	}
	return f.categories, nil
}

func (f *fakeCache) SetCategories(ctx context.Context, categories []models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = categories
	return nil
}

func (f *fakeCache) GetProducts(ctx context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.products == nil {
		return nil, storeredis.ErrCacheMiss
	}
	return f.products, nil
}

func (f *fakeCache) SetProducts(ctx context.Context, products []models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products = products
	return nil
}

func product(id, category, name string, inStock, featured bool) models.Product {
	return models.Product{
		ID:         id,
		CategoryID: category,
		Name:       name,
		Price:      decimal.RequireFromString("10.00"),
		InStock:    inStock,
		Featured:   featured,
	}
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListProducts_InStockFeaturedFirstStable(t *testing.T) {
	repo := &fakeRepo{products: []models.Product{
		product("1", "A", "Cleanser", true, false),
		product("2", "A", "Serum", true, true),
		product("3", "B", "Sold Out", false, true),
		product("4", "B", "Toner", true, false),
		product("5", "B", "Mask", true, true),
	}}
	r := NewReader(repo, nil, logger.Discard())

	products, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Serum", "Mask", "Cleanser", "Toner"}, names(products))
}

func TestListProducts_FailureIsNotEmpty(t *testing.T) {
	r := NewReader(&fakeRepo{err: errors.New("connection refused")}, nil, logger.Discard())

	products, err := r.ListProducts(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, products)

	_, err = r.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestListProducts_EmptyStoreIsNotAnError(t *testing.T) {
	r := NewReader(&fakeRepo{}, nil, logger.Discard())

	products, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestListCategories_ReadThroughCache(t *testing.T) {
	repo := &fakeRepo{categories: []models.Category{{ID: "c1", Name: "Cleansers"}}}
	cache := &fakeCache{}
	r := NewReader(repo, cache, logger.Discard())
	ctx := context.Background()

	first, err := r.ListCategories(ctx)
	require.NoError(t, err)
	second, err := r.ListCategories(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.calls)
	assert.Len(t, cache.categories, 1)
}

func TestListCategories_CallerCancelDoesNotFailSharedFetch(t *testing.T) {
	repo := &gatedRepo{
		fakeRepo: fakeRepo{categories: []models.Category{{ID: "c1", Name: "Cleansers"}}},
		entered:  make(chan context.Context, 2),
		release:  make(chan struct{}),
	}
	r := NewReader(repo, nil, logger.Discard())

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := r.ListCategories(firstCtx)
		firstErr <- err
	}()
	storeCtx := <-repo.entered

	type result struct {
		categories []models.Category
		err        error
	}
	second := make(chan result, 1)
	go func() {
		categories, err := r.ListCategories(context.Background())
		second <- result{categories, err}
	}()

	cancel()
	err := <-firstErr
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, storeCtx.Err(), "store read must not inherit the first caller's cancellation")

	close(repo.release)
	got := <-second
	require.NoError(t, got.err)
	require.Len(t, got.categories, 1)
	assert.Equal(t, "Cleansers", got.categories[0].Name)
}

func TestListProducts_CallersGetTheirOwnSlice(t *testing.T) {
	repo := &fakeRepo{products: []models.Product{product("1", "A", "Serum", true, false)}}
	r := NewReader(repo, &fakeCache{}, logger.Discard())
	ctx := context.Background()

	first, err := r.ListProducts(ctx)
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := r.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Serum"}, names(second))
}

func TestListProducts_CacheErrorFallsBackToStore(t *testing.T) {
	repo := &fakeRepo{products: []models.Product{product("1", "A", "Serum", true, false)}}
	cache := &fakeCache{getErr: errors.New("redis down")}
	r := NewReader(repo, cache, logger.Discard())

	products, err := r.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Serum"}, names(products))
}

func TestGetProduct(t *testing.T) {
	repo := &fakeRepo{products: []models.Product{product("1", "A", "Serum", false, false)}}
	r := NewReader(repo, nil, logger.Discard())
	ctx := context.Background()

	p, err := r.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Serum", p.Name)

	_, err = r.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	repo := &fakeRepo{err: errors.New("timeout")}
	r := NewReader(repo, nil, logger.Discard())
	ctx := context.Background()

	for range 5 {
		_, err := r.GetProduct(ctx, "1")
		require.ErrorIs(t, err, ErrUnavailable)
	}
	calls := repo.calls

	_, err := r.GetProduct(ctx, "1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, calls, repo.calls, "open breaker must not reach the store")
}

func TestWarmFillsCache(t *testing.T) {
	repo := &fakeRepo{
		categories: []models.Category{{ID: "c1", Name: "Serums"}},
		products:   []models.Product{product("1", "c1", "Serum", true, false)},
	}
	cache := &fakeCache{}
	r := NewReader(repo, cache, logger.Discard())

	require.NoError(t, r.Warm(context.Background()))
	assert.Len(t, cache.categories, 1)
	assert.Len(t, cache.products, 1)
}

func TestStartWarmerRejectsBadSpec(t *testing.T) {
	r := NewReader(&fakeRepo{}, &fakeCache{}, logger.Discard())

	_, err := r.StartWarmer("not a schedule")
	assert.Error(t, err)

	c, err := r.StartWarmer("@every 1h")
	require.NoError(t, err)
	c.Stop()
}
