package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhaniKale/skincare-marketplace/internal/cart/carttest"
	"github.com/GhaniKale/skincare-marketplace/internal/catalog"
	"github.com/GhaniKale/skincare-marketplace/pkg/logger"
	"github.com/GhaniKale/skincare-marketplace/pkg/models"
)

var (
	serum = models.Product{ID: "serum", Name: "Rose Serum", Price: decimal.RequireFromString("10.00"), InStock: true}
	toner = models.Product{ID: "toner", Name: "Toner", Price: decimal.RequireFromString("5.50"), InStock: true}
)

func newTestStore() (*Store, *carttest.Repo) {
	repo := carttest.NewRepo(serum, toner)
	return NewStore(repo, repo, logger.Discard()), repo
}

func TestAddToCart_TwiceMergesIntoOneRow(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	cart, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "serum", cart.Items[0].ProductID)
}

func TestAddToCart_ConcurrentAddsAreNotLost(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 25 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.AddToCart(ctx, "s1", "toner")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	rows := repo.Rows("s1")
	require.Len(t, rows, 1)
	assert.Equal(t, 25, rows[0].Quantity)
	assert.Zero(t, store.locks.size())
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	store, repo := newTestStore()

	_, err := store.AddToCart(context.Background(), "s1", "ghost")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	assert.Empty(t, repo.Rows("s1"))
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		store, _ := newTestStore()
		ctx := context.Background()

		cart, err := store.AddToCart(ctx, "s1", "serum")
		require.NoError(t, err)

		cart, err = store.UpdateQuantity(ctx, "s1", cart.Items[0].ID, qty)
		require.NoError(t, err)
		assert.Empty(t, cart.Items, "quantity %d", qty)
	}
}

func TestUpdateQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cart, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	id := cart.Items[0].ID

	cart, err = store.UpdateQuantity(ctx, "s1", id, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.ItemCount())

	_, err = store.UpdateQuantity(ctx, "other-session", id, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = store.UpdateQuantity(ctx, "s1", "missing", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCartTotal(t *testing.T) {
	store, repo := newTestStore()
	ctx := context.Background()

	_, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	cart, err := store.AddToCart(ctx, "s1", "toner")
	require.NoError(t, err)

	assert.Equal(t, 3, cart.ItemCount())
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("25.50")), "got %s", cart.Total())

	repo.RemoveProduct("toner")
	cart, err = store.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Total().Equal(decimal.RequireFromString("20.00")))
}

func TestClearCart_OnlyTouchesOwnSession(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	for _, id := range []string{"serum", "toner"} {
		_, err := store.AddToCart(ctx, "s1", id)
		require.NoError(t, err)
	}
	_, err := store.AddToCart(ctx, "s2", "serum")
	require.NoError(t, err)

	cart, err := store.ClearCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	other, err := store.Snapshot(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other.Items, 1)
}

func TestConsumeItems_KeepsWhatWasAddedSince(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	ordered, err := store.Snapshot(ctx, "s1")
	require.NoError(t, err)

	_, err = store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	_, err = store.AddToCart(ctx, "s1", "toner")
	require.NoError(t, err)

	left, err := store.ConsumeItems(ctx, "s1", ordered.Items)
	require.NoError(t, err)
	require.Len(t, left.Items, 2)
	assert.Equal(t, "serum", left.Items[0].ProductID)
	assert.Equal(t, 1, left.Items[0].Quantity)
	assert.Equal(t, "toner", left.Items[1].ProductID)

	left, err = store.ConsumeItems(ctx, "s1", left.Items)
	require.NoError(t, err)
	assert.True(t, left.IsEmpty())
}

func TestRemoveFromCart_Idempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	cart, err := store.AddToCart(ctx, "s1", "serum")
	require.NoError(t, err)
	id := cart.Items[0].ID

	_, err = store.RemoveFromCart(ctx, "s1", id)
	require.NoError(t, err)
	cart, err = store.RemoveFromCart(ctx, "s1", id)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestWriteFailureIsSurfaced(t *testing.T) {
	store, repo := newTestStore()
	repo.WriteErr = errors.New("write conflict")

	_, err := store.AddToCart(context.Background(), "s1", "serum")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, repo.WriteErr)
}

func TestReadFailureIsNotAnEmptyCart(t *testing.T) {
	store, repo := newTestStore()
	repo.ReadErr = errors.New("no reachable servers")

	cart, err := store.Snapshot(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, cart.Items)
}

func TestMissingSession(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Snapshot(ctx, "")
	assert.ErrorIs(t, err, ErrMissingSession)
	_, err = store.AddToCart(ctx, " ", "serum")
	assert.ErrorIs(t, err, ErrMissingSession)
	_, err = store.ClearCart(ctx, "")
	assert.ErrorIs(t, err, ErrMissingSession)
}

func TestEmptySnapshotHasNonNilItems(t *testing.T) {
	store, _ := newTestStore()

	cart, err := store.Snapshot(context.Background(), "fresh")
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Equal(t, "fresh", cart.SessionID)
}
