package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

func newOrder(userID string) *domain.Order {
	return &domain.Order{
		UserID:       userID,
		RestaurantID: "r1",
		Status:       domain.StatusPending,
		TotalAmount:  decimal.RequireFromString("12.50"),
		Items: []domain.OrderItem{
			{MenuItemID: "m1", Quantity: 1, UnitPrice: decimal.RequireFromString("12.50")},
		},
	}
}

func createOrder(t *testing.T, store *OrderStore, order *domain.Order) *domain.Order {
	t.Helper()
	var created *domain.Order
	err := store.Atomically(context.Background(), func(ctx context.Context, w ports.OrderWriter) error {
		header, err := w.Create(ctx, order)
		if err != nil {
			return err
		}
		header.Items, err = w.CreateItems(ctx, header.ID, order.Items)
		created = header
		return err
	})
	require.NoError(t, err)
	return created
}

func TestOrderStore_AtomicallyCommits(t *testing.T) {
	store := NewOrderStore()
	created := createOrder(t, store, newOrder("u1"))
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Items, 1)
	assert.Equal(t, created.ID, created.Items[0].OrderID)
	assert.NotEmpty(t, created.Items[0].ID)

	fetched, err := store.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Items, 1)

	fetched.Items[0].Quantity = 42
	again, err := store.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestOrderStore_AtomicallyDiscardsOnError(t *testing.T) {
	store := NewOrderStore()
	boom := errors.New("boom")
	var headerID string
	err := store.Atomically(context.Background(), func(ctx context.Context, w ports.OrderWriter) error {
		header, err := w.Create(ctx, newOrder("u1"))
		if err != nil {
			return err
		}
		headerID = header.ID
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = store.FindByID(context.Background(), headerID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
	list, err := store.FindByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOrderStore_CreateItemsRejectsBadQuantity(t *testing.T) {
	store := NewOrderStore()
	err := store.Atomically(context.Background(), func(ctx context.Context, w ports.OrderWriter) error {
		header, err := w.Create(ctx, newOrder("u1"))
		if err != nil {
			return err
		}
		_, err = w.CreateItems(ctx, header.ID, []domain.OrderItem{{MenuItemID: "m1", Quantity: 0}})
		return err
	})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestOrderStore_FindByUserIDNewestFirst(t *testing.T) {
	store := NewOrderStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return base })

	first := createOrder(t, store, newOrder("u1"))
	second := createOrder(t, store, newOrder("u1"))
	createOrder(t, store, newOrder("u2"))

	list, err := store.FindByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Nil(t, list[0].Items)
}

func TestOrderStore_UpdateStatus(t *testing.T) {
	store := NewOrderStore()
	created := createOrder(t, store, newOrder("u1"))

	updated, err := store.UpdateStatus(context.Background(), created.ID, domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, updated.Status)

	_, err = store.UpdateStatus(context.Background(), "missing", domain.StatusPreparing)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestMenuCatalog_FindByIDsSkipsUnknown(t *testing.T) {
	catalog := NewMenuCatalog(
		domain.MenuItem{ID: "m1", RestaurantID: "r1"},
		domain.MenuItem{ID: "m2", RestaurantID: "r1"},
	)
	items, err := catalog.FindByIDs(context.Background(), []string{"m1", "ghost", "m1"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m1", items[0].ID)

	_, err = NewRestaurantDirectory().FindByID(context.Background(), "r1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestIdempotencyStore_SaveConflictAndExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewIdempotencyStore()
	store.WithClock(func() time.Time { return now })
	ctx := context.Background()

	record := ports.IdempotencyRecord{
		Key: "k1", UserID: "u1", RequestHash: "h1", OrderID: "o1",
		ExpiresAt: now.Add(time.Hour),
	}
	_, err := store.Save(ctx, record)
	require.NoError(t, err)

	same, err := store.Save(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "o1", same.OrderID)

	other := record
	other.RequestHash = "h2"
	_, err = store.Save(ctx, other)
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)

	now = now.Add(2 * time.Hour)
	got, err = store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)

	purged, err := store.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func claimOrder(store *OrderStore, userID, key string, fail error) (*domain.Order, *ports.IdempotencyRecord, error) {
	var created *domain.Order
	var held *ports.IdempotencyRecord
	err := store.Atomically(context.Background(), func(ctx context.Context, w ports.OrderWriter) error {
		order := newOrder(userID)
		header, err := w.Create(ctx, order)
		if err != nil {
			return err
		}
		held, err = w.ClaimIdempotencyKey(ctx, ports.IdempotencyRecord{
			Key: key, UserID: userID, RequestHash: "h1", OrderID: header.ID,
			ExpiresAt: time.Now().Add(time.Hour),
		})
		if err != nil {
			return err
		}
		if header.Items, err = w.CreateItems(ctx, header.ID, order.Items); err != nil {
			return err
		}
		created = header
		return fail
	})
	return created, held, err
}

func TestOrderStore_ClaimIdempotencyKeyCommitsWithOrder(t *testing.T) {
	keys := NewIdempotencyStore()
	store := NewOrderStore()
	store.WithIdempotencyStore(keys)
	ctx := context.Background()

	_, _, err := claimOrder(store, "u1", "k1", errors.New("boom"))
	require.Error(t, err)
	got, err := keys.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got, "a rolled back unit of work must not keep its key")

	first, _, err := claimOrder(store, "u1", "k1", nil)
	require.NoError(t, err)
	got, err = keys.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.OrderID)

	_, held, err := claimOrder(store, "u1", "k1", nil)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
	require.NotNil(t, held)
	assert.Equal(t, first.ID, held.OrderID)

	list, err := store.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSeedDemoCatalog(t *testing.T) {
	restaurants := NewRestaurantDirectory()
	menu := NewMenuCatalog()
	SeedDemoCatalog(restaurants, menu)

	spiceRoute, err := restaurants.FindByID(context.Background(), "7d3b2c4e-1f0a-4c6b-9e2d-3a5f8b1c0d01")
	require.NoError(t, err)
	assert.True(t, spiceRoute.IsOpen)

	items, err := menu.FindByIDs(context.Background(), []string{
		"5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a01",
		"5a1e9f20-8c3d-4b7a-a6e1-0f2d4c6b8a06",
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		_, err := restaurants.FindByID(context.Background(), item.RestaurantID)
		assert.NoError(t, err, "menu item %s points at an unknown restaurant", item.ID)
	}
}
