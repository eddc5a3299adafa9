package ports

import (
	"context"
	"errors"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// ErrNotFound is returned by lookups when the record does not exist.
var ErrNotFound = errors.New("record not found")

// RestaurantDirectory resolves restaurants by identifier.
type RestaurantDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
}

// MenuCatalog resolves menu items in one batch. Unknown ids are simply absent from the result.
type MenuCatalog interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.MenuItem, error)
}

// OrderWriter writes an order header and its items inside one unit of work.
type OrderWriter interface {
	// Create persists the header and assigns ID and timestamps.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// CreateItems persists line items for an already created order.
	CreateItems(ctx context.Context, orderID string, items []domain.OrderItem) ([]domain.OrderItem, error)
	// ClaimIdempotencyKey records the key for the order written in this unit of work. When an
	// unexpired record already holds the key, that record is returned with ErrIdempotencyConflict.
	ClaimIdempotencyKey(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}

// OrderStore persists orders and their items.
type OrderStore interface {
	// Atomically runs fn so that either every write inside it is visible or none is.
	Atomically(ctx context.Context, fn func(ctx context.Context, w OrderWriter) error) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
}
