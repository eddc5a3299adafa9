package ports

import (
	"context"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// PlaceOrderInput carries a request plus the optional client idempotency key.
type PlaceOrderInput struct {
	UserID         string
	Request        domain.OrderRequest
	IdempotencyKey string
}

// Service exposes ordering use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID, userID string) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error)
}
