package ports

import (
	"context"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
)

// StatusOrchestrator drives order status updates, durably when a workflow engine is available.
type StatusOrchestrator interface {
	UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error)
}
