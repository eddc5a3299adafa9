package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

// UpdateOrderStatusActivityName applies a status change to a stored order.
const UpdateOrderStatusActivityName = "ordering.activities.UpdateOrderStatus"

// StatusUpdateInput is the activity and workflow payload for a status change.
type StatusUpdateInput struct {
	OrderID string
	Status  domain.Status
	TraceID string
}

// Activities groups activities that operate on the ordering bounded context.
type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// UpdateOrderStatus delegates to the order builder. Caller-caused rejections are returned as
// non-retryable application errors typed with the rejection reason.
func (a *Activities) UpdateOrderStatus(ctx context.Context, input StatusUpdateInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order status activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order status activity not initialized")
	}
	logger.Info("UpdateOrderStatus activity started", "orderId", input.OrderID, "status", string(input.Status))
	order, err := a.service.UpdateOrderStatus(ctx, input.OrderID, input.Status)
	if err != nil {
		logger.Error("UpdateOrderStatus activity failed", "orderId", input.OrderID, "error", err)
		if application.IsRejection(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), application.Reason(err), err)
		}
		return nil, err
	}
	logger.Info("UpdateOrderStatus activity completed", "orderId", order.ID, "status", string(order.Status))
	return order, nil
}
