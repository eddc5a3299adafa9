package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	orderactivities "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/activities/orders"
)

// RunOrderStatusSequence executes the activities that move an order to a new status.
func RunOrderStatusSequence(ctx workflow.Context, input orderactivities.StatusUpdateInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order status sequence started", "orderId", input.OrderID, "status", string(input.Status))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, options), orderactivities.UpdateOrderStatusActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order status sequence failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("order status sequence applied", "orderId", order.ID, "status", string(order.Status))
	return &order, nil
}
