package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	orderactivities "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/activities/orders"
	"github.com/Varun-2538/FoodieExpress/internal/platform/temporal/sequences"
)

const (
	// StatusUpdateWorkflowName is the public identifier for registering the workflow.
	StatusUpdateWorkflowName = "ordering.workflows.StatusUpdate"
	// StatusUpdateTaskQueue is the queue consumed by the worker processing order workflows.
	StatusUpdateTaskQueue = "ORDER_STATUS"
)

// StatusUpdateWorkflow durably applies an order status change.
func StatusUpdateWorkflow(ctx workflow.Context, input orderactivities.StatusUpdateInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("StatusUpdateWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)
	order, err := sequences.RunOrderStatusSequence(ctx, input)
	if err != nil {
		logger.Error("StatusUpdateWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("StatusUpdateWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID, "status", string(order.Status))...)
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
