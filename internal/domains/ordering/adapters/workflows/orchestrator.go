package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
	orderactivities "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.StatusOrchestrator = (*TemporalStatusWorkflows)(nil)
	_ ports.StatusOrchestrator = (*InlineStatusWorkflows)(nil)
)

// TemporalStatusWorkflows runs order status updates as Temporal workflows.
type TemporalStatusWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalStatusWorkflows(c client.Client) *TemporalStatusWorkflows {
	return &TemporalStatusWorkflows{client: c, taskQueue: orderworkflows.StatusUpdateTaskQueue}
}

// UpdateStatus starts the status workflow and waits for its result.
func (o *TemporalStatusWorkflows) UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal status workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	// A retried request within the same trace joins the running workflow.
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("order-status-%s-%s", strings.TrimSpace(orderID), traceComponent),
		TaskQueue:                o.taskQueue,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.StatusUpdateWorkflowName,
		orderactivities.StatusUpdateInput{OrderID: orderID, Status: status, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &order, nil
}

// mapWorkflowError restores the application error kind carried in an application error's type.
func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		if kind := application.KindForReason(appErr.Type()); kind != nil {
			return fmt.Errorf("%w: %s", kind, appErr.Message())
		}
	}
	return err
}

// InlineStatusWorkflows applies status updates directly, for tests or when Temporal is unavailable.
type InlineStatusWorkflows struct {
	service ports.Service
}

func NewInlineStatusWorkflows(service ports.Service) *InlineStatusWorkflows {
	return &InlineStatusWorkflows{service: service}
}

func (o *InlineStatusWorkflows) UpdateStatus(ctx context.Context, orderID string, status domain.Status) (*domain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline status workflows not configured")
	}
	return o.service.UpdateOrderStatus(ctx, orderID, status)
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
