package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	orderworkflows "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/workflows/orders"
)

func TestTemporalStatusWorkflows_ReturnsWorkflowResult(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
		return opts.TaskQueue == orderworkflows.StatusUpdateTaskQueue &&
			strings.HasPrefix(opts.ID, "order-status-o1-") &&
			opts.WorkflowIDConflictPolicy == enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING
	}), orderworkflows.StatusUpdateWorkflowName, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		order := args.Get(1).(*domain.Order)
		order.ID = "o1"
		order.Status = domain.StatusDelivered
	}).Return(nil)

	order, err := NewTemporalStatusWorkflows(c).UpdateStatus(context.Background(), "o1", domain.StatusDelivered)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, order.Status)
	c.AssertExpectations(t)
}

func TestTemporalStatusWorkflows_MapsApplicationErrors(t *testing.T) {
	c := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	c.On("ExecuteWorkflow", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(run, nil)
	run.On("Get", mock.Anything, mock.Anything).
		Return(temporal.NewNonRetryableApplicationError("not found", application.Reason(application.ErrNotFound), nil))

	_, err := NewTemporalStatusWorkflows(c).UpdateStatus(context.Background(), "missing", domain.StatusDelivered)
	require.ErrorIs(t, err, application.ErrNotFound)
}

func TestMapWorkflowError_LeavesUnknownErrors(t *testing.T) {
	boom := errors.New("worker unavailable")
	require.Same(t, boom, mapWorkflowError(boom))

	typed := temporal.NewApplicationError("odd", "something_else")
	require.Equal(t, typed, mapWorkflowError(typed))
}
