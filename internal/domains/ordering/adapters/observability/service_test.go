package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/memory"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/domain"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
)

func newDecorated(t *testing.T) (ports.Service, *sdkmetric.ManualReader, *bytes.Buffer) {
	t.Helper()
	restaurants := memory.NewRestaurantDirectory(domain.Restaurant{
		ID: "r1", IsOpen: true, MinimumOrder: decimal.RequireFromString("15"), DeliveryFee: decimal.RequireFromString("2.99"),
	})
	menu := memory.NewMenuCatalog(domain.MenuItem{
		ID: "m1", RestaurantID: "r1", Price: decimal.RequireFromString("10"), IsAvailable: true,
	})
	core := application.NewService(restaurants, menu, memory.NewOrderStore())

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(logs, nil))

	return New(core, WithLogger(logger), WithMeter(provider.Meter("test"))), reader, logs
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func placeInput(qty int) ports.PlaceOrderInput {
	return ports.PlaceOrderInput{
		UserID: "u1",
		Request: domain.OrderRequest{
			RestaurantID:    "r1",
			Items:           []domain.OrderLine{{MenuItemID: "m1", Quantity: qty}},
			DeliveryAddress: "1 Main St",
		},
	}
}

func TestService_RecordsCreatedAndRejected(t *testing.T) {
	svc, reader, logs := newDecorated(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, placeInput(2))
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, placeInput(1))
	require.ErrorIs(t, err, application.ErrMinimumOrderNotMet)

	assert.Equal(t, int64(1), counterValue(t, reader, "ordering.orders_created"))
	assert.Equal(t, int64(1), counterValue(t, reader, "ordering.orders_rejected"))
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"reason":"minimum_order_not_met"`)
	assert.NotContains(t, logs.String(), `"level":"ERROR"`)
}

func TestService_CountsStatusUpdates(t *testing.T) {
	svc, reader, _ := newDecorated(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, placeInput(2))
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(ctx, order.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, int64(1), counterValue(t, reader, "ordering.status_updates"))
}
