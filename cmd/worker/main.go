package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Varun-2538/FoodieExpress/internal/app/api"
	orderobs "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/observability"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	platformobservability "github.com/Varun-2538/FoodieExpress/internal/platform/observability"
	platformtemporal "github.com/Varun-2538/FoodieExpress/internal/platform/temporal"
	orderactivities "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Varun-2538/FoodieExpress/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "foodieexpress-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN is required: the worker must share the API's order store")
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.SettingsFromEnv(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := api.BuildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to configure order stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupStores()

	orderService := orderobs.New(
		application.NewService(stores.Restaurants, stores.Menu, stores.Orders, application.WithLogger(logger)),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.ordering.application")),
		orderobs.WithMeter(instruments.Meter("internal.ordering.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	temporalClient, err := platformtemporal.Dial(cfg.TemporalAddress, cfg.TemporalNamespace, instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.StatusUpdateTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.StatusUpdateWorkflow, workflow.RegisterOptions{Name: orderworkflows.StatusUpdateWorkflowName})
	w.RegisterActivityWithOptions(activities.UpdateOrderStatus, activity.RegisterOptions{Name: orderactivities.UpdateOrderStatusActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.StatusUpdateTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
