package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/events/kafka"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/identity/jwtauth"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/memory"
	orderobs "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/observability"
	orderpostgres "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/persistence/postgres"
	orderworkflows "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/workflows"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/application"
	"github.com/Varun-2538/FoodieExpress/internal/domains/ordering/ports"
	"github.com/Varun-2538/FoodieExpress/internal/platform/migrations"
	platformobservability "github.com/Varun-2538/FoodieExpress/internal/platform/observability"
	platformpostgres "github.com/Varun-2538/FoodieExpress/internal/platform/postgres"
	platformtemporal "github.com/Varun-2538/FoodieExpress/internal/platform/temporal"
)

const serviceName = "foodieexpress-api"

// Run boots the FoodieExpress HTTP API with observability, stores, events and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("SUPABASE_JWT_SECRET is required")
	}

	instruments, shutdown, err := platformobservability.Init(ctx, platformobservability.SettingsFromEnv(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, cleanupStores, err := BuildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupStores()

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	core := application.NewService(
		stores.Restaurants, stores.Menu, stores.Orders,
		application.WithIdempotencyStore(stores.Idempotency, cfg.IdempotencyTTL),
		application.WithEventPublisher(publisher),
		application.WithLogger(logger),
	)
	orderService := orderobs.New(
		core,
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.ordering.application")),
		orderobs.WithMeter(instruments.Meter("internal.ordering.application")),
	)

	var statuses ports.StatusOrchestrator = orderworkflows.NewInlineStatusWorkflows(orderService)
	if cfg.TemporalDisabled {
		logger.Warn("Temporal disabled via TEMPORAL_DISABLED, running status updates inline")
	} else if temporalClient, err := platformtemporal.Dial(cfg.TemporalAddress, cfg.TemporalNamespace, instruments, "temporal-client"); err != nil {
		logger.Warn("Temporal workflows unavailable, running status updates inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		statuses = orderworkflows.NewTemporalStatusWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	identity, err := jwtauth.NewProvider(cfg.JWTSecret,
		jwtauth.WithIssuer(cfg.JWTIssuer),
		jwtauth.WithAudience(cfg.JWTAudience),
	)
	if err != nil {
		return fmt.Errorf("failed to configure identity provider: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := NewRouter(RouterDeps{
		ServiceName:    serviceName,
		FrontendURL:    cfg.FrontendURL,
		ProblemBaseURI: cfg.ProblemBaseURI,
		Logger:         logger,
		Orders:         orderService,
		Statuses:       statuses,
		Identity:       identity,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("FoodieExpress API listening", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("FoodieExpress API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		logger.Info("shutting down FoodieExpress API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Stores groups the order builder's persistence collaborators.
type Stores struct {
	Restaurants ports.RestaurantDirectory
	Menu        ports.MenuCatalog
	Orders      ports.OrderStore
	Idempotency ports.IdempotencyStore
}

// BuildStores connects to Postgres and applies migrations. Without POSTGRES_DSN it falls back to memory
// stores, seeded with the demo catalog when SEED_DEMO_CATALOG is set. A configured but unreachable
// database is an error.
func BuildStores(ctx context.Context, cfg Config, logger *slog.Logger) (Stores, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory stores")
		restaurants := memory.NewRestaurantDirectory()
		menu := memory.NewMenuCatalog()
		if cfg.SeedDemoCatalog {
			memory.SeedDemoCatalog(restaurants, menu)
			logger.Info("demo catalog loaded")
		}
		keys := memory.NewIdempotencyStore()
		orders := memory.NewOrderStore()
		orders.WithIdempotencyStore(keys)
		return Stores{
			Restaurants: restaurants,
			Menu:        menu,
			Orders:      orders,
			Idempotency: keys,
		}, func() {}, nil
	}

	db, cleanup, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithLogger(logger))
	if err != nil {
		return Stores{}, func() {}, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return Stores{}, func() {}, fmt.Errorf("failed to migrate postgres schema: %w", err)
	}
	logger.Info("order stores configured with postgres")
	return Stores{
		Restaurants: orderpostgres.NewRestaurantDirectory(db),
		Menu:        orderpostgres.NewMenuCatalog(db),
		Orders:      orderpostgres.NewOrderStore(db),
		Idempotency: orderpostgres.NewIdempotencyStore(db),
	}, cleanup, nil
}

func buildPublisher(cfg Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, order events are not published")
		return ports.NoopEventPublisher, func() {}
	}
	publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	logger.Info("publishing order events to kafka", slog.String("topic", cfg.KafkaOrderTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka publisher", slog.String("error", err.Error()))
		}
	}
}
