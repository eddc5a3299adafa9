package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/Varun-2538/FoodieExpress/internal/app/api"
	orderpostgres "github.com/Varun-2538/FoodieExpress/internal/domains/ordering/adapters/persistence/postgres"
	platformobservability "github.com/Varun-2538/FoodieExpress/internal/platform/observability"
	platformpostgres "github.com/Varun-2538/FoodieExpress/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := platformobservability.NewLogger(platformobservability.SettingsFromEnv("foodieexpress-idempotency-purger").LogLevel)

	db, cleanup, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.WithLogger(logger))
	if err != nil {
		log.Fatalf("POSTGRES_DSN not set or connection failed; cannot purge idempotency keys: %v", err)
	}
	defer cleanup()

	purged, err := orderpostgres.NewIdempotencyStore(db).PurgeExpired(ctx, time.Now())
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency key purge completed", slog.Int64("purged", purged))
}
