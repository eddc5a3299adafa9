package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Pool bounds the database/sql connection pool behind GORM.
type Pool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultPool suits a single API replica talking to a managed Postgres.
var DefaultPool = Pool{MaxOpenConns: 20, MaxIdleConns: 5, ConnMaxLifetime: 30 * time.Minute}

type options struct {
	pool          Pool
	logger        *slog.Logger
	slowThreshold time.Duration
}

type Option func(*options)

func WithPool(pool Pool) Option {
	return func(o *options) { o.pool = pool }
}

// WithLogger routes GORM's query logging (slow queries and errors) through slog.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithSlowThreshold(threshold time.Duration) Option {
	return func(o *options) { o.slowThreshold = threshold }
}

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
// The returned cleanup closes the underlying pool.
func Connect(ctx context.Context, dsn string, opts ...Option) (*gorm.DB, func(), error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, func() {}, fmt.Errorf("postgres DSN is empty")
	}
	o := options{pool: DefaultPool, slowThreshold: 200 * time.Millisecond}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &gorm.Config{Logger: gormlogger.Discard}
	if o.logger != nil {
		cfg.Logger = gormlogger.NewSlogLogger(o.logger, gormlogger.Config{
			SlowThreshold:             o.slowThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		})
	}
	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, func() {}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, func() {}, err
	}
	if o.pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.pool.MaxOpenConns)
	}
	if o.pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.pool.MaxIdleConns)
	}
	if o.pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(o.pool.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, func() {}, err
	}
	return db, func() { _ = sqlDB.Close() }, nil
}
