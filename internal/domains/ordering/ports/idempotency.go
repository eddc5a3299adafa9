package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was used with a different payload or by another user.
var ErrIdempotencyConflict = errors.New("idempotency conflict")

// IdempotencyRecord ties a client-supplied key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	UserID      string
	RequestHash string
	OrderID     string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IdempotencyStore reads idempotency keys so order retries can be replayed safely. Keys are
// written by OrderWriter.ClaimIdempotencyKey together with the order they belong to.
type IdempotencyStore interface {
	// Get returns the stored, unexpired record for the key, or nil when unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// PurgeExpired deletes records whose expiry is at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
