package repository

import (
	"context"
	"time"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and client scope
	GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error)
	// Reserve stores ikey as pending. It reports false, storing nothing, when
	// an unexpired key with the same key and scope exists; an expired one is
	// taken over.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error)
	// Complete records the response of a reserved key
	Complete(ctx context.Context, key, scope string, code int, body string, expiresAt time.Time) error
	// Release deletes a key that is still pending
	Release(ctx context.Context, key, scope string) error
	// DeleteExpired removes expired idempotency keys (for cleanup)
	DeleteExpired(ctx context.Context) error
}
