package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
)

type idempotencyRepository struct {
	s *Store
}

// NewIdempotencyRepository creates an idempotency repository backed by s
func NewIdempotencyRepository(s *Store) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{s: s}
}

func idempotencyIndex(key, scope string) string {
	return scope + "\x00" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error) {
	var found *entity.IdempotencyKey
	r.s.read(func() {
		if k, ok := r.s.idempotency[idempotencyIndex(key, scope)]; ok {
			found = &k
		}
	})
	return found, nil
}

func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	reserved := false
	err := r.s.write(ctx, func() error {
		idx := idempotencyIndex(ikey.Key, ikey.Scope)
		if existing, ok := r.s.idempotency[idx]; ok && !existing.IsExpired() {
			return nil
		}
		if ikey.ID == uuid.Nil {
			ikey.ID = uuid.New()
		}
		ikey.ResponseCode = 0
		ikey.ResponseBody = ""
		r.s.stamp(&ikey.CreatedAt, nil)
		r.s.idempotency[idx] = *ikey
		reserved = true
		return nil
	})
	return reserved, err
}

func (r *idempotencyRepository) Complete(ctx context.Context, key, scope string, code int, body string, expiresAt time.Time) error {
	return r.s.write(ctx, func() error {
		idx := idempotencyIndex(key, scope)
		k, ok := r.s.idempotency[idx]
		if !ok {
			return nil
		}
		k.ResponseCode = code
		k.ResponseBody = body
		k.ExpiresAt = expiresAt
		r.s.idempotency[idx] = k
		return nil
	})
}

func (r *idempotencyRepository) Release(ctx context.Context, key, scope string) error {
	return r.s.write(ctx, func() error {
		idx := idempotencyIndex(key, scope)
		if k, ok := r.s.idempotency[idx]; ok && k.IsPending() {
			delete(r.s.idempotency, idx)
		}
		return nil
	})
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.s.write(ctx, func() error {
		now := time.Now()
		for idx, k := range r.s.idempotency {
			if now.After(k.ExpiresAt) {
				delete(r.s.idempotency, idx)
			}
		}
		return nil
	})
}
