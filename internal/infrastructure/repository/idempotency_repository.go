package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, scope string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := conn(ctx, r.db).
		Where("key = ? AND scope = ?", key, scope).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Idempotency key")
	}
	return &ikey, nil
}

// Reserve inserts the pending key in one statement; the unique (key, scope)
// index decides between concurrent requests.
func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	ikey.ResponseCode = 0
	ikey.ResponseBody = ""
	result := conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "scope"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "request_hash", "response_code", "response_body", "created_at", "expires_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_keys.expires_at < ?", Vars: []interface{}{time.Now()}},
		}},
	}).Create(ikey)
	if result.Error != nil {
		return false, database.TranslateError(result.Error, "Idempotency key")
	}
	return result.RowsAffected > 0, nil
}

func (r *idempotencyRepository) Complete(ctx context.Context, key, scope string, code int, body string, expiresAt time.Time) error {
	err := conn(ctx, r.db).Model(&entity.IdempotencyKey{}).
		Where("key = ? AND scope = ?", key, scope).
		Updates(map[string]interface{}{"response_code": code, "response_body": body, "expires_at": expiresAt}).Error
	return database.TranslateError(err, "Idempotency key")
}

func (r *idempotencyRepository) Release(ctx context.Context, key, scope string) error {
	err := conn(ctx, r.db).
		Where("key = ? AND scope = ? AND response_code = 0", key, scope).
		Delete(&entity.IdempotencyKey{}).Error
	return database.TranslateError(err, "Idempotency key")
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	err := conn(ctx, r.db).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
	return database.TranslateError(err, "Idempotency key")
}
