package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperror.Kind
	}{
		{"not found", gorm.ErrRecordNotFound, apperror.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_order_number"}, apperror.KindConflict},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), apperror.KindConflict},
		{"undefined table", &pgconn.PgError{Code: "42P01", Message: `relation "orders" does not exist`}, apperror.KindSchemaMissing},
		{"check violation", &pgconn.PgError{Code: "23514", ConstraintName: "chk_products_quantity"}, apperror.KindValidation},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperror.KindPersistenceUnavailable},
		{"server shutting down", &pgconn.PgError{Code: "57P01"}, apperror.KindPersistenceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err, "Order")
			assert.True(t, apperror.IsKind(got, tt.kind), "got %v", got)
		})
	}
}

func TestTranslateErrorPassThrough(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "Order"))

	appErr := apperror.NewConflictError("taken")
	assert.Same(t, appErr, TranslateError(appErr, "Order"))

	plain := errors.New("boom")
	assert.Equal(t, plain, TranslateError(plain, "Order"))
}

func TestNotFoundMessageUsesResource(t *testing.T) {
	err := TranslateError(gorm.ErrRecordNotFound, "Product")
	assert.Equal(t, "Product not found", err.Error())
}

func TestIsSchemaMissing(t *testing.T) {
	assert.True(t, IsSchemaMissing(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, IsSchemaMissing(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsSchemaMissing(nil))
}
