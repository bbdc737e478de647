package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NewInsufficientStockError(StockShortage{ProductID: "p1", Name: "Cerveja", Requested: 3, Available: 2})
	wrapped := fmt.Errorf("place order: %w", err)

	assert.True(t, errors.Is(wrapped, ErrInsufficientStock))
	assert.False(t, errors.Is(wrapped, ErrConflict))
	assert.True(t, IsKind(wrapped, KindInsufficientStock))
	assert.Equal(t, http.StatusConflict, GetAppError(wrapped).Code)
	assert.Contains(t, err.Error(), "requested 3, available 2")
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, KindInternal, appErr.Kind)
}

func TestWrappedCauseIsKept(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := NewPersistenceUnavailableError("check DB_HOST", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewAppErrorKind(t *testing.T) {
	assert.Equal(t, KindValidation, NewAppError(http.StatusUnprocessableEntity, "x").Kind)
	assert.Equal(t, KindNotFound, NewNotFoundError("Order").Kind)
	assert.Equal(t, "Order not found", NewNotFoundError("Order").Message)
}
