package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

func TestRetryOnConflictRunsOnceMore(t *testing.T) {
	rt := Runtime{}.withDefaults()

	calls := 0
	err := rt.retryOnConflict(context.Background(), "test", func() error {
		calls++
		if calls == 1 {
			return apperror.NewConflictError("duplicate")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = rt.retryOnConflict(context.Background(), "test", func() error {
		calls++
		return apperror.NewConflictError("duplicate")
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, 2, calls)

	calls = 0
	boom := errors.New("boom")
	err = rt.retryOnConflict(context.Background(), "test", func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestBusinessDateUsesStoreZone(t *testing.T) {
	rt := Runtime{Location: storeZone}.withDefaults()
	// 01:30 UTC is still the previous evening in the store
	at := time.Date(2026, 10, 16, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-10-15", rt.businessDate(at))

	from, to, err := rt.dayBounds("2026-10-15")
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, to.Sub(from))
	assert.Equal(t, storeZone, from.Location())
}
