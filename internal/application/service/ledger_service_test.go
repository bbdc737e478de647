package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

func TestLedgerCursorPages(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 10, 15, 8, 0, 0, 0, storeZone)
	for i := 0; i < 5; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		_, err := f.ledger.CreateEntry(f.ctx, &CreateEntryInput{
			Direction:   enum.LedgerDirectionOut,
			Description: "Expense",
			Amount:      money.Cents(100 * (i + 1)),
			OccurredAt:  &at,
		})
		require.NoError(t, err)
	}

	first, err := f.ledger.ListEntries(f.ctx, &repository.LedgerFilterParams{
		Page: repository.LedgerPage{Limit: 2},
	})
	require.NoError(t, err)
	require.Len(t, first.Items, 2)
	assert.Equal(t, money.Cents(500), first.Items[0].Amount)
	assert.True(t, first.Pagination.HasNext)
	assert.False(t, first.Pagination.HasPrev)

	second, err := f.ledger.ListEntries(f.ctx, &repository.LedgerFilterParams{
		Page: repository.LedgerPage{Limit: 2, Cursor: parseCursor(t, *first.Pagination.NextCursor)},
	})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, money.Cents(300), second.Items[0].Amount)
	assert.True(t, second.Pagination.HasNext)
	assert.True(t, second.Pagination.HasPrev)

	back, err := f.ledger.ListEntries(f.ctx, &repository.LedgerFilterParams{
		Page: repository.LedgerPage{Limit: 2, Cursor: parseCursor(t, *second.Pagination.PrevCursor), Backwards: true},
	})
	require.NoError(t, err)
	require.Len(t, back.Items, 2)
	assert.Equal(t, first.Items[0].ID, back.Items[0].ID)
	assert.False(t, back.Pagination.HasPrev)
	assert.True(t, back.Pagination.HasNext)
}

func parseCursor(t *testing.T, token string) *repository.LedgerCursor {
	t.Helper()
	c, err := repository.ParseLedgerCursor(token)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestLedgerCursorBreaksTimestampTiesByID(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2026, 10, 15, 8, 0, 0, 0, storeZone)
	for i := 0; i < 4; i++ {
		_, err := f.ledger.CreateEntry(f.ctx, &CreateEntryInput{
			Direction:   enum.LedgerDirectionIn,
			Description: "Sangria",
			Amount:      money.Cents(100 * (i + 1)),
			OccurredAt:  &at,
		})
		require.NoError(t, err)
	}

	seen := make(map[uuid.UUID]bool)
	page := repository.LedgerPage{Limit: 1}
	for {
		res, err := f.ledger.ListEntries(f.ctx, &repository.LedgerFilterParams{Page: page})
		require.NoError(t, err)
		for _, e := range res.Items {
			assert.False(t, seen[e.ID], "entry %s listed twice", e.ID)
			seen[e.ID] = true
		}
		if !res.Pagination.HasNext {
			break
		}
		page.Cursor = parseCursor(t, *res.Pagination.NextCursor)
	}
	assert.Len(t, seen, 4)
}

func TestLedgerSummaryAndManualEntries(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja", "4.90", 10)
	f.sell(t, enum.PaymentMethodCash, OrderItemInput{ProductID: p.ID, Quantity: 2})

	expense, err := f.ledger.CreateEntry(f.ctx, &CreateEntryInput{
		Direction:   enum.LedgerDirectionOut,
		Description: "Conta de luz",
		Amount:      money.MustParse("3.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, LedgerCategoryManual, expense.Category)

	summary, err := f.ledger.Summary(f.ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("9.80"), summary.In)
	assert.Equal(t, money.MustParse("3.00"), summary.Out)
	assert.Equal(t, money.MustParse("6.80"), summary.Balance)
	assert.Equal(t, int64(2), summary.Count)

	require.NoError(t, f.ledger.DeleteEntry(f.ctx, expense.ID))
	assert.True(t, apperror.IsKind(f.ledger.DeleteEntry(f.ctx, uuid.New()), apperror.KindNotFound))

	from := time.Date(2026, 10, 16, 0, 0, 0, 0, storeZone)
	to := time.Date(2026, 10, 15, 0, 0, 0, 0, storeZone)
	_, err = f.ledger.Summary(f.ctx, &from, &to)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.ledger.CreateEntry(f.ctx, &CreateEntryInput{Direction: "sideways"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
