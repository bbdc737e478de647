package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(t *testing.T, s *Store, code string, qty int) *entity.Product {
	t.Helper()
	p := &entity.Product{Name: code, Slug: code, Code: code, Quantity: qty, SalePrice: money.MustParse("4.90")}
	require.NoError(t, NewProductRepository(s).Create(context.Background(), p))
	return p
}

func TestTransactionRollsBackEveryTable(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	products := NewProductRepository(s)
	ledger := NewLedgerRepository(s)
	p := newProduct(t, s, "CERV", 5)

	boom := errors.New("boom")
	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		ok, err := products.AtomicDecrementQuantity(ctx, p.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)
		require.NoError(t, ledger.Create(ctx, &entity.LedgerEntry{
			Direction: enum.LedgerDirectionIn, Description: "x", Category: enum.LedgerCategorySales, Amount: 1470,
		}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)

	summary, err := ledger.Summary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Count)
}

func TestConditionalDecrement(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	products := NewProductRepository(s)
	p := newProduct(t, s, "AGUA", 2)

	ok, err := products.AtomicDecrementQuantity(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = products.AtomicDecrementQuantity(ctx, p.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, 0, got.Quantity)
}

func TestStockAmountsMustBePositive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	products := NewProductRepository(s)
	p := newProduct(t, s, "GELO", 4)
	other := newProduct(t, s, "CARVAO", 1)

	for _, amount := range []int{0, -3} {
		ok, err := products.AtomicDecrementQuantity(ctx, p.ID, amount)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		assert.False(t, ok)
	}

	err := products.AtomicIncrementBatch(ctx, map[uuid.UUID]int{other.ID: 2, p.ID: -1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	assert.ErrorIs(t, products.SetQuantity(ctx, p.ID, -1), apperror.ErrValidation)
	require.NoError(t, products.SetQuantity(ctx, p.ID, 9))

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, 9, got.Quantity)
	got, _ = products.GetByID(ctx, other.ID)
	assert.Equal(t, 1, got.Quantity)
}

func TestProductUpdateKeepsStock(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	products := NewProductRepository(s)
	p := newProduct(t, s, "AGUA", 6)

	stale := *p
	ok, err := products.AtomicDecrementQuantity(ctx, p.ID, 4)
	require.NoError(t, err)
	require.True(t, ok)

	stale.Name = "Água Mineral"
	require.NoError(t, products.Update(ctx, &stale))

	got, _ := products.GetByID(ctx, p.ID)
	assert.Equal(t, "Água Mineral", got.Name)
	assert.Equal(t, 2, got.Quantity)
}

func TestProductUniqueness(t *testing.T) {
	s := NewStore()
	newProduct(t, s, "GELO", 1)
	err := NewProductRepository(s).Create(context.Background(), &entity.Product{Name: "Gelo", Slug: "GELO", Code: "OTHER"})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestOneOpenSessionAtATime(t *testing.T) {
	ctx := context.Background()
	sessions := NewCashSessionRepository(NewStore())

	first := &entity.CashRegisterSession{Status: enum.SessionStatusOpen, BusinessDate: "2026-10-15", OpenedAt: time.Now()}
	require.NoError(t, sessions.Create(ctx, first))

	err := sessions.Create(ctx, &entity.CashRegisterSession{Status: enum.SessionStatusOpen, BusinessDate: "2026-10-15", OpenedAt: time.Now()})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	err = sessions.Create(ctx, &entity.CashRegisterSession{Status: enum.SessionStatusOpen, BusinessDate: "2026-10-16", OpenedAt: time.Now()})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	first.Status = enum.SessionStatusClosed
	require.NoError(t, sessions.Update(ctx, first))
	assert.NoError(t, sessions.Create(ctx, &entity.CashRegisterSession{Status: enum.SessionStatusOpen, BusinessDate: "2026-10-16", OpenedAt: time.Now()}))
}

func TestNextSequenceRequiresTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	orders := NewOrderRepository(s)

	_, err := orders.NextSequence(ctx)
	assert.Error(t, err)

	err = s.WithinTransaction(ctx, func(ctx context.Context) error {
		seq, err := orders.NextSequence(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, seq)
		return orders.Create(ctx, &entity.Order{
			OrderNumber: entity.FormatOrderNumber(seq), Sequence: seq, CustomerName: "Ana",
			PaymentMethod: enum.PaymentMethodCash, Status: enum.OrderStatusPaid,
		})
	})
	require.NoError(t, err)

	err = orders.Create(ctx, &entity.Order{OrderNumber: "VENDA00001", Sequence: 1})
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLedgerCursorWalksNewestFirst(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedgerRepository(NewStore())
	base := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.Create(ctx, &entity.LedgerEntry{
			ID: uuid.New(), Direction: enum.LedgerDirectionIn, Description: "sale",
			Category: enum.LedgerCategorySales, Amount: money.Cents(100 * (i + 1)),
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	page, err := ledger.List(ctx, &domainRepo.LedgerFilterParams{Page: domainRepo.LedgerPage{Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, money.Cents(500), page[0].Amount)
	assert.Equal(t, money.Cents(400), page[1].Amount)

	next := domainRepo.LedgerCursorOf(page[1])
	page, err = ledger.List(ctx, &domainRepo.LedgerFilterParams{Page: domainRepo.LedgerPage{Cursor: &next, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, money.Cents(300), page[0].Amount)

	prev := domainRepo.LedgerCursorOf(page[0])
	page, err = ledger.List(ctx, &domainRepo.LedgerFilterParams{Page: domainRepo.LedgerPage{Cursor: &prev, Backwards: true, Limit: 2}})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, money.Cents(500), page[0].Amount)
	assert.Equal(t, money.Cents(400), page[1].Amount)
}

func TestNewSeeded(t *testing.T) {
	s := NewSeeded()
	products, total, err := NewProductRepository(s).List(context.Background(), &domainRepo.ProductFilterParams{Search: "cerveja"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, products, 3)

	settings, err := NewSettingsRepository(s).Get(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, settings.StoreName)
}
