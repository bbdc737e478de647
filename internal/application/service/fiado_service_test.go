package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

func TestMarkSettledByOrderIDWritesOneLedgerEntry(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Refrigerante 2L", "8.99", 10)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 2})

	receipt, err := f.fiado.MarkSettled(f.ctx, res.OrderID, true)
	require.NoError(t, err)
	assert.True(t, receipt.Paid)
	assert.NotNil(t, receipt.PaidAt)

	order, err := f.orders.GetOrder(f.ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPaid, order.Status)

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, res.Total, entries[0].Amount)
	assert.Equal(t, enum.LedgerCategoryFiado, entries[0].Category)
	assert.Equal(t, "Fiado settlement VENDA00001", entries[0].Description)
	require.NotNil(t, entries[0].FiadoReceiptID)
	assert.Equal(t, receipt.ID, *entries[0].FiadoReceiptID)

	// settling again changes nothing
	_, err = f.fiado.MarkSettled(f.ctx, receipt.ID, true)
	require.NoError(t, err)
	assert.Len(t, f.ledgerEntries(t), 1)
	assert.Len(t, f.events.ofType(event.FiadoSettled), 1)
}

func TestMarkSettledRevertRemovesEntry(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Carvão", "19.90", 10)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 1})

	_, err := f.fiado.MarkSettled(f.ctx, res.OrderID, true)
	require.NoError(t, err)

	receipt, err := f.fiado.MarkSettled(f.ctx, res.OrderID, false)
	require.NoError(t, err)
	assert.False(t, receipt.Paid)
	assert.Nil(t, receipt.PaidAt)
	assert.Empty(t, f.ledgerEntries(t))

	order, err := f.orders.GetOrder(f.ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Len(t, f.events.ofType(event.FiadoReverted), 1)
}

func TestMarkSettledStandaloneReceipt(t *testing.T) {
	f := newFixture(t)
	due := time.Date(2026, 10, 1, 0, 0, 0, 0, storeZone)
	receipt, err := f.fiado.CreateReceipt(f.ctx, &CreateFiadoInput{
		CustomerName: "Seu João",
		Description:  "Caixa de cerveja",
		Amount:       money.MustParse("59.90"),
		DueDate:      &due,
	})
	require.NoError(t, err)

	settled, err := f.fiado.MarkSettled(f.ctx, receipt.ID, true)
	require.NoError(t, err)
	assert.True(t, settled.Paid)

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].OrderID)
	assert.Equal(t, money.MustParse("59.90"), entries[0].Amount)
	assert.Equal(t, "Fiado settlement: Caixa de cerveja", entries[0].Description)
}

func TestMarkSettledRejectsCanceledOrder(t *testing.T) {
	f := newFixture(t)
	order := &entity.Order{
		OrderNumber:   entity.FormatOrderNumber(90),
		Sequence:      90,
		CustomerName:  "Balcão",
		PaymentMethod: enum.PaymentMethodFiado,
		Status:        enum.OrderStatusCanceled,
		Total:         500,
	}
	require.NoError(t, f.orderRepo.Create(f.ctx, order))
	receipt := &entity.FiadoReceipt{OrderID: &order.ID, CustomerName: "Balcão", Amount: 500}
	require.NoError(t, f.fiadoRepo.Create(f.ctx, receipt))

	_, err := f.fiado.MarkSettled(f.ctx, receipt.ID, true)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, f.ledgerEntries(t))

	_, err = f.fiado.MarkSettled(f.ctx, uuid.New(), true)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestFiadoReceiptLifecycle(t *testing.T) {
	f := newFixture(t)
	_, err := f.fiado.CreateReceipt(f.ctx, &CreateFiadoInput{Amount: 0})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	overdueAt := time.Date(2026, 10, 1, 0, 0, 0, 0, storeZone)
	laterAt := time.Date(2026, 11, 1, 0, 0, 0, 0, storeZone)
	overdue, err := f.fiado.CreateReceipt(f.ctx, &CreateFiadoInput{CustomerName: "A", Amount: 1000, DueDate: &overdueAt})
	require.NoError(t, err)
	_, err = f.fiado.CreateReceipt(f.ctx, &CreateFiadoInput{CustomerName: "B", Amount: 2000, DueDate: &laterAt})
	require.NoError(t, err)

	total, count, err := f.fiado.OpenTotal(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, money.Cents(3000), total)
	assert.Equal(t, int64(2), count)

	list, err := f.fiado.ListReceipts(f.ctx, &repository.FiadoFilterParams{}, true)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, overdue.ID, list.Items[0].ID)

	require.NoError(t, f.fiado.DeleteReceipt(f.ctx, overdue.ID))
	_, err = f.fiado.GetReceipt(f.ctx, overdue.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestDeleteReceiptOfOrderIsRejected(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Gelo", "12.00", 5)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 1})

	receipt, err := f.fiado.GetReceipt(f.ctx, res.OrderID)
	require.NoError(t, err)
	err = f.fiado.DeleteReceipt(f.ctx, receipt.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// staleFiadoReads serves a receipt as it was before a settlement committed
type staleFiadoReads struct {
	repository.FiadoRepository
	stale entity.FiadoReceipt
}

func (r *staleFiadoReads) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	if id == r.stale.ID {
		receipt := r.stale
		return &receipt, nil
	}
	return r.FiadoRepository.GetByID(ctx, id)
}

func TestMarkSettledRereadsReceiptUnderLock(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja Lata", "5.00", 10)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 2})

	receipt, err := f.fiadoRepo.GetByOrderID(f.ctx, res.OrderID)
	require.NoError(t, err)
	stale := *receipt

	_, err = f.fiado.MarkSettled(f.ctx, receipt.ID, true)
	require.NoError(t, err)

	lagging := NewFiadoService(f.store, &staleFiadoReads{FiadoRepository: f.fiadoRepo, stale: stale}, f.orderRepo, f.customerRepo, f.ledgerRepo, f.rt)
	settled, err := lagging.MarkSettled(f.ctx, receipt.ID, true)
	require.NoError(t, err)
	assert.True(t, settled.Paid)
	assert.Len(t, f.ledgerEntries(t), 1)
	assert.Len(t, f.events.ofType(event.FiadoSettled), 1)
}

func TestConcurrentSettlementsWriteOneEntry(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Refrigerante 2L", "8.00", 10)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 1})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.fiado.MarkSettled(f.ctx, res.OrderID, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, enum.LedgerCategoryFiado, entries[0].Category)
	order, err := f.orderRepo.GetByID(f.ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusPaid, order.Status)
}

func TestSettlingCanceledOrderReceiptIsNotFound(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Gelo 5kg", "12.00", 10)
	res := f.sell(t, enum.PaymentMethodFiado, OrderItemInput{ProductID: p.ID, Quantity: 1})
	receipt, err := f.fiadoRepo.GetByOrderID(f.ctx, res.OrderID)
	require.NoError(t, err)
	stale := *receipt

	_, err = f.orders.CancelOrder(f.ctx, res.OrderID)
	require.NoError(t, err)

	lagging := NewFiadoService(f.store, &staleFiadoReads{FiadoRepository: f.fiadoRepo, stale: stale}, f.orderRepo, f.customerRepo, f.ledgerRepo, f.rt)
	_, err = lagging.MarkSettled(f.ctx, receipt.ID, true)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Empty(t, f.ledgerEntries(t))
}

func TestLedgerRejectsSecondEntryForReceipt(t *testing.T) {
	f := newFixture(t)
	receiptID := uuid.New()
	entry := func() *entity.LedgerEntry {
		return &entity.LedgerEntry{
			Direction:      enum.LedgerDirectionIn,
			Description:    "Fiado settlement",
			Category:       enum.LedgerCategoryFiado,
			Amount:         500,
			PaymentMethod:  enum.PaymentMethodFiado,
			FiadoReceiptID: &receiptID,
		}
	}
	require.NoError(t, f.ledgerRepo.Create(f.ctx, entry()))
	assert.ErrorIs(t, f.ledgerRepo.Create(f.ctx, entry()), apperror.ErrConflict)
}
