package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

func TestReceiveInvoiceAddsStockAndBooksPurchase(t *testing.T) {
	f := newFixture(t)
	beer := f.product(t, "Cerveja Lata", "4.90", 2)
	water := f.product(t, "Água Mineral", "2.50", 0)
	supplier, err := f.suppliers.CreateSupplier(f.ctx, &CreateSupplierInput{Name: "Distribuidora Sul"})
	require.NoError(t, err)
	assert.Equal(t, enum.SupplierTypeDistributor, supplier.Type)

	invoice, err := f.invoices.CreateInvoice(f.ctx, &CreateInvoiceInput{
		SupplierID: &supplier.ID,
		Items: []InvoiceItemInput{
			{ProductID: beer.ID, Quantity: 24, UnitCost: money.MustParse("2.90")},
			{ProductID: water.ID, Quantity: 12, UnitCost: money.MustParse("0.90")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, money.MustParse("80.40"), invoice.Total)
	assert.Contains(t, invoice.InvoiceNo, "NF-")
	assert.Equal(t, 2, f.stock(t, beer.ID))

	received, err := f.invoices.ReceiveInvoice(f.ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedAt)
	assert.Equal(t, 26, f.stock(t, beer.ID))
	assert.Equal(t, 12, f.stock(t, water.ID))

	entries := f.ledgerEntries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, enum.LedgerDirectionOut, entries[0].Direction)
	assert.Equal(t, LedgerCategoryPurchases, entries[0].Category)
	assert.Equal(t, money.MustParse("80.40"), entries[0].Amount)
	assert.Len(t, f.events.ofType(event.InvoiceReceived), 1)

	_, err = f.invoices.ReceiveInvoice(f.ctx, invoice.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.True(t, apperror.IsKind(f.invoices.DeleteInvoice(f.ctx, invoice.ID), apperror.KindValidation))
	assert.Equal(t, 26, f.stock(t, beer.ID))
}

func TestCreateInvoiceValidation(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Gelo", "12.00", 0)

	_, err := f.invoices.CreateInvoice(f.ctx, &CreateInvoiceInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	first, err := f.invoices.CreateInvoice(f.ctx, &CreateInvoiceInput{
		InvoiceNo: "NF-123",
		Items:     []InvoiceItemInput{{ProductID: p.ID, Quantity: 1, UnitCost: 600}},
	})
	require.NoError(t, err)

	_, err = f.invoices.CreateInvoice(f.ctx, &CreateInvoiceInput{
		InvoiceNo: "NF-123",
		Items:     []InvoiceItemInput{{ProductID: p.ID, Quantity: 1, UnitCost: 600}},
	})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	require.NoError(t, f.invoices.DeleteInvoice(f.ctx, first.ID))
	_, err = f.invoices.GetInvoice(f.ctx, first.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
