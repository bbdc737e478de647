package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/printer"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *capturePrinter) IsConnected(context.Context) bool { return p.err == nil }
func (p *capturePrinter) Close() error                     { return nil }

func TestFormatReceipt(t *testing.T) {
	r := &entity.Receipt{
		Header:      entity.ReceiptHeader{StoreName: "Depósito Central", Phone: "11 4002-8922"},
		OrderNumber: "VENDA00042",
		Date:        "15/10/2026 10:00",
		Status:      "paid",
		Items: []entity.ReceiptItem{
			{Name: "Cerveja Lata 350ml", Quantity: 3, UnitPrice: 490, Total: 1470},
		},
		Total:  1470,
		Footer: "Volte sempre",
	}
	out := FormatReceipt(r, printer.Width58mm)

	assert.True(t, bytes.Contains(out, []byte("VENDA00042")))
	assert.True(t, bytes.Contains(out, []byte("14.70")))
	assert.True(t, bytes.Contains(out, []byte("@ 4.90")))
	assert.True(t, bytes.Contains(out, []byte("Volte sempre")))
	assert.True(t, bytes.HasSuffix(out, []byte{printer.GS, 'V', 0x01}))
}

func TestPrintOrderReceipt(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja Lata", "4.90", 10)
	res := f.sell(t, enum.PaymentMethodCash, OrderItemInput{ProductID: p.ID, Quantity: 3})
	_, err := f.settings.UpdateSettings(f.ctx, &UpdateSettingsInput{StoreName: "Adega do Zé", ReceiptFooter: "Até logo"})
	require.NoError(t, err)

	cp := &capturePrinter{}
	svc := NewPrinterService(cp, f.orderRepo, f.settings, printer.TypeNetwork, printer.Width80mm, Runtime{Location: storeZone})

	receipt, err := svc.PrintOrderReceipt(f.ctx, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Adega do Zé", receipt.Header.StoreName)
	assert.Equal(t, "Até logo", receipt.Footer)
	assert.Equal(t, res.Total, receipt.Total)
	assert.Equal(t, "paid", receipt.Status)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, 3, receipt.Items[0].Quantity)
	require.Len(t, cp.jobs, 1)

	_, err = svc.PrintOrderReceipt(f.ctx, uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	cp.err = errors.New("paper out")
	_, err = svc.PrintOrderReceipt(f.ctx, res.OrderID)
	assert.ErrorContains(t, err, "paper out")
	assert.False(t, svc.GetStatus(f.ctx).Connected)
}

func TestPrinterDisabledReturnsReceiptOnly(t *testing.T) {
	cp := &capturePrinter{}
	svc := NewPrinterService(cp, nil, nil, printer.TypeNone, 0, Runtime{})

	receipt, err := svc.TestPrint(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Items)
	assert.Empty(t, cp.jobs)

	status := svc.GetStatus(context.Background())
	assert.False(t, status.Configured)
	assert.Equal(t, printer.Width58mm, status.Width)
}
