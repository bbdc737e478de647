package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRevenue(t *testing.T) {
	cases := []struct {
		cents int64
		want  ReportStatus
	}{
		{0, ReportStatusPoor},
		{1, ReportStatusWarning},
		{20000, ReportStatusWarning},
		{20001, ReportStatusGood},
		{50000, ReportStatusGood},
		{50001, ReportStatusExcellent},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyRevenue(tc.cents), "revenue %d", tc.cents)
	}
}

func TestParsePaymentMethod(t *testing.T) {
	cases := map[string]PaymentMethod{
		"cash":       PaymentMethodCash,
		"Dinheiro":   PaymentMethodCash,
		"cartão":     PaymentMethodCard,
		"Debit Card": PaymentMethodCard,
		"PIX":        PaymentMethodPix,
		"on-credit":  PaymentMethodFiado,
		"fiado":      PaymentMethodFiado,
	}
	for in, want := range cases {
		got, ok := ParsePaymentMethod(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParsePaymentMethod("cheque")
	assert.False(t, ok)

	assert.True(t, PaymentMethodPix.IsImmediate())
	assert.False(t, PaymentMethodFiado.IsImmediate())
}

func TestOrderStatusJSON(t *testing.T) {
	b, err := json.Marshal(OrderStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, `"paid"`, string(b))

	var s OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"canceled"`), &s))
	assert.Equal(t, OrderStatusCanceled, s)
	require.NoError(t, json.Unmarshal([]byte(`0`), &s))
	assert.Equal(t, OrderStatusPending, s)
	assert.Error(t, json.Unmarshal([]byte(`"lost"`), &s))

	parsed, ok := ParseOrderStatus("1")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusPaid, parsed)
}
