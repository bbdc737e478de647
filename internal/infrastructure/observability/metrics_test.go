package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg, "test")

	m.OrderPlaced("cash")
	m.OrderPlaced("cash")
	m.StockRejected()
	m.ConflictRetried("place_order")
	m.ObserveHTTP("POST", "/api/v1/orders", 201, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersPlaced.WithLabelValues("cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockRejected))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.conflictRetry.WithLabelValues("place_order")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/orders", "201")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrderPlaced("pix")
		m.StockRejected()
		m.SessionClosed()
		m.FiadoSettled(true)
		m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	})
}

func TestSpanHelpers(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	assert.NotNil(t, ctx)
	assert.NotPanics(t, func() { EndSpan(span, errors.New("boom")) })
}
