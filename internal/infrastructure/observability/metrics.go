package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors of the API. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	ordersPlaced   *prometheus.CounterVec
	stockRejected  prometheus.Counter
	conflictRetry  *prometheus.CounterVec
	sessionsClosed prometheus.Counter
	fiadoSettled   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "placed_total",
			Help: "Orders placed by payment method.",
		}, []string{"payment_method"}),
		stockRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "insufficient_stock_total",
			Help: "Orders rejected for insufficient stock.",
		}),
		conflictRetry: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "storage", Name: "conflict_retries_total",
			Help: "Operations re-run after a uniqueness conflict.",
		}, []string{"operation"}),
		sessionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cash", Name: "sessions_closed_total",
			Help: "Cash register sessions closed.",
		}),
		fiadoSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "fiado", Name: "settlements_total",
			Help: "Fiado receipts marked paid or reverted.",
		}, []string{"paid"}),
	}
	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.ordersPlaced,
		m.stockRejected,
		m.conflictRetry,
		m.sessionsClosed,
		m.fiadoSettled,
	)
	return m
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) OrderPlaced(paymentMethod string) {
	if m == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(paymentMethod).Inc()
}

func (m *Metrics) StockRejected() {
	if m == nil {
		return
	}
	m.stockRejected.Inc()
}

func (m *Metrics) ConflictRetried(operation string) {
	if m == nil {
		return
	}
	m.conflictRetry.WithLabelValues(operation).Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessionsClosed.Inc()
}

func (m *Metrics) FiadoSettled(paid bool) {
	if m == nil {
		return
	}
	m.fiadoSettled.WithLabelValues(strconv.FormatBool(paid)).Inc()
}
