package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sangkips/bebidas-pos/internal/application/service"
	"github.com/sangkips/bebidas-pos/internal/config"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/memory"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/handler"
	"github.com/sangkips/bebidas-pos/internal/presentation/http/middleware"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/printer"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testApp struct {
	router   *gin.Engine
	products repository.ProductRepository
	ledger   repository.LedgerRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zaptest.NewLogger(t)
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	orders := memory.NewOrderRepository(store)
	customers := memory.NewCustomerRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	ledger := memory.NewLedgerRepository(store)
	sessions := memory.NewCashSessionRepository(store)
	invoices := memory.NewInvoiceRepository(store)
	fiado := memory.NewFiadoRepository(store)
	reports := memory.NewReportRepository(store)
	settingsRepo := memory.NewSettingsRepository(store)

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry, "bebidas")
	rt := service.Runtime{Log: log, Metrics: metrics}

	nullPrinter, err := printer.New(printer.Options{})
	require.NoError(t, err)

	settings := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(reports, sessions, rt)
	printerService := service.NewPrinterService(nullPrinter, orders, settings, printer.TypeNone, printer.Width58mm, rt)

	h := &Handlers{
		Health:      handler.NewHealthHandler(config.StorageMemory, nil),
		Product:     handler.NewProductHandler(service.NewProductService(products)),
		Order:       handler.NewOrderHandler(service.NewOrderService(store, orders, products, customers, ledger, fiado, rt), printerService, time.UTC),
		CashSession: handler.NewCashSessionHandler(service.NewCashSessionService(store, sessions, reports, rt)),
		Report:      handler.NewReportHandler(reportService),
		Fiado:       handler.NewFiadoHandler(service.NewFiadoService(store, fiado, orders, customers, ledger, rt), time.UTC),
		Customer:    handler.NewCustomerHandler(service.NewCustomerService(customers)),
		Supplier:    handler.NewSupplierHandler(service.NewSupplierService(suppliers)),
		Invoice:     handler.NewInvoiceHandler(service.NewInvoiceService(store, invoices, products, suppliers, ledger, rt), time.UTC),
		Ledger:      handler.NewLedgerHandler(service.NewLedgerService(ledger, rt), time.UTC),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(reportService, reports, products, fiado, ledger, sessions, rt)),
		Settings:    handler.NewSettingsHandler(settings),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	router := Setup(h, &Deps{
		Cfg:             &config.Config{},
		Log:             log,
		Metrics:         metrics,
		Gatherer:        registry,
		IdempotencyRepo: memory.NewIdempotencyRepository(store),
	})
	return &testApp{router: router, products: products, ledger: ledger}
}

func (a *testApp) product(t *testing.T, code string, price, qty int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:          "Cerveja " + code,
		Slug:          strings.ToLower(code),
		Code:          code,
		SalePrice:     money.Cents(price),
		Quantity:      int(qty),
		QuantityAlert: 1,
	}
	require.NoError(t, a.products.Create(context.Background(), p))
	return p
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func orderBody(productID string, qty int, method string) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":  "Balcão",
		"payment_method": method,
		"items":          []map[string]interface{}{{"product_id": productID, "quantity": qty}},
	}
}

func TestPlaceOrderScenario(t *testing.T) {
	app := newTestApp(t)
	p := app.product(t, "LATA", 490, 5)

	w, env := app.do(t, http.MethodPost, "/api/v1/orders", orderBody(p.ID.String(), 3, "dinheiro"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Success)

	var placed struct {
		OrderNumber string  `json:"order_number"`
		Total       float64 `json:"total"`
		Status      string  `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "VENDA00001", placed.OrderNumber)
	assert.Equal(t, 14.70, placed.Total)
	assert.Equal(t, "paid", placed.Status)
	assert.Contains(t, string(env.Data), `"total":14.70`)

	w, env = app.do(t, http.MethodPost, "/api/v1/orders", orderBody(p.ID.String(), 3, "cash"))
	require.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	var detail struct {
		Kind    string `json:"kind"`
		Details struct {
			Requested int `json:"requested"`
			Available int `json:"available"`
		} `json:"details"`
	}
	require.NoError(t, json.Unmarshal(env.Errors, &detail))
	assert.Equal(t, "insufficient_stock", detail.Kind)
	assert.Equal(t, 3, detail.Details.Requested)
	assert.Equal(t, 2, detail.Details.Available)

	stored, err := app.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
}

func TestPlaceOrderRejectsBadInput(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodPost, "/api/v1/orders", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, env = app.do(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{"payment_method": "cheque"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var fields []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(env.Errors, &fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	assert.ElementsMatch(t, []string{"items", "payment_method", "customer"}, names)
}

func TestIdempotentOrderReplay(t *testing.T) {
	app := newTestApp(t)
	p := app.product(t, "LONG", 650, 10)
	body := orderBody(p.ID.String(), 2, "pix")

	first, env1 := app.do(t, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "till-1-0001", middleware.ClientIDHeader, "till-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second, env2 := app.do(t, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "till-1-0001", middleware.ClientIDHeader, "till-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, string(env1.Data), string(env2.Data))

	stored, err := app.products.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, stored.Quantity)

	other, _ := app.do(t, http.MethodPost, "/api/v1/orders", orderBody(p.ID.String(), 1, "pix"), middleware.IdempotencyKeyHeader, "till-1-0001", middleware.ClientIDHeader, "till-1")
	assert.Equal(t, http.StatusUnprocessableEntity, other.Code)

	// another till may reuse the same key
	third, _ := app.do(t, http.MethodPost, "/api/v1/orders", body, middleware.IdempotencyKeyHeader, "till-1-0001", middleware.ClientIDHeader, "till-2")
	assert.Equal(t, http.StatusCreated, third.Code)
	assert.Empty(t, third.Header().Get("X-Idempotency-Replayed"))
}

func TestCashSessionEndpoints(t *testing.T) {
	app := newTestApp(t)

	w, _ := app.do(t, http.MethodGet, "/api/v1/cash-sessions/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = app.do(t, http.MethodPost, "/api/v1/cash-sessions/open", map[string]interface{}{"opening_float": "50.00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := app.do(t, http.MethodPost, "/api/v1/cash-sessions/open", map[string]interface{}{"opening_float": 10})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)

	p := app.product(t, "AGUA", 250, 10)
	w, _ = app.do(t, http.MethodPost, "/api/v1/orders", orderBody(p.ID.String(), 2, "card"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = app.do(t, http.MethodPost, "/api/v1/cash-sessions/close", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var closed struct {
		Status           string  `json:"status"`
		AccumulatedSales float64 `json:"accumulated_sales"`
		FinalBalance     float64 `json:"final_balance"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &closed))
	assert.Equal(t, "closed", closed.Status)
	assert.Equal(t, 5.00, closed.AccumulatedSales)
	assert.Equal(t, 55.00, closed.FinalBalance)
}

func TestDailyReportEndpoint(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodGet, "/api/v1/reports/daily?date=15/10/2026", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, env.Success)

	w, env = app.do(t, http.MethodGet, "/api/v1/reports/daily?date=2020-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var report struct {
		Date         string  `json:"date"`
		Revenue      float64 `json:"revenue"`
		SessionState string  `json:"session_state"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, "2020-01-01", report.Date)
	assert.Zero(t, report.Revenue)
}

func TestFiadoSettleEndpoint(t *testing.T) {
	app := newTestApp(t)
	p := app.product(t, "LITRAO", 990, 10)

	w, env := app.do(t, http.MethodPost, "/api/v1/orders", orderBody(p.ID.String(), 2, "a_prazo"))
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "pending", placed.Status)

	w, _ = app.do(t, http.MethodPost, "/api/v1/fiado/"+placed.OrderID+"/settle", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = app.do(t, http.MethodPost, "/api/v1/fiado/"+placed.OrderID+"/settle", map[string]interface{}{"paid": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"paid":true`)

	w, env = app.do(t, http.MethodGet, "/api/v1/ledger/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"in":19.80`)

	w, _ = app.do(t, http.MethodPost, "/api/v1/fiado/not-a-uuid/settle", map[string]interface{}{"paid": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodGet, "/health", nil, middleware.RequestIDHeader, "req-42")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "req-42", env.Meta.RequestID)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))

	w, _ = app.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `bebidas_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestProductAndLedgerEndpoints(t *testing.T) {
	app := newTestApp(t)

	w, env := app.do(t, http.MethodPost, "/api/v1/products", map[string]interface{}{
		"name": "Gelo 5kg", "sale_price": "12.00", "cost_price": 6, "quantity": 1, "quantity_alert": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"slug":"gelo-5kg"`)

	w, env = app.do(t, http.MethodGet, "/api/v1/products/low-stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Gelo 5kg")

	w, _ = app.do(t, http.MethodPost, "/api/v1/ledger", map[string]interface{}{
		"direction": "out", "description": "Conta de luz", "category": "Utilities", "amount": 180.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = app.do(t, http.MethodGet, "/api/v1/ledger?type=out&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Conta de luz")

	w, _ = app.do(t, http.MethodGet, "/api/v1/ledger?type=sideways", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w, _ = app.do(t, http.MethodGet, "/api/v1/ledger?cursor=not-a-cursor", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	w, _ = app.do(t, http.MethodGet, "/api/v1/ledger?direction=up", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
