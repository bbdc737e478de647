package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/memory"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

var storeZone = time.FixedZone("BRT", -3*60*60)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type publishedEvent struct {
	Type    string
	Key     string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Key: key, Payload: payload})
}

func (p *recordingPublisher) ofType(eventType string) []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []publishedEvent
	for _, e := range p.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// mapCache keeps reports as JSON under a per-date generation, like the Redis cache
type mapCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	generations map[string]int64
	gets        int
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte), generations: make(map[string]int64)}
}

func cacheKey(date string, generation int64) string {
	return fmt.Sprintf("%s:%d", date, generation)
}

func (c *mapCache) Get(_ context.Context, date string, out any) (bool, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	gen := c.generations[date]
	b, ok := c.entries[cacheKey(date, gen)]
	if !ok {
		return false, gen, nil
	}
	return true, gen, json.Unmarshal(b, out)
}

func (c *mapCache) Set(_ context.Context, date string, generation int64, report any) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(date, generation)] = b
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, dates ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range dates {
		c.generations[d]++
		c.invalidated = append(c.invalidated, d)
	}
	return nil
}

func (c *mapCache) has(date string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[cacheKey(date, c.generations[date])]
	return ok
}

type fixture struct {
	ctx    context.Context
	clock  *clock
	events *recordingPublisher
	cache  *mapCache
	rt     Runtime

	store        *memory.Store
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	ledgerRepo   repository.LedgerRepository
	fiadoRepo    repository.FiadoRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository

	orders    *OrderService
	sessions  *CashSessionService
	reports   *ReportService
	fiado     *FiadoService
	ledger    *LedgerService
	invoices  *InvoiceService
	products  *ProductService
	customers *CustomerService
	suppliers *SupplierService
	settings  *SettingsService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		ctx:          context.Background(),
		clock:        &clock{now: time.Date(2026, 10, 15, 10, 0, 0, 0, storeZone)},
		events:       &recordingPublisher{},
		cache:        newMapCache(),
		store:        store,
		productRepo:  memory.NewProductRepository(store),
		orderRepo:    memory.NewOrderRepository(store),
		ledgerRepo:   memory.NewLedgerRepository(store),
		fiadoRepo:    memory.NewFiadoRepository(store),
		customerRepo: memory.NewCustomerRepository(store),
		supplierRepo: memory.NewSupplierRepository(store),
	}
	rt := Runtime{
		Log:      zaptest.NewLogger(t),
		Events:   f.events,
		Reports:  f.cache,
		Location: storeZone,
		Now:      f.clock.Now,
	}
	f.rt = rt
	sessionRepo := memory.NewCashSessionRepository(store)
	reportRepo := memory.NewReportRepository(store)

	f.orders = NewOrderService(store, f.orderRepo, f.productRepo, f.customerRepo, f.ledgerRepo, f.fiadoRepo, rt)
	f.sessions = NewCashSessionService(store, sessionRepo, reportRepo, rt)
	f.reports = NewReportService(reportRepo, sessionRepo, rt)
	f.fiado = NewFiadoService(store, f.fiadoRepo, f.orderRepo, f.customerRepo, f.ledgerRepo, rt)
	f.ledger = NewLedgerService(f.ledgerRepo, rt)
	f.invoices = NewInvoiceService(store, memory.NewInvoiceRepository(store), f.productRepo, f.supplierRepo, f.ledgerRepo, rt)
	f.products = NewProductService(f.productRepo)
	f.customers = NewCustomerService(f.customerRepo)
	f.suppliers = NewSupplierService(f.supplierRepo)
	f.settings = NewSettingsService(memory.NewSettingsRepository(store))
	f.dashboard = NewDashboardService(f.reports, reportRepo, f.productRepo, f.fiadoRepo, f.ledgerRepo, sessionRepo, rt)
	return f
}

func (f *fixture) product(t *testing.T, name, price string, qty int) *entity.Product {
	t.Helper()
	p, err := f.products.CreateProduct(f.ctx, &CreateProductInput{
		Name:          name,
		SalePrice:     money.MustParse(price),
		Quantity:      qty,
		QuantityAlert: 1,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.productRepo.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *fixture) sell(t *testing.T, method enum.PaymentMethod, items ...OrderItemInput) *PlaceOrderResult {
	t.Helper()
	res, err := f.orders.PlaceOrder(f.ctx, &PlaceOrderInput{
		CustomerName:  "Balcão",
		PaymentMethod: method,
		Items:         items,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) ledgerEntries(t *testing.T) []entity.LedgerEntry {
	t.Helper()
	entries, err := f.ledgerRepo.List(f.ctx, &repository.LedgerFilterParams{})
	require.NoError(t, err)
	return entries
}
