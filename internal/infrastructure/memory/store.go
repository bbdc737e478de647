package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

type txKey struct{}

// Store keeps every table in process memory. Transactions are serialized by
// txMu and roll back by restoring a snapshot taken when they began. Writes
// outside a transaction also take txMu so a rollback never discards them.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	products    map[uuid.UUID]entity.Product
	customers   map[uuid.UUID]entity.Customer
	suppliers   map[uuid.UUID]entity.Supplier
	orders      map[uuid.UUID]entity.Order
	sessions    map[uuid.UUID]entity.CashRegisterSession
	ledger      map[uuid.UUID]entity.LedgerEntry
	fiado       map[uuid.UUID]entity.FiadoReceipt
	invoices    map[uuid.UUID]entity.Invoice
	idempotency map[string]entity.IdempotencyKey
	settings    *entity.StoreSettings

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		products:    make(map[uuid.UUID]entity.Product),
		customers:   make(map[uuid.UUID]entity.Customer),
		suppliers:   make(map[uuid.UUID]entity.Supplier),
		orders:      make(map[uuid.UUID]entity.Order),
		sessions:    make(map[uuid.UUID]entity.CashRegisterSession),
		ledger:      make(map[uuid.UUID]entity.LedgerEntry),
		fiado:       make(map[uuid.UUID]entity.FiadoReceipt),
		invoices:    make(map[uuid.UUID]entity.Invoice),
		idempotency: make(map[string]entity.IdempotencyKey),
		now:         time.Now,
	}
}

type snapshot struct {
	products    map[uuid.UUID]entity.Product
	customers   map[uuid.UUID]entity.Customer
	suppliers   map[uuid.UUID]entity.Supplier
	orders      map[uuid.UUID]entity.Order
	sessions    map[uuid.UUID]entity.CashRegisterSession
	ledger      map[uuid.UUID]entity.LedgerEntry
	fiado       map[uuid.UUID]entity.FiadoReceipt
	invoices    map[uuid.UUID]entity.Invoice
	idempotency map[string]entity.IdempotencyKey
	settings    *entity.StoreSettings
}

// WithinTransaction runs fn with exclusive write access. When fn fails every
// table is restored to its state before the call.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write applies fn under the write lock
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// read applies fn under the read lock
func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		products:    copyMap(s.products),
		customers:   copyMap(s.customers),
		suppliers:   copyMap(s.suppliers),
		orders:      copyMap(s.orders),
		sessions:    copyMap(s.sessions),
		ledger:      copyMap(s.ledger),
		fiado:       copyMap(s.fiado),
		invoices:    copyMap(s.invoices),
		idempotency: copyMap(s.idempotency),
	}
	if s.settings != nil {
		settings := *s.settings
		snap.settings = &settings
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.customers = snap.customers
	s.suppliers = snap.suppliers
	s.orders = snap.orders
	s.sessions = snap.sessions
	s.ledger = snap.ledger
	s.fiado = snap.fiado
	s.invoices = snap.invoices
	s.idempotency = snap.idempotency
	s.settings = snap.settings
}

// Stored values never share mutable slices with callers, so a shallow map
// copy is a full snapshot.
func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func valuesOf[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func paginate[T any](items []T, params *pagination.PaginationParams) []T {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// matches reports whether any field contains term, ignoring case
func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func within(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}

func sortByTimeDesc[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}

// stamp fills the timestamps gorm would maintain
func (s *Store) stamp(createdAt, updatedAt *time.Time) {
	now := s.now()
	if createdAt != nil && createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt != nil {
		*updatedAt = now
	}
}
