package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

type ledgerRepository struct {
	s *Store
}

// NewLedgerRepository creates a ledger repository backed by s
func NewLedgerRepository(s *Store) domainRepo.LedgerRepository {
	return &ledgerRepository{s: s}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	if entry.Amount <= 0 {
		return apperror.NewFieldError("amount", "must be greater than zero")
	}
	return r.s.write(ctx, func() error {
		if entry.FiadoReceiptID != nil {
			for _, e := range r.s.ledger {
				if e.FiadoReceiptID != nil && *e.FiadoReceiptID == *entry.FiadoReceiptID {
					return apperror.NewConflictError("Ledger entry for this fiado receipt already exists")
				}
			}
		}
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		r.s.stamp(&entry.CreatedAt, nil)
		if entry.OccurredAt.IsZero() {
			entry.OccurredAt = entry.CreatedAt
		}
		r.s.ledger[entry.ID] = *entry
		return nil
	})
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var found *entity.LedgerEntry
	r.s.read(func() {
		if e, ok := r.s.ledger[id]; ok {
			found = &e
		}
	})
	return found, nil
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.ledger, id)
		return nil
	})
}

func (r *ledgerRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	return r.deleteWhere(ctx, func(e entity.LedgerEntry) bool {
		return e.OrderID != nil && *e.OrderID == orderID
	})
}

func (r *ledgerRepository) DeleteByFiadoReceiptID(ctx context.Context, receiptID uuid.UUID) (int64, error) {
	return r.deleteWhere(ctx, func(e entity.LedgerEntry) bool {
		return e.FiadoReceiptID != nil && *e.FiadoReceiptID == receiptID
	})
}

func (r *ledgerRepository) deleteWhere(ctx context.Context, pred func(entity.LedgerEntry) bool) (int64, error) {
	var n int64
	err := r.s.write(ctx, func() error {
		for id, e := range r.s.ledger {
			if pred(e) {
				delete(r.s.ledger, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *ledgerRepository) filtered(params *domainRepo.LedgerFilterParams) []entity.LedgerEntry {
	var entries []entity.LedgerEntry
	r.s.read(func() {
		for _, e := range r.s.ledger {
			if !within(e.OccurredAt, params.From, params.To) {
				continue
			}
			if params.Direction != nil && e.Direction != *params.Direction {
				continue
			}
			if params.Category != "" && e.Category != params.Category {
				continue
			}
			if params.OrderID != nil && (e.OrderID == nil || *e.OrderID != *params.OrderID) {
				continue
			}
			if params.FiadoReceiptID != nil && (e.FiadoReceiptID == nil || *e.FiadoReceiptID != *params.FiadoReceiptID) {
				continue
			}
			entries = append(entries, e)
		}
	})
	return entries
}

func (r *ledgerRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.LedgerEntry, error) {
	page := params.Page
	page.Normalize()

	entries := r.filtered(params)
	sort.Slice(entries, func(i, j int) bool {
		return domainRepo.LedgerCursorOf(entries[j]).Compare(entries[i]) > 0
	})

	limit := page.Limit + 1
	var window []entity.LedgerEntry
	switch c := page.Cursor; {
	case c == nil:
		window = entries
	case page.Backwards:
		// newer than the cursor, closest first, restored to newest first below
		for i := len(entries) - 1; i >= 0 && len(window) < limit; i-- {
			if c.Compare(entries[i]) > 0 {
				window = append(window, entries[i])
			}
		}
		slices.Reverse(window)
		return window, nil
	default:
		for _, e := range entries {
			if c.Compare(e) < 0 {
				window = append(window, e)
			}
		}
	}
	if len(window) > limit {
		window = window[:limit]
	}
	return window, nil
}

func (r *ledgerRepository) Summary(ctx context.Context, from, to *time.Time) (*domainRepo.LedgerSummary, error) {
	entries := r.filtered(&domainRepo.LedgerFilterParams{From: from, To: to})
	summary := &domainRepo.LedgerSummary{Count: int64(len(entries))}
	for _, e := range entries {
		if e.Direction == enum.LedgerDirectionOut {
			summary.Out += e.Amount
		} else {
			summary.In += e.Amount
		}
	}
	summary.Balance = summary.In - summary.Out
	return summary, nil
}
