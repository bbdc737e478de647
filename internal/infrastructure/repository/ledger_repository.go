package repository

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *gorm.DB) domainRepo.LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return database.TranslateError(conn(ctx, r.db).Create(entry).Error, "Ledger entry")
}

func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	var entry entity.LedgerEntry
	err := conn(ctx, r.db).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Ledger entry")
	}
	return &entry, nil
}

func (r *ledgerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.TranslateError(conn(ctx, r.db).Delete(&entity.LedgerEntry{}, "id = ?", id).Error, "Ledger entry")
}

func (r *ledgerRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Delete(&entity.LedgerEntry{}, "order_id = ?", orderID)
	return result.RowsAffected, database.TranslateError(result.Error, "Ledger entry")
}

func (r *ledgerRepository) DeleteByFiadoReceiptID(ctx context.Context, receiptID uuid.UUID) (int64, error) {
	result := conn(ctx, r.db).Delete(&entity.LedgerEntry{}, "fiado_receipt_id = ?", receiptID)
	return result.RowsAffected, database.TranslateError(result.Error, "Ledger entry")
}

func (r *ledgerRepository) filtered(ctx context.Context, params *domainRepo.LedgerFilterParams) *gorm.DB {
	query := conn(ctx, r.db).Model(&entity.LedgerEntry{}).
		Scopes(Between("occurred_at", params.From, params.To))

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if params.FiadoReceiptID != nil {
		query = query.Where("fiado_receipt_id = ?", *params.FiadoReceiptID)
	}
	return query
}

// List walks the ledger newest first using (occurred_at, id) as keyset
func (r *ledgerRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.LedgerEntry, error) {
	page := params.Page
	page.Normalize()

	query := r.filtered(ctx, params)
	switch c := page.Cursor; {
	case c == nil:
		query = query.Order("occurred_at DESC, id DESC")
	case page.Backwards:
		query = query.Where("(occurred_at, id) > (?, ?)", c.OccurredAt, c.ID).
			Order("occurred_at ASC, id ASC")
	default:
		query = query.Where("(occurred_at, id) < (?, ?)", c.OccurredAt, c.ID).
			Order("occurred_at DESC, id DESC")
	}

	var entries []entity.LedgerEntry
	if err := query.Limit(page.Limit + 1).Find(&entries).Error; err != nil {
		return nil, database.TranslateError(err, "Ledger entry")
	}

	if page.Backwards {
		slices.Reverse(entries)
	}
	return entries, nil
}

func (r *ledgerRepository) Summary(ctx context.Context, from, to *time.Time) (*domainRepo.LedgerSummary, error) {
	var row struct {
		In    money.Cents
		Out   money.Cents
		Count int64
	}
	err := conn(ctx, r.db).Model(&entity.LedgerEntry{}).
		Scopes(Between("occurred_at", from, to)).
		Select(
			"COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE 0 END), 0) AS \"in\", "+
				"COALESCE(SUM(CASE WHEN direction = ? THEN amount ELSE 0 END), 0) AS \"out\", "+
				"COUNT(*) AS count",
			enum.LedgerDirectionIn, enum.LedgerDirectionOut,
		).
		Scan(&row).Error
	if err != nil {
		return nil, database.TranslateError(err, "Ledger entry")
	}
	return &domainRepo.LedgerSummary{
		In:      row.In,
		Out:     row.Out,
		Balance: row.In - row.Out,
		Count:   row.Count,
	}, nil
}
