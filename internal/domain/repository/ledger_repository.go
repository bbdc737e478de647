package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// LedgerRepository defines the interface for the financial ledger.
// Entries are append-only; corrections delete them.
type LedgerRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByOrderID removes every entry linked to an order and returns how many
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
	// DeleteByFiadoReceiptID removes the settlement entries of a fiado receipt
	DeleteByFiadoReceiptID(ctx context.Context, receiptID uuid.UUID) (int64, error)
	// List returns entries newest first, at most Page.Limit+1 of them so
	// callers can detect one more page in the walk direction. Backwards pages
	// hold the entries closest to the cursor last.
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.LedgerEntry, error)
	Summary(ctx context.Context, from, to *time.Time) (*LedgerSummary, error)
}

// LedgerFilterParams contains filtering parameters for ledger queries
type LedgerFilterParams struct {
	Page           LedgerPage
	Direction      *enum.LedgerDirection
	Category       string
	OrderID        *uuid.UUID
	FiadoReceiptID *uuid.UUID
	From           *time.Time
	To             *time.Time
}

// LedgerSummary aggregates ledger movements over a period
type LedgerSummary struct {
	In      money.Cents `json:"in"`
	Out     money.Cents `json:"out"`
	Balance money.Cents `json:"balance"`
	Count   int64       `json:"count"`
}
