package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// LedgerEntry is an immutable movement in the financial ledger.
// Entries are inserted or deleted, never updated.
type LedgerEntry struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Direction      enum.LedgerDirection `gorm:"size:3;not null;index" json:"direction"`
	Description    string               `gorm:"size:255;not null" json:"description"`
	Category       string               `gorm:"size:100;not null;index" json:"category"`
	Amount         money.Cents          `gorm:"type:bigint;not null;check:chk_ledger_entries_amount,amount > 0" json:"amount"`
	PaymentMethod  enum.PaymentMethod   `gorm:"size:20" json:"payment_method,omitempty"`
	OrderID        *uuid.UUID           `gorm:"type:uuid;index" json:"order_id,omitempty"`
	FiadoReceiptID *uuid.UUID           `gorm:"type:uuid;index" json:"fiado_receipt_id,omitempty"`
	OccurredAt     time.Time            `gorm:"not null;index" json:"occurred_at"`
	CreatedAt      time.Time            `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// Signed returns the amount with the sign of its direction
func (e *LedgerEntry) Signed() money.Cents {
	if e.Direction == enum.LedgerDirectionOut {
		return -e.Amount
	}
	return e.Amount
}
