package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// FiadoReceipt is an on-credit debt owed by a customer. Receipts are created for
// every fiado order and may also be registered by hand.
type FiadoReceipt struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderID       *uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"order_id,omitempty"`
	CustomerID    *uuid.UUID  `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string      `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone *string     `gorm:"size:50" json:"customer_phone,omitempty"`
	Description   string      `gorm:"size:255" json:"description"`
	Amount        money.Cents `gorm:"type:bigint;not null;check:chk_fiado_receipts_amount,amount > 0" json:"amount"`
	DueDate       *time.Time  `gorm:"index" json:"due_date,omitempty"`
	Paid          bool        `gorm:"not null;default:false;index" json:"paid"`
	PaidAt        *time.Time  `json:"paid_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	// Relationships
	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new fiado receipt
func (r *FiadoReceipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the FiadoReceipt model
func (FiadoReceipt) TableName() string {
	return "fiado_receipts"
}

// IsOverdue reports whether an unpaid receipt passed its due date
func (r *FiadoReceipt) IsOverdue(now time.Time) bool {
	return !r.Paid && r.DueDate != nil && now.After(*r.DueDate)
}
