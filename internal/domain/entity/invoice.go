package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// Invoice represents a supplier invoice (nota fiscal de entrada)
type Invoice struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	SupplierID *uuid.UUID         `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	InvoiceNo  string             `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	Date       time.Time          `gorm:"not null" json:"date"`
	Status     enum.InvoiceStatus `gorm:"not null;default:0" json:"status"`
	Total      money.Cents        `gorm:"type:bigint;not null;default:0" json:"total"`
	Notes      *string            `gorm:"type:text" json:"notes,omitempty"`
	ReceivedAt *time.Time         `json:"received_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Supplier *Supplier    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceLine represents a product line in a supplier invoice
type InvoiceLine struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID   `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID   `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int         `gorm:"not null" json:"quantity"`
	UnitCost  money.Cents `gorm:"type:bigint;not null" json:"unit_cost"`
	Total     money.Cents `gorm:"type:bigint;not null" json:"total"`
	CreatedAt time.Time   `json:"created_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice line
func (l *InvoiceLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "invoice_lines"
}
