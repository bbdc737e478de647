package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

// Product represents a product in the catalog
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Code          string         `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Category      string         `gorm:"size:100;index" json:"category,omitempty"`
	Quantity      int            `gorm:"not null;default:0;check:chk_products_quantity,quantity >= 0" json:"quantity"`
	QuantityAlert int            `gorm:"not null;default:0" json:"quantity_alert"`
	CostPrice     money.Cents    `gorm:"type:bigint;not null;default:0" json:"cost_price"`
	SalePrice     money.Cents    `gorm:"type:bigint;not null;default:0" json:"sale_price"`
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// IsLowStock reports whether the stock reached the alert threshold
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.QuantityAlert
}
