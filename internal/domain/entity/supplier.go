package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// Supplier represents a beverage supplier
type Supplier struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name        string            `gorm:"size:255;not null" json:"name"`
	CompanyName *string           `gorm:"size:255" json:"company_name,omitempty"`
	Document    *string           `gorm:"size:20" json:"document,omitempty"`
	Email       *string           `gorm:"size:255" json:"email,omitempty"`
	Phone       *string           `gorm:"size:50" json:"phone,omitempty"`
	Address     *string           `gorm:"type:text" json:"address,omitempty"`
	Type        enum.SupplierType `gorm:"size:50;default:'distributor'" json:"type"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
