package entity

import (
	"time"
)

// StoreSettingsID is the primary key of the single settings row
const StoreSettingsID = 1

// StoreSettings holds the store identity printed on receipts
type StoreSettings struct {
	ID            int       `gorm:"primary_key" json:"-"`
	StoreName     string    `gorm:"size:255;not null;default:'Depósito de Bebidas'" json:"store_name"`
	Address       string    `gorm:"size:255" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	TaxID         string    `gorm:"size:30" json:"tax_id"`
	ReceiptFooter string    `gorm:"size:255" json:"receipt_footer"`
	Currency      string    `gorm:"size:10;default:'BRL'" json:"currency"`
	LowStockAlert bool      `gorm:"default:true" json:"low_stock_alerts"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultStoreSettings returns the settings used before anything is saved
func DefaultStoreSettings() *StoreSettings {
	return &StoreSettings{
		ID:            StoreSettingsID,
		StoreName:     "Depósito de Bebidas",
		ReceiptFooter: "Obrigado pela preferência!",
		Currency:      "BRL",
		LowStockAlert: true,
	}
}
