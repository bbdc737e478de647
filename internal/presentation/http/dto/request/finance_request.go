package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// OpenCashSessionRequest opens today's cash register session
type OpenCashSessionRequest struct {
	OpeningFloat money.Cents `json:"opening_float"`
}

// SettleFiadoRequest marks a fiado receipt, or the receipt of an order, paid or unpaid
type SettleFiadoRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

// CreateFiadoRequest registers a standalone fiado receipt
type CreateFiadoRequest struct {
	CustomerID    *uuid.UUID  `json:"customer_id"`
	CustomerName  string      `json:"customer_name" binding:"max=255"`
	CustomerPhone *string     `json:"customer_phone" binding:"omitempty,max=50"`
	Description   string      `json:"description"`
	Amount        money.Cents `json:"amount"`
	DueDate       string      `json:"due_date"` // YYYY-MM-DD
}

// FiadoFilterRequest represents fiado receipt filter parameters
type FiadoFilterRequest struct {
	Search  string `form:"search"`
	Paid    *bool  `form:"paid"`
	Overdue bool   `form:"overdue"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// CreateLedgerEntryRequest records a manual ledger movement
type CreateLedgerEntryRequest struct {
	Direction     string      `json:"direction"`
	Description   string      `json:"description" binding:"max=255"`
	Category      string      `json:"category" binding:"max=100"`
	Amount        money.Cents `json:"amount"`
	PaymentMethod string      `json:"payment_method"`
	OccurredAt    string      `json:"occurred_at"` // RFC 3339
}

// LedgerFilterRequest represents ledger filter parameters
type LedgerFilterRequest struct {
	Cursor    string `form:"cursor"`
	Direction string `form:"direction"`
	Limit     int    `form:"limit"`
	Type      string `form:"type"`
	Category  string `form:"category"`
	OrderID   string `form:"order_id"`
	From      string `form:"from"`
	To        string `form:"to"`
}

// InvoiceItemRequest represents a line of a supplier invoice
type InvoiceItemRequest struct {
	ProductID uuid.UUID   `json:"product_id"`
	Quantity  int         `json:"quantity"`
	UnitCost  money.Cents `json:"unit_cost"`
}

// CreateInvoiceRequest registers a supplier invoice
type CreateInvoiceRequest struct {
	SupplierID *uuid.UUID           `json:"supplier_id"`
	InvoiceNo  string               `json:"invoice_no" binding:"max=100"`
	Date       string               `json:"date"` // YYYY-MM-DD
	Notes      *string              `json:"notes"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceFilterRequest represents invoice filter parameters
type InvoiceFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	SupplierID string `form:"supplier_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// UpdateSettingsRequest replaces the store settings
type UpdateSettingsRequest struct {
	StoreName     string `json:"store_name" binding:"required,max=255"`
	Address       string `json:"address"`
	Phone         string `json:"phone" binding:"max=50"`
	TaxID         string `json:"tax_id" binding:"max=30"`
	ReceiptFooter string `json:"receipt_footer"`
	Currency      string `json:"currency" binding:"omitempty,len=3"`
	LowStockAlert bool   `json:"low_stock_alert"`
}
