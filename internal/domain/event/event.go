package event

import (
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// Event types published by the back office
const (
	OrderPlaced       = "OrderPlaced"
	OrderCanceled     = "OrderCanceled"
	StockRejected     = "StockRejected"
	FiadoSettled      = "FiadoSettled"
	FiadoReverted     = "FiadoReverted"
	CashSessionOpened = "CashSessionOpened"
	CashSessionClosed = "CashSessionClosed"
	InvoiceReceived   = "InvoiceReceived"
	ProductStockLow   = "ProductStockLow"
)

type ItemQty struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderPlacedPayload struct {
	OrderID       string      `json:"order_id"`
	OrderNumber   string      `json:"order_number"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	Total         money.Cents `json:"total"`
	Items         []ItemQty   `json:"items"`
}

type OrderCanceledPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Restocked   []ItemQty `json:"restocked"`
}

type StockRejectedPayload struct {
	ProductID string `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

type FiadoPayload struct {
	ReceiptID string      `json:"receipt_id"`
	OrderID   string      `json:"order_id,omitempty"`
	Amount    money.Cents `json:"amount"`
	Paid      bool        `json:"paid"`
}

type CashSessionPayload struct {
	SessionID        string      `json:"session_id"`
	BusinessDate     string      `json:"business_date"`
	OpeningFloat     money.Cents `json:"opening_float"`
	AccumulatedSales money.Cents `json:"accumulated_sales"`
	OrderCount       int         `json:"order_count"`
}

type InvoiceReceivedPayload struct {
	InvoiceID string    `json:"invoice_id"`
	InvoiceNo string    `json:"invoice_no"`
	Items     []ItemQty `json:"items"`
}

type ProductStockLowPayload struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Quantity      int    `json:"quantity"`
	QuantityAlert int    `json:"quantity_alert"`
}
