package entity

import "github.com/sangkips/bebidas-pos/pkg/money"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"unit_price"`
	Total     money.Cents `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is composed from order data at print time and never stored.
type Receipt struct {
	Header        ReceiptHeader `json:"header"`
	OrderNumber   string        `json:"order_number"`
	Date          string        `json:"date"`
	Customer      string        `json:"customer,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Status        string        `json:"status"`
	Items         []ReceiptItem `json:"items"`
	Total         money.Cents   `json:"total"`
	Footer        string        `json:"footer,omitempty"`
}
