package request

import "github.com/google/uuid"

// OrderItemRequest represents a line of an order
type OrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderRequest represents a sale. Payment method aliases such as
// "dinheiro" or "a_prazo" are accepted.
type CreateOrderRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	CustomerName  string             `json:"customer_name" binding:"max=255"`
	CustomerPhone *string            `json:"customer_phone" binding:"omitempty,max=50"`
	PaymentMethod string             `json:"payment_method"`
	Notes         *string            `json:"notes"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	CustomerID    string `form:"customer_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
