package request

import "github.com/sangkips/bebidas-pos/pkg/money"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string      `json:"name" binding:"required,min=2,max=255"`
	Code          string      `json:"code" binding:"omitempty,max=100"`
	Category      string      `json:"category" binding:"omitempty,max=100"`
	Quantity      int         `json:"quantity" binding:"min=0"`
	QuantityAlert int         `json:"quantity_alert" binding:"min=0"`
	CostPrice     money.Cents `json:"cost_price"`
	SalePrice     money.Cents `json:"sale_price"`
	Notes         *string     `json:"notes"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string      `json:"name" binding:"omitempty,min=2,max=255"`
	Code          *string      `json:"code" binding:"omitempty,min=1,max=100"`
	Category      *string      `json:"category" binding:"omitempty,max=100"`
	Quantity      *int         `json:"quantity" binding:"omitempty,min=0"`
	QuantityAlert *int         `json:"quantity_alert" binding:"omitempty,min=0"`
	CostPrice     *money.Cents `json:"cost_price"`
	SalePrice     *money.Cents `json:"sale_price"`
	Notes         *string      `json:"notes"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
