package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// SalesSummary aggregates paid orders over a period
type SalesSummary struct {
	Revenue    money.Cents
	OrderCount int64
}

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      money.Cents
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       string
	Revenue    money.Cents
	OrderCount int64
}

// ReportRepository defines aggregation queries over paid orders.
// Periods are half-open: from <= created_at < to.
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	// TopProducts ranks products by summed quantity, ties broken by name
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
	// DailySales groups revenue per calendar day in loc
	DailySales(ctx context.Context, from, to time.Time, loc *time.Location) ([]DailySalesResult, error)
}
