package repository

import (
	"context"
	"time"

	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) SalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummary, error) {
	var result domainRepo.SalesSummary

	err := conn(ctx, r.db).Raw(`
		SELECT
			COALESCE(SUM(total), 0) AS revenue,
			COUNT(*) AS order_count
		FROM orders
		WHERE status = ? AND created_at >= ? AND created_at < ?
	`, enum.OrderStatusPaid, from, to).Scan(&result).Error
	if err != nil {
		return nil, database.TranslateError(err, "Report")
	}

	return &result, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			ol.product_id AS product_id,
			MAX(ol.product_name) AS product_name,
			COALESCE(SUM(ol.quantity), 0) AS quantity_sold,
			COALESCE(SUM(ol.subtotal), 0) AS revenue
		FROM order_lines ol
		JOIN orders o ON o.id = ol.order_id
		WHERE o.status = ? AND o.created_at >= ? AND o.created_at < ?
		GROUP BY ol.product_id
		ORDER BY quantity_sold DESC, product_name ASC
		LIMIT ?
	`, enum.OrderStatusPaid, from, to, limit).Scan(&results).Error
	if err != nil {
		return nil, database.TranslateError(err, "Report")
	}

	return results, nil
}

func (r *reportRepository) DailySales(ctx context.Context, from, to time.Time, loc *time.Location) ([]domainRepo.DailySalesResult, error) {
	var results []domainRepo.DailySalesResult

	err := conn(ctx, r.db).Raw(`
		SELECT
			to_char(created_at AT TIME ZONE ?, 'YYYY-MM-DD') AS date,
			COALESCE(SUM(total), 0) AS revenue,
			COUNT(*) AS order_count
		FROM orders
		WHERE status = ? AND created_at >= ? AND created_at < ?
		GROUP BY 1
		ORDER BY 1
	`, loc.String(), enum.OrderStatusPaid, from, to).Scan(&results).Error
	if err != nil {
		return nil, database.TranslateError(err, "Report")
	}

	return results, nil
}
