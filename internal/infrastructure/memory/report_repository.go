package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
)

type reportRepository struct {
	s *Store
}

// NewReportRepository creates a report repository backed by s
func NewReportRepository(s *Store) domainRepo.ReportRepository {
	return &reportRepository{s: s}
}

func (r *reportRepository) paidOrders(from, to time.Time) []entity.Order {
	var orders []entity.Order
	r.s.read(func() {
		for _, o := range r.s.orders {
			if o.Status == enum.OrderStatusPaid && within(o.CreatedAt, &from, &to) {
				orders = append(orders, o)
			}
		}
	})
	return orders
}

func (r *reportRepository) SalesSummary(ctx context.Context, from, to time.Time) (*domainRepo.SalesSummary, error) {
	summary := &domainRepo.SalesSummary{}
	for _, o := range r.paidOrders(from, to) {
		summary.Revenue += o.Total
		summary.OrderCount++
	}
	return summary, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	byProduct := make(map[uuid.UUID]*domainRepo.TopProductResult)
	for _, o := range r.paidOrders(from, to) {
		for _, l := range o.Lines {
			row, ok := byProduct[l.ProductID]
			if !ok {
				row = &domainRepo.TopProductResult{ProductID: l.ProductID}
				byProduct[l.ProductID] = row
			}
			if l.ProductName > row.ProductName {
				row.ProductName = l.ProductName
			}
			row.QuantitySold += int64(l.Quantity)
			row.Revenue += l.Subtotal
		}
	}

	results := make([]domainRepo.TopProductResult, 0, len(byProduct))
	for _, row := range byProduct {
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].QuantitySold != results[j].QuantitySold {
			return results[i].QuantitySold > results[j].QuantitySold
		}
		return results[i].ProductName < results[j].ProductName
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *reportRepository) DailySales(ctx context.Context, from, to time.Time, loc *time.Location) ([]domainRepo.DailySalesResult, error) {
	byDay := make(map[string]*domainRepo.DailySalesResult)
	for _, o := range r.paidOrders(from, to) {
		day := o.CreatedAt.In(loc).Format(entity.BusinessDateLayout)
		row, ok := byDay[day]
		if !ok {
			row = &domainRepo.DailySalesResult{Date: day}
			byDay[day] = row
		}
		row.Revenue += o.Total
		row.OrderCount++
	}

	results := make([]domainRepo.DailySalesResult, 0, len(byDay))
	for _, row := range byDay {
		results = append(results, *row)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}
