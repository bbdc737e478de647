package service

import (
	"context"
	"errors"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// dashboardDays is how many days the sales chart covers, today included
const dashboardDays = 7

// DashboardService provides dashboard statistics
type DashboardService struct {
	reports     *ReportService
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
	fiadoRepo   repository.FiadoRepository
	ledgerRepo  repository.LedgerRepository
	sessionRepo repository.CashSessionRepository
	rt          Runtime
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	reports *ReportService,
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
	fiadoRepo repository.FiadoRepository,
	ledgerRepo repository.LedgerRepository,
	sessionRepo repository.CashSessionRepository,
	rt Runtime,
) *DashboardService {
	return &DashboardService{
		reports:     reports,
		reportRepo:  reportRepo,
		productRepo: productRepo,
		fiadoRepo:   fiadoRepo,
		ledgerRepo:  ledgerRepo,
		sessionRepo: sessionRepo,
		rt:          rt.withDefaults(),
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Today          *DailyReport                `json:"today"`
	LowStockCount  int                         `json:"low_stock_count"`
	OpenFiado      money.Cents                 `json:"open_fiado_total"`
	OpenFiadoCount int64                       `json:"open_fiado_count"`
	Ledger         *repository.LedgerSummary   `json:"ledger"`
	OpenSession    *entity.CashRegisterSession `json:"open_session"`
	DailySalesData []DailySalesPoint           `json:"daily_sales_data"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date       string      `json:"date"`
	Revenue    money.Cents `json:"revenue"`
	OrderCount int64       `json:"order_count"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	today, err := s.reports.GetDailyReport(ctx, "")
	if err != nil {
		return nil, err
	}
	stats := &DashboardStats{
		Today:  today,
		Ledger: &repository.LedgerSummary{},
	}

	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err := degrade(err); err != nil {
		return nil, err
	}
	stats.LowStockCount = len(lowStock)

	openTotal, openCount, err := s.fiadoRepo.OpenTotal(ctx)
	if err := degrade(err); err != nil {
		return nil, err
	}
	stats.OpenFiado = openTotal
	stats.OpenFiadoCount = openCount

	ledger, err := s.ledgerRepo.Summary(ctx, nil, nil)
	if err := degrade(err); err != nil {
		return nil, err
	}
	if ledger != nil {
		stats.Ledger = ledger
	}

	session, err := s.sessionRepo.GetOpen(ctx)
	if err := degrade(err); err != nil {
		return nil, err
	}
	stats.OpenSession = session

	stats.DailySalesData, err = s.dailySales(ctx, today.Date)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// dailySales fills every day of the chart window, days without sales included
func (s *DashboardService) dailySales(ctx context.Context, today string) ([]DailySalesPoint, error) {
	start, end, err := s.rt.dayBounds(today)
	if err != nil {
		return nil, err
	}
	start = start.AddDate(0, 0, -(dashboardDays - 1))

	rows, err := s.reportRepo.DailySales(ctx, start, end, s.rt.Location)
	if err := degrade(err); err != nil {
		return nil, err
	}
	byDate := make(map[string]repository.DailySalesResult, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	points := make([]DailySalesPoint, 0, dashboardDays)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(entity.BusinessDateLayout)
		row := byDate[date]
		points = append(points, DailySalesPoint{Date: date, Revenue: row.Revenue, OrderCount: row.OrderCount})
	}
	return points, nil
}

// degrade turns a missing schema into an empty result for read paths
func degrade(err error) error {
	if errors.Is(err, apperror.ErrSchemaMissing) {
		return nil
	}
	return err
}
