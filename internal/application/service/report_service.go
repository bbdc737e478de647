package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

// ReportService builds read-only sales reports
type ReportService struct {
	reportRepo  repository.ReportRepository
	sessionRepo repository.CashSessionRepository
	rt          Runtime
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, sessionRepo repository.CashSessionRepository, rt Runtime) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		sessionRepo: sessionRepo,
		rt:          rt.withDefaults(),
	}
}

// TopProduct is the best seller of a report period
type TopProduct struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// DailyReport summarises the paid orders of one business date
type DailyReport struct {
	Date          string            `json:"date"`
	Revenue       money.Cents       `json:"revenue"`
	OrderCount    int64             `json:"order_count"`
	AverageTicket money.Cents       `json:"average_ticket"`
	TopProduct    *TopProduct       `json:"top_product"`
	Status        enum.ReportStatus `json:"status"`
	SessionState  enum.SessionState `json:"session_state"`
	Message       string            `json:"message"`
}

// GetDailyReport returns the report of date (YYYY-MM-DD); empty means today
func (s *ReportService) GetDailyReport(ctx context.Context, date string) (*DailyReport, error) {
	if date == "" {
		date = s.rt.businessDate(s.rt.now())
	}
	from, to, err := s.rt.dayBounds(date)
	if err != nil {
		return nil, err
	}

	var cached DailyReport
	hit, generation, cacheErr := s.rt.Reports.Get(ctx, date, &cached)
	if cacheErr != nil {
		s.rt.logger(ctx).Warn("report cache read failed", zap.String("date", date), zap.Error(cacheErr))
	} else if hit {
		return &cached, nil
	}

	report, err := s.buildDailyReport(ctx, date, from, to)
	if errors.Is(err, apperror.ErrSchemaMissing) {
		s.rt.logger(ctx).Warn("schema missing, serving empty report", zap.String("date", date))
		return newDailyReport(date, 0, 0, nil, enum.SessionStateNone), nil
	}
	if err != nil {
		return nil, err
	}

	if cacheErr != nil {
		return report, nil
	}
	if err := s.rt.Reports.Set(ctx, date, generation, report); err != nil {
		s.rt.logger(ctx).Warn("report cache write failed", zap.String("date", date), zap.Error(err))
	}
	return report, nil
}

func (s *ReportService) buildDailyReport(ctx context.Context, date string, from, to time.Time) (*DailyReport, error) {
	summary, err := s.reportRepo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	top, err := s.reportRepo.TopProducts(ctx, from, to, 1)
	if err != nil {
		return nil, err
	}
	state, err := sessionStateOf(ctx, s.sessionRepo, date)
	if err != nil {
		return nil, err
	}

	var best *TopProduct
	if len(top) > 0 {
		best = &TopProduct{
			ProductID: top[0].ProductID.String(),
			Name:      top[0].ProductName,
			Quantity:  top[0].QuantitySold,
		}
	}
	return newDailyReport(date, summary.Revenue, summary.OrderCount, best, state), nil
}

func newDailyReport(date string, revenue money.Cents, count int64, top *TopProduct, state enum.SessionState) *DailyReport {
	status := enum.ClassifyRevenue(int64(revenue))
	return &DailyReport{
		Date:          date,
		Revenue:       revenue,
		OrderCount:    count,
		AverageTicket: revenue.DivRound(count),
		TopProduct:    top,
		Status:        status,
		SessionState:  state,
		Message:       reportMessage(status, state),
	}
}

var statusMessages = map[enum.ReportStatus]string{
	enum.ReportStatusExcellent: "Excellent day, revenue above 500.00.",
	enum.ReportStatusGood:      "Good day, revenue above 200.00.",
	enum.ReportStatusWarning:   "Slow day, revenue up to 200.00.",
	enum.ReportStatusPoor:      "No sales recorded.",
}

var sessionMessages = map[enum.SessionState]string{
	enum.SessionStateOpen:   "The cash register is still open, figures may change.",
	enum.SessionStateClosed: "The cash register is closed for the day.",
	enum.SessionStateNone:   "No cash session was opened on this date.",
}

func reportMessage(status enum.ReportStatus, state enum.SessionState) string {
	return statusMessages[status] + " " + sessionMessages[state]
}

func sessionStateOf(ctx context.Context, repo repository.CashSessionRepository, date string) (enum.SessionState, error) {
	session, err := repo.GetLatestByDate(ctx, date)
	if err != nil {
		return enum.SessionStateNone, err
	}
	switch {
	case session == nil:
		return enum.SessionStateNone, nil
	case session.IsOpen():
		return enum.SessionStateOpen, nil
	default:
		return enum.SessionStateClosed, nil
	}
}
