package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/observability"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// CashSessionService opens and closes the cash register
type CashSessionService struct {
	tx          repository.Transactor
	sessionRepo repository.CashSessionRepository
	reportRepo  repository.ReportRepository
	rt          Runtime
}

// NewCashSessionService creates a new cash session service
func NewCashSessionService(
	tx repository.Transactor,
	sessionRepo repository.CashSessionRepository,
	reportRepo repository.ReportRepository,
	rt Runtime,
) *CashSessionService {
	return &CashSessionService{
		tx:          tx,
		sessionRepo: sessionRepo,
		reportRepo:  reportRepo,
		rt:          rt.withDefaults(),
	}
}

// Open starts a session for today's business date. Only one session may be
// open at a time, so yesterday's must be closed first.
func (s *CashSessionService) Open(ctx context.Context, openingFloat money.Cents) (*entity.CashRegisterSession, error) {
	if openingFloat < 0 {
		return nil, apperror.NewFieldError("opening_float", "must not be negative")
	}

	now := s.rt.now()
	date := s.rt.businessDate(now)
	var session *entity.CashRegisterSession

	err := s.rt.retryOnConflict(ctx, "open_session", func() error {
		existing, err := s.sessionRepo.GetOpen(ctx)
		if err != nil {
			return err
		}
		if existing != nil && existing.BusinessDate == date {
			return apperror.NewConflictError(fmt.Sprintf("A cash session is already open for %s", date))
		}
		if existing != nil {
			return apperror.NewConflictError(fmt.Sprintf("The cash session of %s is still open, close it first", existing.BusinessDate))
		}
		session = &entity.CashRegisterSession{
			Status:       enum.SessionStatusOpen,
			BusinessDate: date,
			OpenedAt:     now,
			OpeningFloat: openingFloat,
		}
		return s.sessionRepo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	s.rt.invalidateReports(ctx, date)
	s.rt.Events.Publish(ctx, event.CashSessionOpened, session.ID.String(), sessionPayload(session))
	s.rt.logger(ctx).Info("cash session opened",
		zap.String("business_date", date),
		zap.Int64("opening_float_cents", int64(openingFloat)),
	)
	return session, nil
}

// Close closes the open session, totalling the paid orders of its business date
func (s *CashSessionService) Close(ctx context.Context) (session *entity.CashRegisterSession, err error) {
	ctx, span := observability.StartSpan(ctx, "CashSessionService.Close")
	defer func() { observability.EndSpan(span, err) }()

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		open, err := s.sessionRepo.GetOpen(ctx)
		if err != nil {
			return err
		}
		if open == nil {
			return apperror.NewNotFoundError("Open cash session")
		}
		session = open

		from, to, err := s.rt.dayBounds(session.BusinessDate)
		if err != nil {
			return err
		}
		summary, err := s.reportRepo.SalesSummary(ctx, from, to)
		if err != nil {
			return err
		}

		now := s.rt.now()
		final := session.OpeningFloat + summary.Revenue
		session.Status = enum.SessionStatusClosed
		session.ClosedAt = &now
		session.AccumulatedSales = summary.Revenue
		session.OrderCount = int(summary.OrderCount)
		session.FinalBalance = &final
		return s.sessionRepo.Update(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("business_date", session.BusinessDate))
	s.rt.Metrics.SessionClosed()
	s.rt.invalidateReports(ctx, session.BusinessDate)
	s.rt.Events.Publish(ctx, event.CashSessionClosed, session.ID.String(), sessionPayload(session))
	s.rt.logger(ctx).Info("cash session closed",
		zap.String("business_date", session.BusinessDate),
		zap.Int("order_count", session.OrderCount),
		zap.Int64("accumulated_sales_cents", int64(session.AccumulatedSales)),
	)
	return session, nil
}

// Current returns the open session
func (s *CashSessionService) Current(ctx context.Context) (*entity.CashRegisterSession, error) {
	session, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open cash session")
	}
	return session, nil
}

// ListSessions lists sessions newest first
func (s *CashSessionService) ListSessions(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CashRegisterSession], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(sessions, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// StateOf tells whether a business date had a session and whether it is still open
func (s *CashSessionService) StateOf(ctx context.Context, date string) (enum.SessionState, error) {
	return sessionStateOf(ctx, s.sessionRepo, date)
}

func sessionPayload(session *entity.CashRegisterSession) event.CashSessionPayload {
	return event.CashSessionPayload{
		SessionID:        session.ID.String(),
		BusinessDate:     session.BusinessDate,
		OpeningFloat:     session.OpeningFloat,
		AccumulatedSales: session.AccumulatedSales,
		OrderCount:       session.OrderCount,
	}
}
