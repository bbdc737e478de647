package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
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

// FiadoService manages on-credit receipts and their settlement
type FiadoService struct {
	tx           repository.Transactor
	fiadoRepo    repository.FiadoRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	ledgerRepo   repository.LedgerRepository
	rt           Runtime
}

// NewFiadoService creates a new fiado service
func NewFiadoService(
	tx repository.Transactor,
	fiadoRepo repository.FiadoRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	ledgerRepo repository.LedgerRepository,
	rt Runtime,
) *FiadoService {
	return &FiadoService{
		tx:           tx,
		fiadoRepo:    fiadoRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		rt:           rt.withDefaults(),
	}
}

// MarkSettled sets the paid flag of a receipt. id may be the receipt id or
// the id of the order the receipt belongs to. Settling writes one ledger
// entry; reverting removes it. Setting the current value again is a no-op.
func (s *FiadoService) MarkSettled(ctx context.Context, id uuid.UUID, paid bool) (receipt *entity.FiadoReceipt, err error) {
	ctx, span := observability.StartSpan(ctx, "FiadoService.MarkSettled", attribute.Bool("paid", paid))
	defer func() { observability.EndSpan(span, err) }()

	changed := false
	var order *entity.Order

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		r, err := s.resolve(ctx, id)
		if err != nil {
			return err
		}
		if r.OrderID != nil {
			order, err = s.orderRepo.GetByIDForUpdate(ctx, *r.OrderID)
			if err != nil {
				return err
			}
		}
		receipt, err = s.fiadoRepo.GetByIDForUpdate(ctx, r.ID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Fiado receipt")
		}
		if receipt.Paid == paid {
			return nil
		}
		if order != nil && order.Status == enum.OrderStatusCanceled {
			return apperror.NewFieldError("order", "order "+order.OrderNumber+" is canceled")
		}

		now := s.rt.now()
		if paid {
			err = s.settle(ctx, receipt, order, now)
		} else {
			err = s.revert(ctx, receipt, order)
		}
		changed = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return receipt, nil
	}

	s.rt.Metrics.FiadoSettled(paid)
	if order != nil {
		s.rt.invalidateReports(ctx, s.rt.businessDate(order.CreatedAt))
	}
	eventType := event.FiadoSettled
	if !paid {
		eventType = event.FiadoReverted
	}
	payload := event.FiadoPayload{ReceiptID: receipt.ID.String(), Amount: receipt.Amount, Paid: paid}
	if receipt.OrderID != nil {
		payload.OrderID = receipt.OrderID.String()
	}
	s.rt.Events.Publish(ctx, eventType, receipt.ID.String(), payload)
	s.rt.logger(ctx).Info("fiado receipt updated",
		zap.String("receipt_id", receipt.ID.String()),
		zap.Bool("paid", paid),
		zap.Int64("amount_cents", int64(receipt.Amount)),
	)
	return receipt, nil
}

func (s *FiadoService) resolve(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	receipt, err := s.fiadoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt != nil {
		return receipt, nil
	}
	receipt, err = s.fiadoRepo.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Fiado receipt")
	}
	return receipt, nil
}

func (s *FiadoService) settle(ctx context.Context, receipt *entity.FiadoReceipt, order *entity.Order, now time.Time) error {
	receipt.Paid = true
	receipt.PaidAt = &now
	if err := s.fiadoRepo.Update(ctx, receipt); err != nil {
		return err
	}

	description := "Fiado settlement: " + receipt.Description
	if order != nil {
		description = "Fiado settlement " + order.OrderNumber
		if order.Status == enum.OrderStatusPending {
			order.Status = enum.OrderStatusPaid
			order.PaidAt = &now
			if err := s.orderRepo.Update(ctx, order); err != nil {
				return err
			}
		}
	}

	receiptID := receipt.ID
	return s.ledgerRepo.Create(ctx, &entity.LedgerEntry{
		Direction:      enum.LedgerDirectionIn,
		Description:    description,
		Category:       enum.LedgerCategoryFiado,
		Amount:         receipt.Amount,
		PaymentMethod:  enum.PaymentMethodFiado,
		OrderID:        receipt.OrderID,
		FiadoReceiptID: &receiptID,
		OccurredAt:     now,
	})
}

func (s *FiadoService) revert(ctx context.Context, receipt *entity.FiadoReceipt, order *entity.Order) error {
	receipt.Paid = false
	receipt.PaidAt = nil
	if err := s.fiadoRepo.Update(ctx, receipt); err != nil {
		return err
	}
	if order != nil && order.Status == enum.OrderStatusPaid {
		order.Status = enum.OrderStatusPending
		order.PaidAt = nil
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
	}
	_, err := s.ledgerRepo.DeleteByFiadoReceiptID(ctx, receipt.ID)
	return err
}

// CreateFiadoInput represents a receipt registered by hand
type CreateFiadoInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerPhone *string
	Description   string
	Amount        money.Cents
	DueDate       *time.Time
}

// CreateReceipt registers a standalone fiado receipt
func (s *FiadoService) CreateReceipt(ctx context.Context, input *CreateFiadoInput) (*entity.FiadoReceipt, error) {
	var fieldErrors []apperror.FieldError
	if input.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if input.CustomerID == nil && strings.TrimSpace(input.CustomerName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "is required"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	receipt := &entity.FiadoReceipt{
		CustomerID:    input.CustomerID,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: input.CustomerPhone,
		Description:   strings.TrimSpace(input.Description),
		Amount:        input.Amount,
		DueDate:       input.DueDate,
	}
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if receipt.CustomerName == "" {
			receipt.CustomerName = customer.Name
		}
		if receipt.CustomerPhone == nil {
			receipt.CustomerPhone = customer.Phone
		}
	}

	if err := s.fiadoRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt retrieves a receipt by its id or its order's id
func (s *FiadoService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	return s.resolve(ctx, id)
}

// ListReceipts lists receipts; Overdue keeps unpaid ones past their due date
func (s *FiadoService) ListReceipts(ctx context.Context, params *repository.FiadoFilterParams, overdue bool) (*pagination.PaginatedResult[entity.FiadoReceipt], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if overdue {
		now := s.rt.now()
		params.OverdueAt = &now
	}

	receipts, total, err := s.fiadoRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(receipts, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)), nil
}

// DeleteReceipt removes an unpaid standalone receipt. Receipts of orders
// go away when the order is canceled.
func (s *FiadoService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		receipt, err := s.fiadoRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewNotFoundError("Fiado receipt")
		}
		if receipt.Paid {
			return apperror.NewFieldError("paid", "paid receipts cannot be deleted")
		}
		if receipt.OrderID != nil {
			return apperror.NewFieldError("order_id", "receipt belongs to an order, cancel the order instead")
		}
		return s.fiadoRepo.Delete(ctx, id)
	})
}

// OpenTotal sums unpaid receipts
func (s *FiadoService) OpenTotal(ctx context.Context) (money.Cents, int64, error) {
	return s.fiadoRepo.OpenTotal(ctx)
}
