package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/event"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
	"github.com/sangkips/bebidas-pos/pkg/utils"
)

// LedgerCategoryPurchases is used for the payment of received supplier invoices
const LedgerCategoryPurchases = "Purchases"

// InvoiceService handles supplier invoices and stock receiving
type InvoiceService struct {
	tx           repository.Transactor
	invoiceRepo  repository.InvoiceRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	ledgerRepo   repository.LedgerRepository
	rt           Runtime
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	tx repository.Transactor,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	ledgerRepo repository.LedgerRepository,
	rt Runtime,
) *InvoiceService {
	return &InvoiceService{
		tx:           tx,
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		ledgerRepo:   ledgerRepo,
		rt:           rt.withDefaults(),
	}
}

// InvoiceItemInput represents an item in a supplier invoice
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  money.Cents
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	SupplierID *uuid.UUID
	InvoiceNo  string
	Date       *time.Time
	Notes      *string
	Items      []InvoiceItemInput
}

// CreateInvoice registers a pending invoice with its lines
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	var fieldErrors []apperror.FieldError
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "must be greater than zero"})
		} else if item.Quantity > MaxItemQuantity {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: fmt.Sprintf("must not exceed %d", MaxItemQuantity)})
		}
		if item.UnitCost < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_cost", i), Message: "must not be negative"})
		}
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	// Batch fetch all products in one query
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]bool, len(products))
	for _, p := range products {
		productMap[p.ID] = true
	}

	var total money.Cents
	lines := make([]entity.InvoiceLine, 0, len(input.Items))
	for _, item := range input.Items {
		if !productMap[item.ProductID] {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}
		lineTotal := item.UnitCost.Mul(item.Quantity)
		total += lineTotal
		lines = append(lines, entity.InvoiceLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Total:     lineTotal,
		})
	}

	invoiceNo := strings.TrimSpace(input.InvoiceNo)
	if invoiceNo == "" {
		invoiceNo = utils.GenerateReferenceNo("NF")
	}
	existing, err := s.invoiceRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Invoice number already exists")
	}

	date := s.rt.now()
	if input.Date != nil {
		date = *input.Date
	}
	invoice := &entity.Invoice{
		SupplierID: input.SupplierID,
		InvoiceNo:  invoiceNo,
		Date:       date,
		Status:     enum.InvoiceStatusPending,
		Total:      total,
		Notes:      input.Notes,
		Lines:      lines,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return s.GetInvoice(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ReceiveInvoice adds the invoiced quantities to stock, marks the invoice
// received and books its total as an outgoing ledger entry.
func (s *InvoiceService) ReceiveInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		found, err := s.invoiceRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		invoice = found
		if invoice.Status == enum.InvoiceStatusReceived {
			return apperror.NewFieldError("status", "invoice is already received")
		}

		stockIncrements := make(map[uuid.UUID]int)
		for _, line := range invoice.Lines {
			stockIncrements[line.ProductID] += line.Quantity
		}
		if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
			return err
		}

		now := s.rt.now()
		invoice.Status = enum.InvoiceStatusReceived
		invoice.ReceivedAt = &now
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}

		if invoice.Total <= 0 {
			return nil
		}
		return s.ledgerRepo.Create(ctx, &entity.LedgerEntry{
			Direction:   enum.LedgerDirectionOut,
			Description: "Invoice " + invoice.InvoiceNo,
			Category:    LedgerCategoryPurchases,
			Amount:      invoice.Total,
			OccurredAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	items := make([]event.ItemQty, len(invoice.Lines))
	for i, l := range invoice.Lines {
		items[i] = event.ItemQty{ProductID: l.ProductID.String(), Qty: l.Quantity}
	}
	s.rt.Events.Publish(ctx, event.InvoiceReceived, invoice.ID.String(), event.InvoiceReceivedPayload{
		InvoiceID: invoice.ID.String(),
		InvoiceNo: invoice.InvoiceNo,
		Items:     items,
	})
	s.rt.logger(ctx).Info("invoice received", zap.String("invoice_no", invoice.InvoiceNo), zap.Int("lines", len(invoice.Lines)))

	return s.GetInvoice(ctx, invoice.ID)
}

// DeleteInvoice deletes a pending invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusReceived {
		return apperror.NewFieldError("status", "cannot delete a received invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}
