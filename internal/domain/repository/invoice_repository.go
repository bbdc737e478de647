package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// InvoiceRepository defines the interface for supplier invoice data operations
type InvoiceRepository interface {
	// Create inserts the invoice together with its lines
	Create(ctx context.Context, invoice *entity.Invoice) error
	// GetByID returns the invoice with its supplier and lines
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	SupplierID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
