package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// FiadoRepository defines the interface for on-credit receipts
type FiadoRepository interface {
	Create(ctx context.Context, receipt *entity.FiadoReceipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.FiadoReceipt, error)
	// Update never inserts; a receipt deleted meanwhile is NotFound
	Update(ctx context.Context, receipt *entity.FiadoReceipt) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *FiadoFilterParams) ([]entity.FiadoReceipt, int64, error)
	// OpenTotal sums the unpaid receipts
	OpenTotal(ctx context.Context) (money.Cents, int64, error)
}

// FiadoFilterParams contains filtering parameters for fiado queries
type FiadoFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Paid       *bool
	// OverdueAt keeps unpaid receipts whose due date is before it
	OverdueAt *time.Time
}
