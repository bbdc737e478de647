package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// Create inserts the order header together with its lines
	Create(ctx context.Context, order *entity.Order) error
	// GetByID returns the order with its lines
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetByIDForUpdate is GetByID holding a row lock until the transaction
	// ends. Lock the order before its fiado receipt.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	// Update persists header fields (status, paid/canceled timestamps, notes)
	Update(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// NextSequence returns the highest allocated sequence plus one. It must be
	// called inside a transaction; allocation is serialized until it commits.
	NextSequence(ctx context.Context) (int, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.OrderStatus
	PaymentMethod *enum.PaymentMethod
	CustomerID    *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
