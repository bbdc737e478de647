package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update persists the catalog fields. It never writes the stock quantity,
	// which moves only through SetQuantity and the atomic operations below.
	Update(ctx context.Context, product *entity.Product) error
	// SetQuantity overwrites the stock with a counted quantity (>= 0)
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	// AtomicDecrementQuantity decrements stock only if sufficient. amount must be positive.
	// Returns (true, nil) if successful, (false, nil) if insufficient stock, (false, err) on error.
	AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error)
	// AtomicIncrementBatch increments stock for multiple products (cancellations and supplier deliveries).
	// Every amount must be positive.
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
	SortBy     string
	SortOrder  string
}
