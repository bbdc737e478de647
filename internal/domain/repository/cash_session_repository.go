package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

// CashSessionRepository defines the interface for cash register sessions
type CashSessionRepository interface {
	// Create inserts a session. A second open session fails with a conflict.
	Create(ctx context.Context, session *entity.CashRegisterSession) error
	Update(ctx context.Context, session *entity.CashRegisterSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error)
	// GetOpen returns the open session, if any
	GetOpen(ctx context.Context) (*entity.CashRegisterSession, error)
	// GetLatestByDate returns the last session opened on a business date, open or closed
	GetLatestByDate(ctx context.Context, businessDate string) (*entity.CashRegisterSession, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashRegisterSession, int64, error)
}
