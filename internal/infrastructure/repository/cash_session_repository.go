package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
	"gorm.io/gorm"
)

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash register session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashRegisterSession) error {
	return database.TranslateError(conn(ctx, r.db).Create(session).Error, "Open cash session")
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashRegisterSession) error {
	return database.TranslateError(conn(ctx, r.db).Save(session).Error, "Cash session")
}

func (r *cashSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashRegisterSession, error) {
	return r.first(conn(ctx, r.db).Where("id = ?", id))
}

func (r *cashSessionRepository) GetOpen(ctx context.Context) (*entity.CashRegisterSession, error) {
	return r.first(conn(ctx, r.db).
		Where("status = ?", enum.SessionStatusOpen).
		Order("opened_at DESC"))
}

func (r *cashSessionRepository) GetLatestByDate(ctx context.Context, businessDate string) (*entity.CashRegisterSession, error) {
	return r.first(conn(ctx, r.db).
		Where("business_date = ?", businessDate).
		Order("opened_at DESC"))
}

func (r *cashSessionRepository) first(query *gorm.DB) (*entity.CashRegisterSession, error) {
	var session entity.CashRegisterSession
	err := query.First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Cash session")
	}
	return &session, nil
}

func (r *cashSessionRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashRegisterSession, int64, error) {
	var sessions []entity.CashRegisterSession
	var total int64

	query := conn(ctx, r.db).Model(&entity.CashRegisterSession{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Cash session")
	}

	err := query.Scopes(Paginate(params)).Order("opened_at DESC").Find(&sessions).Error
	return sessions, total, database.TranslateError(err, "Cash session")
}
