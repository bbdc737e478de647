package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"gorm.io/gorm"
)

type fiadoRepository struct {
	db *gorm.DB
}

// NewFiadoRepository creates a new fiado receipt repository
func NewFiadoRepository(db *gorm.DB) domainRepo.FiadoRepository {
	return &fiadoRepository{db: db}
}

func (r *fiadoRepository) Create(ctx context.Context, receipt *entity.FiadoReceipt) error {
	return database.TranslateError(conn(ctx, r.db).Omit("Order").Create(receipt).Error, "Fiado receipt")
}

func (r *fiadoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	return r.first(conn(ctx, r.db), "id = ?", id)
}

func (r *fiadoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	return r.first(conn(ctx, r.db).Scopes(ForUpdate), "id = ?", id)
}

func (r *fiadoRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.FiadoReceipt, error) {
	return r.first(conn(ctx, r.db), "order_id = ?", orderID)
}

func (r *fiadoRepository) first(db *gorm.DB, query string, arg interface{}) (*entity.FiadoReceipt, error) {
	var receipt entity.FiadoReceipt
	err := db.First(&receipt, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Fiado receipt")
	}
	return &receipt, nil
}

// Update writes the settlement and contact fields of an existing receipt
func (r *fiadoRepository) Update(ctx context.Context, receipt *entity.FiadoReceipt) error {
	result := conn(ctx, r.db).Model(receipt).
		Select("customer_name", "customer_phone", "description", "due_date", "paid", "paid_at", "updated_at").
		Updates(receipt)
	if result.Error != nil {
		return database.TranslateError(result.Error, "Fiado receipt")
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Fiado receipt")
	}
	return nil
}

func (r *fiadoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.TranslateError(conn(ctx, r.db).Delete(&entity.FiadoReceipt{}, "id = ?", id).Error, "Fiado receipt")
}

func (r *fiadoRepository) List(ctx context.Context, params *domainRepo.FiadoFilterParams) ([]entity.FiadoReceipt, int64, error) {
	var receipts []entity.FiadoReceipt
	var total int64

	query := conn(ctx, r.db).Model(&entity.FiadoReceipt{}).
		Scopes(Search(params.Search, "customer_name", "customer_phone", "description"))

	if params.Paid != nil {
		query = query.Where("paid = ?", *params.Paid)
	}
	if params.OverdueAt != nil {
		query = query.Where("paid = ? AND due_date IS NOT NULL AND due_date < ?", false, *params.OverdueAt)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Fiado receipt")
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("paid ASC, created_at DESC").
		Find(&receipts).Error

	return receipts, total, database.TranslateError(err, "Fiado receipt")
}

func (r *fiadoRepository) OpenTotal(ctx context.Context) (money.Cents, int64, error) {
	var row struct {
		Total money.Cents
		Count int64
	}
	err := conn(ctx, r.db).Model(&entity.FiadoReceipt{}).
		Where("paid = ?", false).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	return row.Total, row.Count, database.TranslateError(err, "Fiado receipt")
}
