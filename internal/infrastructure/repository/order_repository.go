package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"gorm.io/gorm"
)

// orderNumberLockKey identifies the advisory lock serializing order number allocation
const orderNumberLockKey int64 = 0x56454E4441

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return database.TranslateError(conn(ctx, r.db).Create(order).Error, "Order")
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.first(conn(ctx, r.db), "id = ?", id)
}

func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.first(conn(ctx, r.db).Scopes(ForUpdate), "id = ?", id)
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	return r.first(conn(ctx, r.db), "order_number = ?", orderNumber)
}

func (r *orderRepository) first(db *gorm.DB, query string, arg interface{}) (*entity.Order, error) {
	var order entity.Order
	err := db.
		Preload("Customer").
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, product_name ASC") }).
		First(&order, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Order")
	}
	return &order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	err := conn(ctx, r.db).Model(order).
		Select("status", "paid_at", "canceled_at", "notes", "updated_at").
		Updates(order).Error
	return database.TranslateError(err, "Order")
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := conn(ctx, r.db).Model(&entity.Order{}).
		Scopes(
			Search(params.Search, "order_number", "customer_name"),
			Between("created_at", params.StartDate, params.EndDate),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Order")
	}

	err := query.
		Scopes(Paginate(params.Pagination), Sorted(params.SortBy, params.SortOrder, "sequence", "sequence", "created_at", "total")).
		Preload("Lines").
		Find(&orders).Error

	return orders, total, database.TranslateError(err, "Order")
}

// NextSequence takes a transaction-scoped advisory lock, then reads the
// highest allocated sequence. The lock is released at commit or rollback.
func (r *orderRepository) NextSequence(ctx context.Context) (int, error) {
	if !database.InTransaction(ctx) {
		return 0, errors.New("order sequence must be allocated inside a transaction")
	}
	db := conn(ctx, r.db)
	if err := db.Exec("SELECT pg_advisory_xact_lock(?)", orderNumberLockKey).Error; err != nil {
		return 0, database.TranslateError(err, "Order")
	}
	var last int
	if err := db.Model(&entity.Order{}).Select("COALESCE(MAX(sequence), 0)").Scan(&last).Error; err != nil {
		return 0, database.TranslateError(err, "Order")
	}
	return last + 1, nil
}
