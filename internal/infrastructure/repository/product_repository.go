package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return database.TranslateError(conn(ctx, r.db).Create(product).Error, "Product")
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.first(ctx, "code = ?", code)
}

func (r *productRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Product, error) {
	var product entity.Product
	err := conn(ctx, r.db).First(&product, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Product")
	}
	return &product, nil
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&products).Error
	return products, database.TranslateError(err, "Product")
}

// productCatalogColumns are the columns Update writes. quantity is left out so
// an edit never overwrites a sale committed after the product was read.
var productCatalogColumns = []string{
	"name", "slug", "code", "category", "quantity_alert", "cost_price", "sale_price", "notes", "updated_at",
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := conn(ctx, r.db).Model(product).Select(productCatalogColumns).Updates(product)
	if result.Error != nil {
		return database.TranslateError(result.Error, "Product")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Product")
	}
	return nil
}

func (r *productRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 0 {
		return apperror.NewFieldError("quantity", "must not be negative")
	}
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if result.Error != nil {
		return database.TranslateError(result.Error, "Product")
	}
	if result.RowsAffected == 0 {
		return database.TranslateError(gorm.ErrRecordNotFound, "Product")
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.TranslateError(conn(ctx, r.db).Delete(&entity.Product{}, "id = ?", id).Error, "Product")
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := conn(ctx, r.db).Model(&entity.Product{}).
		Scopes(Search(params.Search, "name", "code"))

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.LowStock {
		query = query.Where("quantity <= quantity_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Product")
	}

	err := query.
		Scopes(Paginate(params.Pagination), Sorted(params.SortBy, params.SortOrder, "name", "name", "quantity", "sale_price", "created_at")).
		Find(&products).Error

	return products, total, database.TranslateError(err, "Product")
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := conn(ctx, r.db).
		Where("quantity <= quantity_alert").
		Order("quantity ASC, name ASC").
		Find(&products).Error
	return products, database.TranslateError(err, "Product")
}

// AtomicDecrementQuantity decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET quantity = quantity - amount WHERE id = ? AND quantity >= amount
func (r *productRepository) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	if amount <= 0 {
		return false, apperror.NewFieldError("quantity", "must be greater than zero")
	}
	result := conn(ctx, r.db).Model(&entity.Product{}).
		Where("id = ? AND quantity >= ?", id, amount).
		Update("quantity", gorm.Expr("quantity - ?", amount))

	if result.Error != nil {
		return false, database.TranslateError(result.Error, "Product")
	}

	// If no rows were affected, insufficient stock
	return result.RowsAffected > 0, nil
}

// AtomicIncrementBatch increments stock for multiple products in one transaction.
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}
	for _, amount := range increments {
		if amount <= 0 {
			return apperror.NewFieldError("quantity", "must be greater than zero")
		}
	}

	return database.NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		for id, amount := range increments {
			result := conn(ctx, r.db).Model(&entity.Product{}).
				Where("id = ?", id).
				Update("quantity", gorm.Expr("quantity + ?", amount))
			if result.Error != nil {
				return database.TranslateError(result.Error, "Product")
			}
			if result.RowsAffected == 0 {
				return database.TranslateError(gorm.ErrRecordNotFound, "Product")
			}
		}
		return nil
	})
}
