package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return database.TranslateError(conn(ctx, r.db).Create(customer).Error, "Customer")
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Customer")
	}
	return &customer, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return database.TranslateError(conn(ctx, r.db).Save(customer).Error, "Customer")
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.TranslateError(conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error, "Customer")
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{}).
		Scopes(Search(search, "name", "phone", "email"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Customer")
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&customers).Error
	return customers, total, database.TranslateError(err, "Customer")
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return database.TranslateError(conn(ctx, r.db).Create(supplier).Error, "Supplier")
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Supplier")
	}
	return &supplier, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return database.TranslateError(conn(ctx, r.db).Save(supplier).Error, "Supplier")
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.TranslateError(conn(ctx, r.db).Delete(&entity.Supplier{}, "id = ?", id).Error, "Supplier")
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := conn(ctx, r.db).Model(&entity.Supplier{}).
		Scopes(Search(search, "name", "company_name", "phone", "email"))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Supplier")
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&suppliers).Error
	return suppliers, total, database.TranslateError(err, "Supplier")
}
