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

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new supplier invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	err := conn(ctx, r.db).Omit("Supplier").Create(invoice).Error
	return database.TranslateError(err, "Invoice")
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *invoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	return r.first(ctx, "invoice_no = ?", invoiceNo)
}

func (r *invoiceRepository) first(ctx context.Context, query string, arg interface{}) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := conn(ctx, r.db).
		Preload("Supplier").
		Preload("Lines.Product").
		First(&invoice, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Invoice")
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	err := conn(ctx, r.db).Model(invoice).
		Select("status", "received_at", "notes", "updated_at").
		Updates(invoice).Error
	return database.TranslateError(err, "Invoice")
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.NewTransactor(r.db).WithinTransaction(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if err := db.Delete(&entity.InvoiceLine{}, "invoice_id = ?", id).Error; err != nil {
			return database.TranslateError(err, "Invoice")
		}
		return database.TranslateError(db.Delete(&entity.Invoice{}, "id = ?", id).Error, "Invoice")
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := conn(ctx, r.db).Model(&entity.Invoice{}).
		Scopes(
			Search(params.Search, "invoice_no"),
			Between("date", params.StartDate, params.EndDate),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, database.TranslateError(err, "Invoice")
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Supplier").
		Order("date DESC, created_at DESC").
		Find(&invoices).Error

	return invoices, total, database.TranslateError(err, "Invoice")
}
