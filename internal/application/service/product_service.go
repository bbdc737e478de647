package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
	"github.com/sangkips/bebidas-pos/pkg/utils"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Code          string
	Category      string
	Quantity      int
	QuantityAlert int
	CostPrice     money.Cents
	SalePrice     money.Cents
	Notes         *string
}

func (in *CreateProductInput) validate() error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if in.SalePrice <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sale_price", Message: "must be greater than zero"})
	}
	if in.CostPrice < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "cost_price", Message: "must not be negative"})
	}
	if in.Quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if in.QuantityAlert < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity_alert", Message: "must not be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Auto-generate code if not provided
	code := strings.TrimSpace(input.Code)
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	name := strings.TrimSpace(input.Name)
	slug, err := s.uniqueSlug(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:          name,
		Slug:          slug,
		Code:          code,
		Category:      strings.ToLower(strings.TrimSpace(input.Category)),
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		CostPrice:     input.CostPrice,
		SalePrice:     input.SalePrice,
		Notes:         input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// uniqueSlug slugifies name, adding a short suffix when another product owns the slug
func (s *ProductService) uniqueSlug(ctx context.Context, name string, self uuid.UUID) (string, error) {
	slug := utils.Slugify(name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if existing == nil || existing.ID == self {
		return slug, nil
	}
	return slug + "-" + strings.ToLower(uuid.New().String()[:8]), nil
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering, by name unless asked otherwise
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	if params.SortBy == "" {
		params.SortBy = "name"
		if params.SortOrder == "" {
			params.SortOrder = "asc"
		}
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductSlug   string
	Name          *string
	Code          *string
	Category      *string
	Quantity      *int
	QuantityAlert *int
	CostPrice     *money.Cents
	SalePrice     *money.Cents
	Notes         *string
}

// UpdateProduct updates the catalog fields of a product. Quantity, when set,
// replaces the stock with a counted value.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, input.ProductSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != product.Code {
		existingProduct, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "must not be empty")
		}
		slug, err := s.uniqueSlug(ctx, name, product.ID)
		if err != nil {
			return nil, err
		}
		product.Name = name
		product.Slug = slug
	}
	if input.Category != nil {
		product.Category = strings.ToLower(strings.TrimSpace(*input.Category))
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, apperror.NewFieldError("quantity", "must not be negative")
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.CostPrice != nil {
		product.CostPrice = *input.CostPrice
	}
	if input.SalePrice != nil {
		if *input.SalePrice <= 0 {
			return nil, apperror.NewFieldError("sale_price", "must be greater than zero")
		}
		product.SalePrice = *input.SalePrice
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	// a stock count is written on its own; other edits leave stock to sales
	if input.Quantity != nil {
		if err := s.productRepo.SetQuantity(ctx, product.ID, *input.Quantity); err != nil {
			return nil, err
		}
	}

	return s.GetProductByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
