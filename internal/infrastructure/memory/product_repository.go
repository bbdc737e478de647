package memory

import (
	"cmp"
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

type productRepository struct {
	s *Store
}

// NewProductRepository creates a product repository backed by s
func NewProductRepository(s *Store) domainRepo.ProductRepository {
	return &productRepository{s: s}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, func() error {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		if err := r.checkUnique(product); err != nil {
			return err
		}
		r.s.stamp(&product.CreatedAt, &product.UpdatedAt)
		r.s.products[product.ID] = *product
		return nil
	})
}

func (r *productRepository) checkUnique(product *entity.Product) error {
	for id, p := range r.s.products {
		if id == product.ID {
			continue
		}
		if p.Slug == product.Slug || p.Code == product.Code {
			return apperror.NewConflictError("Product already exists")
		}
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.ID == id }), nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.Slug == slug }), nil
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.find(func(p entity.Product) bool { return p.Code == code }), nil
}

func (r *productRepository) find(pred func(entity.Product) bool) *entity.Product {
	var found *entity.Product
	r.s.read(func() {
		for _, p := range r.s.products {
			if pred(p) {
				clone := p
				found = &clone
				return
			}
		}
	})
	return found
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	products := []entity.Product{}
	r.s.read(func() {
		for _, id := range ids {
			if p, ok := r.s.products[id]; ok {
				products = append(products, p)
			}
		}
	})
	return products, nil
}

// Update keeps the stored quantity, like the column list of the SQL update
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.s.write(ctx, func() error {
		current, ok := r.s.products[product.ID]
		if !ok {
			return apperror.NewNotFoundError("Product")
		}
		if err := r.checkUnique(product); err != nil {
			return err
		}
		r.s.stamp(nil, &product.UpdatedAt)
		product.Quantity = current.Quantity
		r.s.products[product.ID] = *product
		return nil
	})
}

func (r *productRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity < 0 {
		return apperror.NewFieldError("quantity", "must not be negative")
	}
	return r.s.write(ctx, func() error {
		p, ok := r.s.products[id]
		if !ok {
			return apperror.NewNotFoundError("Product")
		}
		p.Quantity = quantity
		r.s.stamp(nil, &p.UpdatedAt)
		r.s.products[id] = p
		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.products, id)
		return nil
	})
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	r.s.read(func() {
		for _, p := range r.s.products {
			if !matches(params.Search, p.Name, p.Code) {
				continue
			}
			if params.Category != "" && p.Category != params.Category {
				continue
			}
			if params.LowStock && !p.IsLowStock() {
				continue
			}
			products = append(products, p)
		}
	})

	asc := strings.EqualFold(params.SortOrder, "asc")
	sort.SliceStable(products, func(i, j int) bool {
		c := compareProducts(products[i], products[j], params.SortBy)
		if asc {
			return c < 0
		}
		return c > 0
	})

	return paginate(products, params.Pagination), int64(len(products)), nil
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	products := []entity.Product{}
	r.s.read(func() {
		for _, p := range r.s.products {
			if p.IsLowStock() {
				products = append(products, p)
			}
		}
	})
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity != products[j].Quantity {
			return products[i].Quantity < products[j].Quantity
		}
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (r *productRepository) AtomicDecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	if amount <= 0 {
		return false, apperror.NewFieldError("quantity", "must be greater than zero")
	}
	var ok bool
	err := r.s.write(ctx, func() error {
		p, found := r.s.products[id]
		if !found || p.Quantity < amount {
			return nil
		}
		p.Quantity -= amount
		r.s.stamp(nil, &p.UpdatedAt)
		r.s.products[id] = p
		ok = true
		return nil
	})
	return ok, err
}

func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	return r.s.write(ctx, func() error {
		for id, amount := range increments {
			if amount <= 0 {
				return apperror.NewFieldError("quantity", "must be greater than zero")
			}
			if _, found := r.s.products[id]; !found {
				return apperror.NewNotFoundError("Product")
			}
		}
		for id, amount := range increments {
			p := r.s.products[id]
			p.Quantity += amount
			r.s.stamp(nil, &p.UpdatedAt)
			r.s.products[id] = p
		}
		return nil
	})
}

func compareProducts(a, b entity.Product, sortBy string) int {
	switch sortBy {
	case "quantity":
		return cmp.Compare(a.Quantity, b.Quantity)
	case "sale_price":
		return cmp.Compare(a.SalePrice, b.SalePrice)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
