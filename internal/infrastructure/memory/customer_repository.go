package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/pagination"
)

type customerRepository struct {
	s *Store
}

// NewCustomerRepository creates a customer repository backed by s
func NewCustomerRepository(s *Store) domainRepo.CustomerRepository {
	return &customerRepository{s: s}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.s.write(ctx, func() error {
		if customer.ID == uuid.Nil {
			customer.ID = uuid.New()
		}
		r.s.stamp(&customer.CreatedAt, &customer.UpdatedAt)
		r.s.customers[customer.ID] = *customer
		return nil
	})
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var found *entity.Customer
	r.s.read(func() {
		if c, ok := r.s.customers[id]; ok {
			found = &c
		}
	})
	return found, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.customers[customer.ID]; !ok {
			return apperror.NewNotFoundError("Customer")
		}
		r.s.stamp(nil, &customer.UpdatedAt)
		r.s.customers[customer.ID] = *customer
		return nil
	})
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.customers, id)
		return nil
	})
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	r.s.read(func() {
		for _, c := range r.s.customers {
			if matches(search, c.Name, deref(c.Phone), deref(c.Email)) {
				customers = append(customers, c)
			}
		}
	})
	sort.SliceStable(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return paginate(customers, params), int64(len(customers)), nil
}

type supplierRepository struct {
	s *Store
}

// NewSupplierRepository creates a supplier repository backed by s
func NewSupplierRepository(s *Store) domainRepo.SupplierRepository {
	return &supplierRepository{s: s}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return r.s.write(ctx, func() error {
		if supplier.ID == uuid.Nil {
			supplier.ID = uuid.New()
		}
		r.s.stamp(&supplier.CreatedAt, &supplier.UpdatedAt)
		r.s.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var found *entity.Supplier
	r.s.read(func() {
		if s, ok := r.s.suppliers[id]; ok {
			found = &s
		}
	})
	return found, nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.suppliers[supplier.ID]; !ok {
			return apperror.NewNotFoundError("Supplier")
		}
		r.s.stamp(nil, &supplier.UpdatedAt)
		r.s.suppliers[supplier.ID] = *supplier
		return nil
	})
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.suppliers, id)
		return nil
	})
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	r.s.read(func() {
		for _, s := range r.s.suppliers {
			if matches(search, s.Name, deref(s.CompanyName), deref(s.Phone), deref(s.Email)) {
				suppliers = append(suppliers, s)
			}
		}
	})
	sort.SliceStable(suppliers, func(i, j int) bool { return suppliers[i].Name < suppliers[j].Name })
	return paginate(suppliers, params), int64(len(suppliers)), nil
}
