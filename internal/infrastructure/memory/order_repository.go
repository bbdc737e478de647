package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

type orderRepository struct {
	s *Store
}

// NewOrderRepository creates an order repository backed by s
func NewOrderRepository(s *Store) domainRepo.OrderRepository {
	return &orderRepository{s: s}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.s.write(ctx, func() error {
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}
		for _, o := range r.s.orders {
			if o.OrderNumber == order.OrderNumber || o.Sequence == order.Sequence {
				return apperror.NewConflictError("Order already exists")
			}
		}
		r.s.stamp(&order.CreatedAt, &order.UpdatedAt)
		for i := range order.Lines {
			line := &order.Lines[i]
			if line.ID == uuid.Nil {
				line.ID = uuid.New()
			}
			line.OrderID = order.ID
			r.s.stamp(&line.CreatedAt, nil)
		}
		r.s.orders[order.ID] = storedOrder(order)
		return nil
	})
}

// storedOrder detaches the order from caller-owned slices and relations
func storedOrder(order *entity.Order) entity.Order {
	stored := *order
	stored.Customer = nil
	stored.Lines = append([]entity.OrderLine(nil), order.Lines...)
	return stored
}

func (r *orderRepository) hydrate(o entity.Order) *entity.Order {
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	if o.CustomerID != nil {
		if c, ok := r.s.customers[*o.CustomerID]; ok {
			o.Customer = &c
		}
	}
	return &o
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var found *entity.Order
	r.s.read(func() {
		if o, ok := r.s.orders[id]; ok {
			found = r.hydrate(o)
		}
	})
	return found, nil
}

// GetByIDForUpdate needs no row lock; transactions already run one at a time
func (r *orderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepository) GetByNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var found *entity.Order
	r.s.read(func() {
		for _, o := range r.s.orders {
			if o.OrderNumber == orderNumber {
				found = r.hydrate(o)
				return
			}
		}
	})
	return found, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.s.write(ctx, func() error {
		stored, ok := r.s.orders[order.ID]
		if !ok {
			return apperror.NewNotFoundError("Order")
		}
		stored.Status = order.Status
		stored.PaidAt = order.PaidAt
		stored.CanceledAt = order.CanceledAt
		stored.Notes = order.Notes
		r.s.stamp(nil, &stored.UpdatedAt)
		order.UpdatedAt = stored.UpdatedAt
		r.s.orders[order.ID] = stored
		return nil
	})
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	r.s.read(func() {
		for _, o := range r.s.orders {
			if !matches(params.Search, o.OrderNumber, o.CustomerName) {
				continue
			}
			if !within(o.CreatedAt, params.StartDate, params.EndDate) {
				continue
			}
			if params.Status != nil && o.Status != *params.Status {
				continue
			}
			if params.PaymentMethod != nil && o.PaymentMethod != *params.PaymentMethod {
				continue
			}
			if params.CustomerID != nil && (o.CustomerID == nil || *o.CustomerID != *params.CustomerID) {
				continue
			}
			orders = append(orders, *r.hydrate(o))
		}
	})

	asc := params.SortOrder == "asc" || params.SortOrder == "ASC"
	sort.SliceStable(orders, func(i, j int) bool {
		if asc {
			return orders[i].Sequence < orders[j].Sequence
		}
		return orders[i].Sequence > orders[j].Sequence
	})

	return paginate(orders, params.Pagination), int64(len(orders)), nil
}

// NextSequence relies on the caller holding the store transaction, which
// serializes allocation the way the advisory lock does in PostgreSQL.
func (r *orderRepository) NextSequence(ctx context.Context) (int, error) {
	if !inTx(ctx) {
		return 0, errors.New("order sequence must be allocated inside a transaction")
	}
	last := 0
	r.s.read(func() {
		for _, o := range r.s.orders {
			if o.Sequence > last {
				last = o.Sequence
			}
		}
	})
	return last + 1, nil
}
