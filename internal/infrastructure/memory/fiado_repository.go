package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

type fiadoRepository struct {
	s *Store
}

// NewFiadoRepository creates a fiado receipt repository backed by s
func NewFiadoRepository(s *Store) domainRepo.FiadoRepository {
	return &fiadoRepository{s: s}
}

func (r *fiadoRepository) Create(ctx context.Context, receipt *entity.FiadoReceipt) error {
	return r.s.write(ctx, func() error {
		if receipt.ID == uuid.Nil {
			receipt.ID = uuid.New()
		}
		if receipt.OrderID != nil {
			for _, existing := range r.s.fiado {
				if existing.OrderID != nil && *existing.OrderID == *receipt.OrderID {
					return apperror.NewConflictError("Fiado receipt already exists")
				}
			}
		}
		r.s.stamp(&receipt.CreatedAt, &receipt.UpdatedAt)
		stored := *receipt
		stored.Order = nil
		r.s.fiado[receipt.ID] = stored
		return nil
	})
}

func (r *fiadoRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	var found *entity.FiadoReceipt
	r.s.read(func() {
		if f, ok := r.s.fiado[id]; ok {
			found = &f
		}
	})
	return found, nil
}

func (r *fiadoRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.FiadoReceipt, error) {
	return r.GetByID(ctx, id)
}

func (r *fiadoRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.FiadoReceipt, error) {
	var found *entity.FiadoReceipt
	r.s.read(func() {
		for _, f := range r.s.fiado {
			if f.OrderID != nil && *f.OrderID == orderID {
				clone := f
				found = &clone
				return
			}
		}
	})
	return found, nil
}

func (r *fiadoRepository) Update(ctx context.Context, receipt *entity.FiadoReceipt) error {
	return r.s.write(ctx, func() error {
		if _, ok := r.s.fiado[receipt.ID]; !ok {
			return apperror.NewNotFoundError("Fiado receipt")
		}
		r.s.stamp(nil, &receipt.UpdatedAt)
		stored := *receipt
		stored.Order = nil
		r.s.fiado[receipt.ID] = stored
		return nil
	})
}

func (r *fiadoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.fiado, id)
		return nil
	})
}

func (r *fiadoRepository) List(ctx context.Context, params *domainRepo.FiadoFilterParams) ([]entity.FiadoReceipt, int64, error) {
	var receipts []entity.FiadoReceipt
	r.s.read(func() {
		for _, f := range r.s.fiado {
			if !matches(params.Search, f.CustomerName, deref(f.CustomerPhone), f.Description) {
				continue
			}
			if params.Paid != nil && f.Paid != *params.Paid {
				continue
			}
			if params.OverdueAt != nil && !f.IsOverdue(*params.OverdueAt) {
				continue
			}
			receipts = append(receipts, f)
		}
	})
	sort.SliceStable(receipts, func(i, j int) bool {
		if receipts[i].Paid != receipts[j].Paid {
			return !receipts[i].Paid
		}
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})
	return paginate(receipts, params.Pagination), int64(len(receipts)), nil
}

func (r *fiadoRepository) OpenTotal(ctx context.Context) (money.Cents, int64, error) {
	var total money.Cents
	var count int64
	r.s.read(func() {
		for _, f := range r.s.fiado {
			if !f.Paid {
				total += f.Amount
				count++
			}
		}
	})
	return total, count, nil
}
