package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

type invoiceRepository struct {
	s *Store
}

// NewInvoiceRepository creates a supplier invoice repository backed by s
func NewInvoiceRepository(s *Store) domainRepo.InvoiceRepository {
	return &invoiceRepository{s: s}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	return r.s.write(ctx, func() error {
		if invoice.ID == uuid.Nil {
			invoice.ID = uuid.New()
		}
		for _, inv := range r.s.invoices {
			if inv.InvoiceNo == invoice.InvoiceNo {
				return apperror.NewConflictError("Invoice already exists")
			}
		}
		r.s.stamp(&invoice.CreatedAt, &invoice.UpdatedAt)
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			if line.ID == uuid.Nil {
				line.ID = uuid.New()
			}
			line.InvoiceID = invoice.ID
			r.s.stamp(&line.CreatedAt, nil)
		}
		stored := *invoice
		stored.Supplier = nil
		stored.Lines = make([]entity.InvoiceLine, len(invoice.Lines))
		for i, l := range invoice.Lines {
			l.Product = nil
			stored.Lines[i] = l
		}
		r.s.invoices[invoice.ID] = stored
		return nil
	})
}

func (r *invoiceRepository) hydrate(inv entity.Invoice) *entity.Invoice {
	if inv.SupplierID != nil {
		if s, ok := r.s.suppliers[*inv.SupplierID]; ok {
			inv.Supplier = &s
		}
	}
	lines := make([]entity.InvoiceLine, len(inv.Lines))
	for i, l := range inv.Lines {
		if p, ok := r.s.products[l.ProductID]; ok {
			l.Product = &p
		}
		lines[i] = l
	}
	inv.Lines = lines
	return &inv
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var found *entity.Invoice
	r.s.read(func() {
		if inv, ok := r.s.invoices[id]; ok {
			found = r.hydrate(inv)
		}
	})
	return found, nil
}

func (r *invoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	var found *entity.Invoice
	r.s.read(func() {
		for _, inv := range r.s.invoices {
			if inv.InvoiceNo == invoiceNo {
				found = r.hydrate(inv)
				return
			}
		}
	})
	return found, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	return r.s.write(ctx, func() error {
		stored, ok := r.s.invoices[invoice.ID]
		if !ok {
			return apperror.NewNotFoundError("Invoice")
		}
		stored.Status = invoice.Status
		stored.ReceivedAt = invoice.ReceivedAt
		stored.Notes = invoice.Notes
		r.s.stamp(nil, &stored.UpdatedAt)
		r.s.invoices[invoice.ID] = stored
		return nil
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func() error {
		delete(r.s.invoices, id)
		return nil
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	r.s.read(func() {
		for _, inv := range r.s.invoices {
			if !matches(params.Search, inv.InvoiceNo) || !within(inv.Date, params.StartDate, params.EndDate) {
				continue
			}
			if params.Status != nil && inv.Status != *params.Status {
				continue
			}
			if params.SupplierID != nil && (inv.SupplierID == nil || *inv.SupplierID != *params.SupplierID) {
				continue
			}
			invoices = append(invoices, *r.hydrate(inv))
		}
	})
	sort.SliceStable(invoices, func(i, j int) bool {
		if !invoices[i].Date.Equal(invoices[j].Date) {
			return invoices[i].Date.After(invoices[j].Date)
		}
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
	return paginate(invoices, params.Pagination), int64(len(invoices)), nil
}
