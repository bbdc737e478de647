package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/enum"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"github.com/sangkips/bebidas-pos/pkg/money"
)

func TestCreateProductGeneratesSlugAndCode(t *testing.T) {
	f := newFixture(t)

	first := f.product(t, "Água com Gás 500ml", "3.00", 10)
	assert.Equal(t, "agua-com-gas-500ml", first.Slug)
	assert.NotEmpty(t, first.Code)

	second := f.product(t, "Água com Gás 500ml", "3.20", 10)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "agua-com-gas-500ml-")

	_, err := f.products.CreateProduct(f.ctx, &CreateProductInput{Name: "X", Code: first.Code, SalePrice: 100})
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	_, err = f.products.CreateProduct(f.ctx, &CreateProductInput{Name: "Sem preço"})
	require.Error(t, err)
	assert.Equal(t, "sale_price", apperror.GetAppError(err).Errors[0].Field)
}

func TestUpdateProduct(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja Lata", "4.90", 10)

	name := "Cerveja Lata Gelada"
	price := money.MustParse("5.20")
	updated, err := f.products.UpdateProduct(f.ctx, &UpdateProductInput{ProductSlug: p.Slug, Name: &name, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "cerveja-lata-gelada", updated.Slug)
	assert.Equal(t, price, updated.SalePrice)

	zero := money.Cents(0)
	_, err = f.products.UpdateProduct(f.ctx, &UpdateProductInput{ProductSlug: updated.Slug, SalePrice: &zero})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = f.products.GetProduct(f.ctx, p.Slug)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

	require.NoError(t, f.products.DeleteProduct(f.ctx, updated.Slug))
	_, err = f.products.GetProductByID(f.ctx, p.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestListProductsDefaultsToName(t *testing.T) {
	f := newFixture(t)
	f.product(t, "Refrigerante", "8.99", 10)
	f.product(t, "Água", "2.50", 1)
	f.product(t, "Cerveja", "4.90", 10)

	result, err := f.products.ListProducts(f.ctx, &repository.ProductFilterParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Cerveja", result.Items[0].Name)
	assert.Equal(t, int64(3), result.Pagination.Total)

	low, err := f.products.GetLowStockProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Água", low[0].Name)
}

func TestCustomerAndSupplierCRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.customers.CreateCustomer(f.ctx, &CreateCustomerInput{Name: "  "})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	c, err := f.customers.CreateCustomer(f.ctx, &CreateCustomerInput{Name: "Dona Maria"})
	require.NoError(t, err)
	name := "Maria da Silva"
	c, err = f.customers.UpdateCustomer(f.ctx, &UpdateCustomerInput{ID: c.ID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, c.Name)

	list, err := f.customers.ListCustomers(f.ctx, nil, "silva")
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	require.NoError(t, f.customers.DeleteCustomer(f.ctx, c.ID))

	_, err = f.suppliers.CreateSupplier(f.ctx, &CreateSupplierInput{Name: "Cervejaria", Type: "pirate"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	f := newFixture(t)

	settings, err := f.settings.GetSettings(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "BRL", settings.Currency)

	_, err = f.settings.UpdateSettings(f.ctx, &UpdateSettingsInput{})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	saved, err := f.settings.UpdateSettings(f.ctx, &UpdateSettingsInput{StoreName: "Adega", Currency: "brl"})
	require.NoError(t, err)
	assert.Equal(t, "BRL", saved.Currency)
}

// sellAfterRead commits a sale right after the product is read for an edit
type sellAfterRead struct {
	repository.ProductRepository
	sell func()
}

func (r *sellAfterRead) GetBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	p, err := r.ProductRepository.GetBySlug(ctx, slug)
	if r.sell != nil {
		sell := r.sell
		r.sell = nil
		sell()
	}
	return p, err
}

func TestUpdateProductKeepsStockSoldDuringEdit(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja Lata", "4.90", 5)

	repo := &sellAfterRead{ProductRepository: f.productRepo, sell: func() {
		f.sell(t, enum.PaymentMethodCash, OrderItemInput{ProductID: p.ID, Quantity: 3})
	}}
	price := money.MustParse("5.50")
	updated, err := NewProductService(repo).UpdateProduct(f.ctx, &UpdateProductInput{ProductSlug: p.Slug, SalePrice: &price})
	require.NoError(t, err)
	assert.Equal(t, price, updated.SalePrice)
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, 2, f.stock(t, p.ID))
}

func TestUpdateProductStockCount(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Cerveja Lata", "4.90", 5)

	counted := 42
	updated, err := f.products.UpdateProduct(f.ctx, &UpdateProductInput{ProductSlug: p.Slug, Quantity: &counted})
	require.NoError(t, err)
	assert.Equal(t, 42, updated.Quantity)
	assert.Equal(t, 42, f.stock(t, p.ID))

	negative := -1
	_, err = f.products.UpdateProduct(f.ctx, &UpdateProductInput{ProductSlug: p.Slug, Quantity: &negative})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, 42, f.stock(t, p.ID))
}
