package memory

import (
	"github.com/google/uuid"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/money"
	"github.com/sangkips/bebidas-pos/pkg/utils"
)

// NewSeeded creates a store with a small beverage catalog for demo mode
func NewSeeded() *Store {
	s := NewStore()
	catalog := []struct {
		code, name, category string
		cost, price          string
		qty, alert           int
	}{
		{"CERV-LATA-350", "Cerveja Lata 350ml", "cerveja", "2.90", "4.90", 240, 48},
		{"CERV-LONG-355", "Cerveja Long Neck 355ml", "cerveja", "4.10", "6.50", 120, 24},
		{"CERV-LITRAO", "Cerveja Litrão 1L", "cerveja", "6.20", "9.90", 60, 12},
		{"REFRI-2L", "Refrigerante 2L", "refrigerante", "5.40", "8.99", 80, 12},
		{"REFRI-LATA", "Refrigerante Lata 350ml", "refrigerante", "2.20", "4.50", 150, 24},
		{"AGUA-500", "Água Mineral 500ml", "agua", "0.90", "2.50", 200, 36},
		{"AGUA-GAS-500", "Água com Gás 500ml", "agua", "1.20", "3.00", 96, 24},
		{"ENERG-473", "Energético 473ml", "energetico", "5.80", "9.50", 48, 12},
		{"GELO-5KG", "Gelo 5kg", "gelo", "6.00", "12.00", 30, 10},
		{"CARVAO-4KG", "Carvão 4kg", "outros", "11.00", "19.90", 20, 5},
	}
	now := s.now()
	for _, item := range catalog {
		p := entity.Product{
			ID:            uuid.New(),
			Name:          item.name,
			Slug:          utils.Slugify(item.name),
			Code:          item.code,
			Category:      item.category,
			Quantity:      item.qty,
			QuantityAlert: item.alert,
			CostPrice:     money.MustParse(item.cost),
			SalePrice:     money.MustParse(item.price),
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		s.products[p.ID] = p
	}
	s.settings = entity.DefaultStoreSettings()
	return s
}
