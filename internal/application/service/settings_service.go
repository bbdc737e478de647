package service

import (
	"context"
	"strings"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

// SettingsService handles the store settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the store settings, falling back to defaults
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if apperror.IsKind(err, apperror.KindSchemaMissing) {
			return entity.DefaultStoreSettings(), nil
		}
		return nil, err
	}
	if settings == nil {
		return entity.DefaultStoreSettings(), nil
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	StoreName     string
	Address       string
	Phone         string
	TaxID         string
	ReceiptFooter string
	Currency      string
	LowStockAlert bool
}

// UpdateSettings replaces the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, apperror.NewFieldError("store_name", "is required")
	}

	settings := &entity.StoreSettings{
		ID:            entity.StoreSettingsID,
		StoreName:     name,
		Address:       strings.TrimSpace(input.Address),
		Phone:         strings.TrimSpace(input.Phone),
		TaxID:         strings.TrimSpace(input.TaxID),
		ReceiptFooter: strings.TrimSpace(input.ReceiptFooter),
		Currency:      strings.ToUpper(strings.TrimSpace(input.Currency)),
		LowStockAlert: input.LowStockAlert,
	}
	if settings.Currency == "" {
		settings.Currency = "BRL"
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
