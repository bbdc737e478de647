package repository

import (
	"context"
	"errors"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := conn(ctx, r.db).First(&settings, "id = ?", entity.StoreSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, database.TranslateError(err, "Settings")
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.StoreSettings) error {
	settings.ID = entity.StoreSettingsID
	return database.TranslateError(conn(ctx, r.db).Save(settings).Error, "Settings")
}
