package memory

import (
	"context"

	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
)

type settingsRepository struct {
	s *Store
}

// NewSettingsRepository creates a settings repository backed by s
func NewSettingsRepository(s *Store) domainRepo.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var found *entity.StoreSettings
	r.s.read(func() {
		if r.s.settings != nil {
			clone := *r.s.settings
			found = &clone
		}
	})
	return found, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *entity.StoreSettings) error {
	return r.s.write(ctx, func() error {
		settings.ID = entity.StoreSettingsID
		r.s.stamp(nil, &settings.UpdatedAt)
		clone := *settings
		r.s.settings = &clone
		return nil
	})
}
