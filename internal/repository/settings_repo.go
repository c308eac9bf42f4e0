package repository

import (
	"context"

	"budget-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository persists the flat application settings blob.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*model.AppSetting, error)
	Upsert(ctx context.Context, setting *model.AppSetting) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	if err := GetDB(ctx, r.db).First(&setting, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *model.AppSetting) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}
