package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"budget-backend/internal/model"
	"budget-backend/internal/repository"

	"gorm.io/gorm"
)

// Settings is the flat key-value application settings blob. It is always an
// explicit value passed around, loaded and saved through this service.
type Settings map[string]interface{}

// DefaultSettings returns the baseline every load and import merges over.
func DefaultSettings() Settings {
	return Settings{
		"currency":            "USD",
		"date_format":         "2006-01-02",
		"fiscal_year_start":   "01",
		"items_per_page":      float64(20),
		"email_notifications": true,
		"theme":               "light",
	}
}

// MergeSettings overlays overrides onto defaults without mutating either.
// Unknown keys are kept, so older exports survive a round trip.
func MergeSettings(defaults, overrides Settings) Settings {
	merged := make(Settings, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// SettingsService exposes the load / merge-defaults / save cycle plus JSON
// export and import of the whole blob.
type SettingsService interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, overrides Settings) (Settings, error)
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) (Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// Load reads the stored blob and merges it over defaults. A missing row is
// not an error, defaults apply.
func (s *settingsService) Load(ctx context.Context) (Settings, error) {
	stored, err := s.repo.Get(ctx, model.SettingsKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var overrides Settings
	if err := json.Unmarshal([]byte(stored.Value), &overrides); err != nil {
		return nil, fmt.Errorf("stored settings are corrupt: %w", err)
	}
	return MergeSettings(DefaultSettings(), overrides), nil
}

func (s *settingsService) Save(ctx context.Context, overrides Settings) (Settings, error) {
	merged := MergeSettings(DefaultSettings(), overrides)

	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize settings: %w", err)
	}

	if err := s.repo.Upsert(ctx, &model.AppSetting{Key: model.SettingsKey, Value: string(raw)}); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return merged, nil
}

func (s *settingsService) Export(ctx context.Context) ([]byte, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(settings, "", "  ")
}

func (s *settingsService) Import(ctx context.Context, raw []byte) (Settings, error) {
	var overrides Settings
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}
	return s.Save(ctx, overrides)
}
