package service

import (
	"context"
	"encoding/json"
	"testing"

	"budget-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSettingsRepo struct {
	stored *model.AppSetting
}

func (f *fakeSettingsRepo) Get(_ context.Context, key string) (*model.AppSetting, error) {
	if f.stored == nil || f.stored.Key != key {
		return nil, gorm.ErrRecordNotFound
	}
	return f.stored, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, setting *model.AppSetting) error {
	f.stored = setting
	return nil
}

func TestMergeSettings(t *testing.T) {
	defaults := Settings{"currency": "USD", "theme": "light"}

	merged := MergeSettings(defaults, Settings{"theme": "dark", "custom": "x"})

	assert.Equal(t, "USD", merged["currency"])
	assert.Equal(t, "dark", merged["theme"])
	assert.Equal(t, "x", merged["custom"])

	// Inputs stay untouched.
	assert.Equal(t, "light", defaults["theme"])
}

func TestSettingsLoadDefaultsWhenEmpty(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	settings, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettingsSaveThenLoad(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	saved, err := svc.Save(context.Background(), Settings{"currency": "EUR"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", saved["currency"])
	assert.Equal(t, "light", saved["theme"], "untouched keys keep their defaults")

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestSettingsExportImportRoundTrip(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.Save(context.Background(), Settings{"currency": "GBP", "custom_flag": true})
	require.NoError(t, err)

	raw, err := svc.Export(context.Background())
	require.NoError(t, err)

	var decoded Settings
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "GBP", decoded["currency"])

	fresh := NewSettingsService(&fakeSettingsRepo{})
	imported, err := fresh.Import(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "GBP", imported["currency"])
	assert.Equal(t, true, imported["custom_flag"])
}

func TestSettingsImportRejectsGarbage(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	_, err := svc.Import(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
