package model

import "time"

// SettingsKey is the fixed storage key for the application settings blob.
const SettingsKey = "app_settings"

// AppSetting persists a flat key-value JSON blob of application settings.
// A single row keyed by SettingsKey holds the whole blob; load merges it over
// defaults, save writes the full merged blob back.
type AppSetting struct {
	Key       string    `gorm:"type:varchar(50);primaryKey" json:"key"`
	Value     string    `gorm:"type:jsonb;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
