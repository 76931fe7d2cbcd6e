package models

import "time"

// AISetting is a key-value row for process-wide AI configuration, e.g. the
// admin default-model override. Read fresh per request, never cached in a
// package-level variable.
type AISetting struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

const SettingDefaultModel = "default_model"

func (AISetting) TableName() string {
	return "ai_settings"
}
