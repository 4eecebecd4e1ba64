package models

import "time"

// SettingModel is a key-value row holding one settings section as JSON text.
// Decoding and healing of the value happens in the settings service, which
// knows the expected shape per key.
type SettingModel struct {
	Key       string    `gorm:"type:varchar(50);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}
