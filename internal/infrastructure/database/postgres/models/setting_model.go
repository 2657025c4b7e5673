package models

import "time"

// SettingModel is the singleton admin settings row.
type SettingModel struct {
	ID           int  `gorm:"primaryKey"`
	AutoApproved bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (SettingModel) TableName() string {
	return "settings"
}
