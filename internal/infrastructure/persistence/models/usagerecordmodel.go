package models

import (
	"time"
)

// UsageRecordModel represents the database persistence model for daily
// usage counters. One row per (identity, UTC date); the composite unique
// index is what makes the upsert-and-add increment atomic.
type UsageRecordModel struct {
	ID          uint      `gorm:"primarykey"`
	IdentityID  string    `gorm:"size:64;not null;uniqueIndex:idx_identity_day"`
	Day         time.Time `gorm:"not null;uniqueIndex:idx_identity_day"`
	Searches    int       `gorm:"not null;default:0"`
	AISearches  int       `gorm:"column:ai_searches;not null;default:0"`
	Exports     int       `gorm:"not null;default:0"`
	Comparisons int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (UsageRecordModel) TableName() string {
	return "usage_records"
}
