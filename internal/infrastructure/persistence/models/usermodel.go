package models

import "time"

// UserModel represents the database persistence model for accounts
// maintained by the external auth integration; this layer only reads it.
type UserModel struct {
	ID          string `gorm:"primarykey;size:64"`
	Email       string `gorm:"size:255;uniqueIndex"`
	Name        string `gorm:"size:255"`
	TrialEndsAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
