package models

import "time"

// FavoriteModel represents the database persistence model for saved
// remedies. Exactly one of UserID and SessionID is meaningful per row.
type FavoriteModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    string `gorm:"size:64;index:idx_favorite_user"`
	SessionID string `gorm:"size:36;index:idx_favorite_session"`
	RemedyID  string `gorm:"size:64;not null"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (FavoriteModel) TableName() string {
	return "favorites"
}
