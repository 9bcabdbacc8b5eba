package models

import "time"

// SubscriptionModel represents the database persistence model for the
// stored (plan, status) pair maintained by the billing integration.
type SubscriptionModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    string `gorm:"size:64;not null;uniqueIndex:idx_subscription_user"`
	Plan      string `gorm:"size:32;not null;default:free"`
	Status    string `gorm:"size:32;not null;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}
