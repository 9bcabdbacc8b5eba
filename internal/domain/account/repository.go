package account

import "context"

// UserRepository reads accounts from the external session/user store.
// Lookups return (nil, nil) when the user does not exist.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

// SubscriptionRepository reads the stored subscription for a user.
// Returns (nil, nil) when the user has no subscription record.
type SubscriptionRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Subscription, error)
}
