package account

import (
	"errors"
	"time"

	"remedia/internal/domain/quota"
)

// SubscriptionStatus is the billing status of a stored subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
)

// IsActive reports whether the subscription grants its plan's limits.
func (s SubscriptionStatus) IsActive() bool {
	return s == SubscriptionStatusActive
}

// String returns the string representation of the status.
func (s SubscriptionStatus) String() string {
	return string(s)
}

// Subscription is the stored (plan, status) pair for a user, maintained by
// the external billing integration and read here during plan resolution.
type Subscription struct {
	id        uint
	userID    string
	plan      quota.PlanTier
	status    SubscriptionStatus
	updatedAt time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(id uint, userID string, plan quota.PlanTier, status SubscriptionStatus, updatedAt time.Time) (*Subscription, error) {
	if userID == "" {
		return nil, errors.New("subscription user ID cannot be empty")
	}
	return &Subscription{
		id:        id,
		userID:    userID,
		plan:      plan,
		status:    status,
		updatedAt: updatedAt,
	}, nil
}

func (s *Subscription) ID() uint {
	return s.id
}

func (s *Subscription) UserID() string {
	return s.userID
}

func (s *Subscription) Plan() quota.PlanTier {
	return s.plan
}

func (s *Subscription) Status() SubscriptionStatus {
	return s.status
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}
