// Package account holds the user and subscription entities this layer
// consumes from external collaborators: the trusted session lookup and the
// stored subscription record.
package account

import (
	"errors"
	"time"
)

var ErrEmptyUserID = errors.New("user ID cannot be empty")

// User is the authenticated account as seen by this layer. TrialEndsAt,
// when set and in the future, grants premium limits without changing the
// stored subscription tier.
type User struct {
	id          string
	email       string
	name        string
	trialEndsAt *time.Time
}

// NewUser creates a user.
func NewUser(id, email, name string) (*User, error) {
	if id == "" {
		return nil, ErrEmptyUserID
	}
	return &User{id: id, email: email, name: name}, nil
}

// ReconstructUser rebuilds a user from persistence.
func ReconstructUser(id, email, name string, trialEndsAt *time.Time) (*User, error) {
	if id == "" {
		return nil, ErrEmptyUserID
	}
	return &User{
		id:          id,
		email:       email,
		name:        name,
		trialEndsAt: trialEndsAt,
	}, nil
}

func (u *User) ID() string {
	return u.id
}

func (u *User) Email() string {
	return u.email
}

func (u *User) Name() string {
	return u.name
}

func (u *User) TrialEndsAt() *time.Time {
	return u.trialEndsAt
}

// IsTrialActive reports whether a trial window covers the given instant.
func (u *User) IsTrialActive(now time.Time) bool {
	return u.trialEndsAt != nil && u.trialEndsAt.After(now)
}
