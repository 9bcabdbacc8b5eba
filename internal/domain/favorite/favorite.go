// Package favorite holds the saved-remedy resource whose access is gated
// by ownership checks. It is representative of the identity-scoped
// resources this layer protects (favorites, search history, journal and
// medication entries all carry the same userID/sessionID ownership pair).
package favorite

import (
	"errors"
	"time"
)

// Favorite is a saved remedy owned by either an authenticated user or an
// anonymous session, never meaningfully both. Once userID is set the
// resource is permanently owned by that authenticated identity.
type Favorite struct {
	id        uint
	userID    string
	sessionID string
	remedyID  string
	createdAt time.Time
}

// ReconstructFavorite rebuilds a favorite from persistence. Empty strings
// represent null ownership columns.
func ReconstructFavorite(id uint, userID, sessionID, remedyID string, createdAt time.Time) (*Favorite, error) {
	if remedyID == "" {
		return nil, errors.New("favorite remedy ID cannot be empty")
	}
	return &Favorite{
		id:        id,
		userID:    userID,
		sessionID: sessionID,
		remedyID:  remedyID,
		createdAt: createdAt,
	}, nil
}

func (f *Favorite) ID() uint {
	return f.id
}

func (f *Favorite) UserID() string {
	return f.userID
}

func (f *Favorite) SessionID() string {
	return f.sessionID
}

func (f *Favorite) RemedyID() string {
	return f.remedyID
}

func (f *Favorite) CreatedAt() time.Time {
	return f.createdAt
}
