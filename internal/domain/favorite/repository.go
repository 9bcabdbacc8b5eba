package favorite

import "context"

// Repository is the persistence port for favorites. GetByID returns
// (nil, nil) when the favorite does not exist so callers can distinguish
// not-found from storage failure.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Favorite, error)
	Delete(ctx context.Context, id uint) error
	ListByUser(ctx context.Context, userID string) ([]*Favorite, error)
	ListBySession(ctx context.Context, sessionID string) ([]*Favorite, error)
	CountByIdentity(ctx context.Context, identityID string) (int64, error)
}
