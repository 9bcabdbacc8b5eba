package quota

import (
	"errors"
	"time"
)

var (
	ErrEmptyIdentity = errors.New("identity ID cannot be empty")
	ErrZeroDay       = errors.New("usage day cannot be zero")
)

// UsageRecord is one row per (identity, UTC calendar date) holding the
// day's action counters. Rows are created lazily on first access and are
// never mutated across day boundaries; a new UTC date means a new row.
type UsageRecord struct {
	id          uint
	identityID  string
	day         time.Time
	searches    int
	aiSearches  int
	exports     int
	comparisons int
	updatedAt   time.Time
}

// NewUsageRecord creates a zeroed record for an identity and day.
func NewUsageRecord(identityID string, day time.Time) (*UsageRecord, error) {
	if identityID == "" {
		return nil, ErrEmptyIdentity
	}
	if day.IsZero() {
		return nil, ErrZeroDay
	}

	return &UsageRecord{
		identityID: identityID,
		day:        day,
		updatedAt:  time.Now().UTC(),
	}, nil
}

// ReconstructUsageRecord rebuilds a record from persistence.
func ReconstructUsageRecord(
	id uint,
	identityID string,
	day time.Time,
	searches int,
	aiSearches int,
	exports int,
	comparisons int,
	updatedAt time.Time,
) (*UsageRecord, error) {
	if identityID == "" {
		return nil, ErrEmptyIdentity
	}
	if day.IsZero() {
		return nil, ErrZeroDay
	}

	return &UsageRecord{
		id:          id,
		identityID:  identityID,
		day:         day,
		searches:    searches,
		aiSearches:  aiSearches,
		exports:     exports,
		comparisons: comparisons,
		updatedAt:   updatedAt,
	}, nil
}

func (r *UsageRecord) ID() uint {
	return r.id
}

func (r *UsageRecord) IdentityID() string {
	return r.identityID
}

func (r *UsageRecord) Day() time.Time {
	return r.day
}

func (r *UsageRecord) Searches() int {
	return r.searches
}

func (r *UsageRecord) AISearches() int {
	return r.aiSearches
}

func (r *UsageRecord) Exports() int {
	return r.exports
}

func (r *UsageRecord) Comparisons() int {
	return r.comparisons
}

func (r *UsageRecord) UpdatedAt() time.Time {
	return r.updatedAt
}

// CountFor returns the day's count for a usage type.
func (r *UsageRecord) CountFor(t UsageType) int {
	switch t {
	case UsageTypeSearches:
		return r.searches
	case UsageTypeAISearches:
		return r.aiSearches
	case UsageTypeExports:
		return r.exports
	case UsageTypeComparisons:
		return r.comparisons
	default:
		return 0
	}
}

// Total returns the sum of all daily counters.
func (r *UsageRecord) Total() int {
	return r.searches + r.aiSearches + r.exports + r.comparisons
}
