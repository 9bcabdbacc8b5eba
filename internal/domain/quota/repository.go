package quota

import (
	"context"
	"time"
)

// UsageRecordRepository is the persistent counter store for daily usage
// rows. The increment must be a single atomic upsert-and-add at the
// storage layer, never read-then-write-back, so concurrent bursts for the
// same identity cannot lose updates.
type UsageRecordRepository interface {
	// GetOrCreate fetches the row for (identityID, day), lazily creating
	// a zeroed row on first access. The create is idempotent on the
	// composite key; a lost creation race falls back to re-reading.
	GetOrCreate(ctx context.Context, identityID string, day time.Time) (*UsageRecord, error)

	// IncrementBy atomically adds amount to one counter of the
	// (identityID, day) row, creating it when absent, and returns the
	// post-increment row.
	IncrementBy(ctx context.Context, identityID string, day time.Time, usageType UsageType, amount int) (*UsageRecord, error)

	// GetRange returns the rows for identityID with day in [from, to],
	// most recent first. Days with no activity have no row.
	GetRange(ctx context.Context, identityID string, from, to time.Time) ([]*UsageRecord, error)
}

// FavoriteCounter exposes the persistent favorites count that feeds the
// usage summary; favorites do not reset daily.
type FavoriteCounter interface {
	CountByIdentity(ctx context.Context, identityID string) (int64, error)
}
