package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"remedia/internal/domain/quota"
	"remedia/internal/infrastructure/persistence/models"
	"remedia/internal/shared/biztime"
	"remedia/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and
	// serializes writers the way a pooled MySQL row lock would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.UsageRecordModel{}, &models.FavoriteModel{}))
	return db
}

func newTestUsageRepo(t *testing.T) quota.UsageRecordRepository {
	t.Helper()
	return NewUsageRecordRepository(setupTestDB(t), logger.NewLogger())
}

func TestGetOrCreate_CreatesZeroedRow(t *testing.T) {
	repo := newTestUsageRepo(t)
	day := biztime.TodayUTC()

	record, err := repo.GetOrCreate(context.Background(), "session:s-1", day)

	require.NoError(t, err)
	assert.Equal(t, "session:s-1", record.IdentityID())
	assert.True(t, day.Equal(record.Day()))
	assert.Zero(t, record.Total())
}

func TestGetOrCreate_Idempotent(t *testing.T) {
	repo := newTestUsageRepo(t)
	day := biztime.TodayUTC()
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "session:s-1", day)
	require.NoError(t, err)

	second, err := repo.GetOrCreate(ctx, "session:s-1", day)
	require.NoError(t, err)

	assert.Equal(t, first.ID(), second.ID())
}

func TestGetOrCreate_TruncatesToUTCDate(t *testing.T) {
	repo := newTestUsageRepo(t)
	ctx := context.Background()

	loc := time.FixedZone("UTC+9", 9*3600)
	late := time.Date(2026, 3, 15, 23, 45, 0, 0, loc) // 14:45 UTC on Mar 15

	record, err := repo.GetOrCreate(ctx, "session:s-1", late)
	require.NoError(t, err)

	assert.True(t, record.Day().Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
}

func TestIncrementBy_CreatesAndAdds(t *testing.T) {
	repo := newTestUsageRepo(t)
	day := biztime.TodayUTC()
	ctx := context.Background()

	record, err := repo.IncrementBy(ctx, "session:s-1", day, quota.UsageTypeSearches, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, record.Searches())

	record, err = repo.IncrementBy(ctx, "session:s-1", day, quota.UsageTypeSearches, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, record.Searches())

	record, err = repo.IncrementBy(ctx, "session:s-1", day, quota.UsageTypeAISearches, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, record.AISearches())
	assert.Equal(t, 3, record.Searches())
}

func TestIncrementBy_SeparateDaysSeparateRows(t *testing.T) {
	repo := newTestUsageRepo(t)
	ctx := context.Background()
	today := biztime.TodayUTC()
	yesterday := today.AddDate(0, 0, -1)

	_, err := repo.IncrementBy(ctx, "session:s-1", yesterday, quota.UsageTypeSearches, 9)
	require.NoError(t, err)

	todayRecord, err := repo.IncrementBy(ctx, "session:s-1", today, quota.UsageTypeSearches, 1)
	require.NoError(t, err)

	// Yesterday's count never bleeds into today: a new date means a fresh
	// row, so the reset needs no scheduled job.
	assert.Equal(t, 1, todayRecord.Searches())

	yesterdayRecord, err := repo.GetOrCreate(ctx, "session:s-1", yesterday)
	require.NoError(t, err)
	assert.Equal(t, 9, yesterdayRecord.Searches())
}

func TestIncrementBy_SeparateIdentities(t *testing.T) {
	repo := newTestUsageRepo(t)
	ctx := context.Background()
	day := biztime.TodayUTC()

	_, err := repo.IncrementBy(ctx, "user:u-1", day, quota.UsageTypeSearches, 5)
	require.NoError(t, err)

	other, err := repo.GetOrCreate(ctx, "session:u-1", day)
	require.NoError(t, err)
	assert.Zero(t, other.Searches())
}

func TestIncrementBy_ConcurrentIncrementsAllLand(t *testing.T) {
	repo := newTestUsageRepo(t)
	day := biztime.TodayUTC()
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementBy(ctx, "session:s-1", day, quota.UsageTypeSearches, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	record, err := repo.GetOrCreate(ctx, "session:s-1", day)
	require.NoError(t, err)
	assert.Equal(t, workers, record.Searches())
}

func TestGetRange_MostRecentFirst(t *testing.T) {
	repo := newTestUsageRepo(t)
	ctx := context.Background()
	today := biztime.TodayUTC()

	for _, daysAgo := range []int{0, 2, 5} {
		_, err := repo.IncrementBy(ctx, "user:u-1", today.AddDate(0, 0, -daysAgo), quota.UsageTypeSearches, daysAgo+1)
		require.NoError(t, err)
	}

	records, err := repo.GetRange(ctx, "user:u-1", today.AddDate(0, 0, -6), today)
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.True(t, records[0].Day().Equal(today))
	assert.True(t, records[1].Day().Equal(today.AddDate(0, 0, -2)))
	assert.True(t, records[2].Day().Equal(today.AddDate(0, 0, -5)))
}

func TestGetRange_WindowExcludesOutside(t *testing.T) {
	repo := newTestUsageRepo(t)
	ctx := context.Background()
	today := biztime.TodayUTC()

	_, err := repo.IncrementBy(ctx, "user:u-1", today.AddDate(0, 0, -10), quota.UsageTypeSearches, 1)
	require.NoError(t, err)
	_, err = repo.IncrementBy(ctx, "user:u-1", today, quota.UsageTypeSearches, 1)
	require.NoError(t, err)

	records, err := repo.GetRange(ctx, "user:u-1", today.AddDate(0, 0, -6), today)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.True(t, records[0].Day().Equal(today))
}
