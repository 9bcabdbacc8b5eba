package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithinLimit_Boundaries(t *testing.T) {
	// Admission is pre-increment: the Nth action is admitted at count N-1
	// and refused at count N.
	assert.True(t, WithinLimit(0, 10))
	assert.True(t, WithinLimit(9, 10))
	assert.False(t, WithinLimit(10, 10))
	assert.False(t, WithinLimit(11, 10))
}

func TestWithinLimit_Unlimited(t *testing.T) {
	assert.True(t, WithinLimit(0, Unlimited))
	assert.True(t, WithinLimit(1000000, Unlimited))
}

func TestWithinLimit_ZeroLimit(t *testing.T) {
	assert.False(t, WithinLimit(0, 0))
}

func TestLimitsForTier(t *testing.T) {
	free := LimitsForTier(PlanTierFree)
	assert.Equal(t, 10, free.Searches)
	assert.Equal(t, 3, free.AISearches)
	assert.Equal(t, 1, free.Exports)
	assert.Equal(t, 2, free.Comparisons)
	assert.Equal(t, 10, free.Favorites)

	basic := LimitsForTier(PlanTierBasic)
	assert.Equal(t, 50, basic.Searches)
	assert.Equal(t, 20, basic.AISearches)

	premium := LimitsForTier(PlanTierPremium)
	assert.Equal(t, Unlimited, premium.Searches)
	assert.Equal(t, Unlimited, premium.AISearches)
	assert.Equal(t, Unlimited, premium.Exports)
	assert.Equal(t, Unlimited, premium.Comparisons)
	assert.Equal(t, Unlimited, premium.Favorites)
}

func TestLimitsForTier_UnknownFailsClosed(t *testing.T) {
	assert.Equal(t, LimitsForTier(PlanTierFree), LimitsForTier(PlanTier("enterprise")))
}

func TestLimitFor(t *testing.T) {
	limits := LimitsForTier(PlanTierFree)

	assert.Equal(t, 10, limits.LimitFor(UsageTypeSearches))
	assert.Equal(t, 3, limits.LimitFor(UsageTypeAISearches))
	assert.Equal(t, 1, limits.LimitFor(UsageTypeExports))
	assert.Equal(t, 2, limits.LimitFor(UsageTypeComparisons))
	assert.Equal(t, 0, limits.LimitFor(UsageType("bogus")))
}
