package quota

// Unlimited is the sentinel ceiling meaning no limit applies.
const Unlimited = -1

// PlanLimits holds the integer ceilings per usage type for one tier.
// Favorites is a persistent count, not a daily counter, but shares the
// same ceiling semantics.
type PlanLimits struct {
	Searches    int
	AISearches  int
	Exports     int
	Comparisons int
	Favorites   int
}

var tierLimits = map[PlanTier]PlanLimits{
	PlanTierFree: {
		Searches:    10,
		AISearches:  3,
		Exports:     1,
		Comparisons: 2,
		Favorites:   10,
	},
	PlanTierBasic: {
		Searches:    50,
		AISearches:  20,
		Exports:     10,
		Comparisons: 10,
		Favorites:   100,
	},
	PlanTierPremium: {
		Searches:    Unlimited,
		AISearches:  Unlimited,
		Exports:     Unlimited,
		Comparisons: Unlimited,
		Favorites:   Unlimited,
	},
}

// LimitsForTier returns the ceilings for a tier. Unknown tiers fail closed
// to the free limits.
func LimitsForTier(tier PlanTier) PlanLimits {
	if limits, ok := tierLimits[tier]; ok {
		return limits
	}
	return tierLimits[PlanTierFree]
}

// LimitFor returns the ceiling for a daily usage type.
func (l PlanLimits) LimitFor(t UsageType) int {
	switch t {
	case UsageTypeSearches:
		return l.Searches
	case UsageTypeAISearches:
		return l.AISearches
	case UsageTypeExports:
		return l.Exports
	case UsageTypeComparisons:
		return l.Comparisons
	default:
		return 0
	}
}

// WithinLimit applies the admission rule: an action is allowed when the
// count before incrementing is strictly below the ceiling, so the Nth
// allowed action brings the count to the limit and the (N+1)th is refused.
func WithinLimit(current, limit int) bool {
	if limit == Unlimited {
		return true
	}
	return current < limit
}
