// Package quota holds the per-identity daily usage model and plan tier
// resolution rules.
package quota

import "fmt"

// UsageType identifies a rate-limited action tracked per identity per day.
type UsageType string

const (
	UsageTypeSearches    UsageType = "searches"
	UsageTypeAISearches  UsageType = "ai_searches"
	UsageTypeExports     UsageType = "exports"
	UsageTypeComparisons UsageType = "comparisons"
)

// AllUsageTypes returns the tracked usage types in display order.
func AllUsageTypes() []UsageType {
	return []UsageType{UsageTypeSearches, UsageTypeAISearches, UsageTypeExports, UsageTypeComparisons}
}

// IsValid checks if the usage type is tracked.
func (t UsageType) IsValid() bool {
	switch t {
	case UsageTypeSearches, UsageTypeAISearches, UsageTypeExports, UsageTypeComparisons:
		return true
	default:
		return false
	}
}

// String returns the string representation of the usage type.
func (t UsageType) String() string {
	return string(t)
}

// NewUsageType creates a UsageType from a string.
func NewUsageType(s string) (UsageType, error) {
	t := UsageType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid usage type: %s, must be 'searches', 'ai_searches', 'exports', or 'comparisons'", s)
	}
	return t, nil
}
