package quota

import "fmt"

// PlanTier represents a subscription level, ordered free < basic < premium.
type PlanTier string

const (
	PlanTierFree    PlanTier = "free"
	PlanTierBasic   PlanTier = "basic"
	PlanTierPremium PlanTier = "premium"
)

// IsValid checks if the plan tier is known.
func (t PlanTier) IsValid() bool {
	return t == PlanTierFree || t == PlanTierBasic || t == PlanTierPremium
}

// String returns the string representation of the plan tier.
func (t PlanTier) String() string {
	return string(t)
}

// NewPlanTier creates a PlanTier from a string.
func NewPlanTier(s string) (PlanTier, error) {
	t := PlanTier(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid plan tier: %s, must be 'free', 'basic', or 'premium'", s)
	}
	return t, nil
}

// rank orders tiers for comparison.
func (t PlanTier) rank() int {
	switch t {
	case PlanTierBasic:
		return 1
	case PlanTierPremium:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether the tier grants at least the given tier.
func (t PlanTier) AtLeast(other PlanTier) bool {
	return t.rank() >= other.rank()
}

// ResolvedPlan is the outcome of plan resolution for one quota check.
// Tier is the stored tier; Trialing grants premium limits without changing
// the stored tier.
type ResolvedPlan struct {
	Tier     PlanTier
	Trialing bool
}

// EffectiveTier returns the tier whose limits apply.
func (p ResolvedPlan) EffectiveTier() PlanTier {
	if p.Trialing {
		return PlanTierPremium
	}
	return p.Tier
}

// Limits returns the ceilings that apply to this resolution.
func (p ResolvedPlan) Limits() PlanLimits {
	return LimitsForTier(p.EffectiveTier())
}

// String renders the plan for headers and payloads, marking trials.
func (p ResolvedPlan) String() string {
	if p.Trialing {
		return p.Tier.String() + " (trial)"
	}
	return p.Tier.String()
}
