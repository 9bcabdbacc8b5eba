package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlanTier(t *testing.T) {
	tier, err := NewPlanTier("basic")
	assert.NoError(t, err)
	assert.Equal(t, PlanTierBasic, tier)

	_, err = NewPlanTier("enterprise")
	assert.Error(t, err)

	_, err = NewPlanTier("")
	assert.Error(t, err)
}

func TestPlanTier_AtLeast(t *testing.T) {
	assert.True(t, PlanTierPremium.AtLeast(PlanTierBasic))
	assert.True(t, PlanTierBasic.AtLeast(PlanTierBasic))
	assert.False(t, PlanTierFree.AtLeast(PlanTierBasic))
}

func TestResolvedPlan_TrialGrantsPremiumLimits(t *testing.T) {
	plan := ResolvedPlan{Tier: PlanTierFree, Trialing: true}

	assert.Equal(t, PlanTierPremium, plan.EffectiveTier())
	assert.Equal(t, LimitsForTier(PlanTierPremium), plan.Limits())
	// The stored tier is reported unchanged, only marked.
	assert.Equal(t, "free (trial)", plan.String())
}

func TestResolvedPlan_NoTrial(t *testing.T) {
	plan := ResolvedPlan{Tier: PlanTierBasic}

	assert.Equal(t, PlanTierBasic, plan.EffectiveTier())
	assert.Equal(t, LimitsForTier(PlanTierBasic), plan.Limits())
	assert.Equal(t, "basic", plan.String())
}
