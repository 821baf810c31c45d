package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathpilot_backend/internal/models"
)

func TestCheckResumeAI_FreeBoundary(t *testing.T) {
	t.Parallel()

	// free cap is 2: two uses pass, the third is denied
	allowed, remaining := CheckResumeAI(models.PlanFree, 0)
	assert.True(t, allowed)
	require.NotNil(t, remaining)
	assert.Equal(t, 2, *remaining)

	allowed, remaining = CheckResumeAI(models.PlanFree, 1)
	assert.True(t, allowed)
	assert.Equal(t, 1, *remaining)

	allowed, remaining = CheckResumeAI(models.PlanFree, 2)
	assert.False(t, allowed)
	assert.Equal(t, 0, *remaining)

	// overshoot never reports negative remaining
	allowed, remaining = CheckResumeAI(models.PlanFree, 5)
	assert.False(t, allowed)
	assert.Equal(t, 0, *remaining)
}

func TestUnlimitedPlan_AlwaysAllowed(t *testing.T) {
	t.Parallel()

	for _, used := range []int{0, 10, 1000000} {
		allowed, remaining := CheckResumeAI(models.PlanPremium, used)
		assert.True(t, allowed)
		assert.Nil(t, remaining)

		allowed, remaining = CheckChatMessages(models.PlanPro, used)
		assert.True(t, allowed)
		assert.Nil(t, remaining)
	}
}

func TestCheckJobSave_CapacityStyle(t *testing.T) {
	t.Parallel()

	allowed, remaining := CheckJobSave(models.PlanFree, 9)
	assert.True(t, allowed)
	require.NotNil(t, remaining)
	assert.Equal(t, 1, *remaining)

	// at capacity the next save is denied
	allowed, remaining = CheckJobSave(models.PlanFree, 10)
	assert.False(t, allowed)
	assert.Equal(t, 0, *remaining)

	allowed, remaining = CheckJobSave(models.PlanPro, 500)
	assert.True(t, allowed)
	assert.Nil(t, remaining)
}

func TestHasPlanAtLeast(t *testing.T) {
	t.Parallel()

	assert.True(t, HasPlanAtLeast(models.PlanPro, models.PlanFree))
	assert.True(t, HasPlanAtLeast(models.PlanPro, models.PlanPro))
	assert.True(t, HasPlanAtLeast(models.PlanPremium, models.PlanPro))
	assert.False(t, HasPlanAtLeast(models.PlanFree, models.PlanPro))

	// unknown plans rank as free
	assert.True(t, HasPlanAtLeast(models.Plan("enterprise"), models.PlanFree))
	assert.False(t, HasPlanAtLeast(models.Plan("enterprise"), models.PlanPro))
}

func TestLimitsFor_UnknownFallsBackToFree(t *testing.T) {
	t.Parallel()

	l := LimitsFor(models.Plan("nope"))
	require.NotNil(t, l.ResumeAIPerMonth)
	assert.Equal(t, 2, *l.ResumeAIPerMonth)
	assert.False(t, l.AIJobRecommendations)
}

func TestDisplayFor(t *testing.T) {
	t.Parallel()

	d := DisplayFor(models.PlanPro)
	assert.Equal(t, "PathPilot Pro", d.Name)
	assert.Equal(t, 1200, d.PriceMonthlyCents)
	assert.Equal(t, "EUR", d.Currency)

	premium := DisplayFor(models.PlanPremium)
	assert.Nil(t, premium.PriceYearlyCents)
}
