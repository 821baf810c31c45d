// Package plans holds the static freemium limit tables. This is the
// single source of truth for plan caps and feature locks; nothing here
// touches storage.
package plans

import "pathpilot_backend/internal/models"

// Limits describes one tier. A nil cap means unlimited.
type Limits struct {
	ResumeAIPerMonth  *int
	ChatPerMonth      *int
	RedirectsPerMonth *int
	JobSaveLimit      *int

	AIJobRecommendations    bool
	ResumeTailoringPerJob   bool
	PriorityMatchScoring    bool
	SkillGapAnalysis        bool
	UnlimitedResumeVersions bool
	CareerRoadmap           bool
	AIMockInterview         bool
}

// Display carries the pricing-page presentation of a tier.
type Display struct {
	Name              string `json:"name"`
	PriceMonthlyCents int    `json:"price_monthly_cents"`
	PriceYearlyCents  *int   `json:"price_yearly_cents"`
	Currency          string `json:"currency"`
}

func intPtr(v int) *int { return &v }

var planLimits = map[models.Plan]Limits{
	models.PlanFree: {
		ResumeAIPerMonth:  intPtr(2),
		ChatPerMonth:      intPtr(10),
		RedirectsPerMonth: intPtr(10),
		JobSaveLimit:      intPtr(10),
	},
	models.PlanPro: {
		ResumeAIPerMonth:  intPtr(20),
		ChatPerMonth:      nil, // unlimited, fair use
		RedirectsPerMonth: intPtr(20),
		JobSaveLimit:      nil,

		AIJobRecommendations:  true,
		ResumeTailoringPerJob: true,
		PriorityMatchScoring:  true,
		SkillGapAnalysis:      true,
	},
	models.PlanPremium: {
		AIJobRecommendations:    true,
		ResumeTailoringPerJob:   true,
		PriorityMatchScoring:    true,
		SkillGapAnalysis:        true,
		UnlimitedResumeVersions: true,
		CareerRoadmap:           true,
		AIMockInterview:         true,
	},
}

var planDisplay = map[models.Plan]Display{
	models.PlanFree: {
		Name:              "Explorer",
		PriceMonthlyCents: 0,
		PriceYearlyCents:  intPtr(0),
		Currency:          "EUR",
	},
	models.PlanPro: {
		Name:              "PathPilot Pro",
		PriceMonthlyCents: 1200,
		PriceYearlyCents:  intPtr(9900),
		Currency:          "EUR",
	},
	models.PlanPremium: {
		Name:              "Career Accelerator",
		PriceMonthlyCents: 2900,
		PriceYearlyCents:  nil,
		Currency:          "EUR",
	},
}

// LimitsFor returns the limit table for a plan, falling back to free
// for unknown tiers.
func LimitsFor(plan models.Plan) Limits {
	if l, ok := planLimits[plan]; ok {
		return l
	}
	return planLimits[models.PlanFree]
}

// DisplayFor returns pricing-page info for a plan, defaulting to free.
func DisplayFor(plan models.Plan) Display {
	if d, ok := planDisplay[plan]; ok {
		return d
	}
	return planDisplay[models.PlanFree]
}

// HasPlanAtLeast reports whether plan ranks at or above required.
func HasPlanAtLeast(plan, required models.Plan) bool {
	po := plan.Ordinal()
	if po < 0 {
		po = 0
	}
	ro := required.Ordinal()
	if ro < 0 {
		ro = 0
	}
	return po >= ro
}

// checkConsumption is the shared allow/remaining rule for period-metered
// features: allowed while remaining > 0.
func checkConsumption(cap *int, used int) (bool, *int) {
	if cap == nil {
		return true, nil
	}
	remaining := *cap - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining > 0, &remaining
}

// CheckResumeAI returns (allowed, remaining) for the monthly resume AI cap.
func CheckResumeAI(plan models.Plan, usedThisMonth int) (bool, *int) {
	return checkConsumption(LimitsFor(plan).ResumeAIPerMonth, usedThisMonth)
}

// CheckChatMessages returns (allowed, remaining) for the monthly chat cap.
func CheckChatMessages(plan models.Plan, usedThisMonth int) (bool, *int) {
	return checkConsumption(LimitsFor(plan).ChatPerMonth, usedThisMonth)
}

// CheckRedirects returns (allowed, remaining) for assisted-apply redirects.
func CheckRedirects(plan models.Plan, usedThisMonth int) (bool, *int) {
	return checkConsumption(LimitsFor(plan).RedirectsPerMonth, usedThisMonth)
}

// CheckJobSave is capacity-style: checked against the current saved
// total, allowed while current < cap.
func CheckJobSave(plan models.Plan, currentSaved int) (bool, *int) {
	cap := LimitsFor(plan).JobSaveLimit
	if cap == nil {
		return true, nil
	}
	remaining := *cap - currentSaved
	if remaining < 0 {
		remaining = 0
	}
	return currentSaved < *cap, &remaining
}
