package dto

type SetPlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free pro premium"`
}

// UsageEntry - пара {used, limit}, limit=nil значит безлимит
type UsageEntry struct {
	Used  int  `json:"used"`
	Limit *int `json:"limit"`
}

type SubscriptionMeResponse struct {
	Plan              string                `json:"plan"`
	PlanDisplayName   string                `json:"plan_display_name"`
	PriceMonthlyCents *int                  `json:"price_monthly_cents"`
	PriceYearlyCents  *int                  `json:"price_yearly_cents"`
	Currency          string                `json:"currency"`
	Usage             map[string]UsageEntry `json:"usage"`
}

type DashboardStatsResponse struct {
	JobsSaved        int64 `json:"jobs_saved"`
	ApplicationsSent int64 `json:"applications_sent"`
	ResumesUploaded  int64 `json:"resumes_uploaded"`
}
