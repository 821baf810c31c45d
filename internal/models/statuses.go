package models

type Plan string
type ApplicationStatus string

const (
	PlanFree    Plan = "free"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"

	ApplicationStatusViewed      ApplicationStatus = "viewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRedirected  ApplicationStatus = "redirected"
)

// Ordinal returns the tier rank used for feature-lock comparisons.
// Unknown plans rank below free.
func (p Plan) Ordinal() int {
	switch p {
	case PlanFree:
		return 0
	case PlanPro:
		return 1
	case PlanPremium:
		return 2
	default:
		return -1
	}
}

// Valid reports whether the plan is one of the known tiers.
func (p Plan) Valid() bool {
	return p == PlanFree || p == PlanPro || p == PlanPremium
}

// Valid reports whether the status is one of the recorded job actions.
func (s ApplicationStatus) Valid() bool {
	return s == ApplicationStatusViewed || s == ApplicationStatusShortlisted || s == ApplicationStatusRedirected
}
