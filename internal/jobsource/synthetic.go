package jobsource

import (
	"context"

	"pathpilot_backend/internal/models"
)

// SyntheticSource is the cascade's last rung: a fixed set of
// placeholder jobs parameterized by the query and location, so the
// caller never sees an empty result because of an external outage.
type SyntheticSource struct{}

func NewSyntheticSource() *SyntheticSource { return &SyntheticSource{} }

func (s *SyntheticSource) Name() string { return "synthetic" }

func (s *SyntheticSource) Resolve(ctx context.Context, q models.NormalizedQuery) Result {
	return Found(SyntheticJobs(q.Text, q.Location))
}

func SyntheticJobs(query, location string) []RawJob {
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}

	jobs := []RawJob{
		{
			Title:       pick(query, "Software Engineer"),
			Company:     "Acme Corp",
			Location:    pick(location, "New York, NY"),
			Description: "Join our team. Configure a live job source for real listings.",
			ApplyURL:    "https://example.com/apply",
		},
		{
			Title:       pick(query, "Developer"),
			Company:     "TechStart Inc",
			Location:    pick(location, "San Francisco, CA"),
			Description: "Great opportunity. Configure a live job source for real listings.",
			ApplyURL:    "https://example.com/jobs",
		},
		{
			Title:       pick(query, "Engineer"),
			Company:     "BuildCo",
			Location:    pick(location, "Austin, TX"),
			Description: "Growth role. Configure a live job source for real listings.",
			ApplyURL:    "https://example.com/careers",
		},
		{
			Title:       pick(query, "Software Developer"),
			Company:     "DataFlow Inc",
			Location:    pick(location, "Seattle, WA"),
			Description: "Remote-friendly. Configure a live job source for real listings.",
			ApplyURL:    "https://example.com/apply-now",
		},
		{
			Title:       pick(query, "Tech Lead"),
			Company:     "ScaleUp Labs",
			Location:    pick(location, "Boston, MA"),
			Description: "Leadership opportunity. Configure a live job source for real listings.",
			ApplyURL:    "https://example.com/join",
		},
	}
	if len(jobs) > MaxJobsPerSearch {
		jobs = jobs[:MaxJobsPerSearch]
	}
	return jobs
}
