package models

// NormalizedQuery is the canonical cache/session key for a search.
// Equality is case-sensitive on the normalized strings.
type NormalizedQuery struct {
	Text     string
	Location string
	Remote   bool // passed through, ignored by the cascade
}

// ScoredJob is the per-request search result. Scores depend on the
// caller's current resume and are never persisted.
type ScoredJob struct {
	Job     Job      `json:"job"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}
