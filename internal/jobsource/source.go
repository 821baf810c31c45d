// Package jobsource implements the ordered source cascade behind job
// discovery: static corpus, live aggregators, synthetic fallback.
package jobsource

import (
	"context"

	"pathpilot_backend/internal/models"
)

// RawJob is a normalized listing as it comes off a source, before it
// is deduplicated into the identity store.
type RawJob struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	ApplyURL    string `json:"apply_url,omitempty"`
	Salary      string `json:"salary,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
}

type Status int

const (
	// StatusFound: non-empty list, cascade stops here.
	StatusFound Status = iota
	// StatusEmpty: source answered but had nothing, cascade continues.
	StatusEmpty
	// StatusFailed: source errored or timed out, cascade continues.
	StatusFailed
)

// Result is the typed outcome of one source probe. The resolver makes
// its continue/stop decision on the Status tag, never on a panic or a
// swallowed error.
type Result struct {
	Status Status
	Jobs   []RawJob
	Err    error
}

func Found(jobs []RawJob) Result {
	if len(jobs) == 0 {
		return Empty()
	}
	return Result{Status: StatusFound, Jobs: jobs}
}

func Empty() Result {
	return Result{Status: StatusEmpty}
}

func Failed(err error) Result {
	return Result{Status: StatusFailed, Err: err}
}

// Source is one rung of the cascade. Resolve must honor ctx and return
// within the source's own timeout; it never panics.
type Source interface {
	Name() string
	Resolve(ctx context.Context, q models.NormalizedQuery) Result
}

// truncateRunes cuts s to at most limit characters. Aggregator text is
// not ASCII, so cutting by byte index could split a rune.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
