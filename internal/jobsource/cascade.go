package jobsource

import (
	"context"

	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
)

// Cascade tries its sources strictly in order and stops at the first
// Found. Empty and Failed both mean "continue"; a Failed source is
// logged but never surfaced to the caller and never retried within
// the same request.
type Cascade struct {
	sources []Source
}

func NewCascade(sources ...Source) *Cascade {
	return &Cascade{sources: sources}
}

// DefaultCascade wires the production priority order: static corpus,
// SerpAPI, Adzuna, synthetic fallback.
func DefaultCascade(corpusPath, serpAPIKey, adzunaAppID, adzunaAppKey string) *Cascade {
	return NewCascade(
		NewStaticSource(corpusPath),
		NewSerpAPISource(serpAPIKey, nil),
		NewAdzunaSource(adzunaAppID, adzunaAppKey, nil),
		NewSyntheticSource(),
	)
}

// Resolve walks the cascade and returns the winning jobs with the name
// of the source that produced them. An empty list is only possible
// when every source, including the synthetic one, is disabled.
func (c *Cascade) Resolve(ctx context.Context, q models.NormalizedQuery) ([]RawJob, string) {
	for _, src := range c.sources {
		res := src.Resolve(ctx, q)
		switch res.Status {
		case StatusFound:
			logger.CtxInfo(ctx, "cascade: source resolved", "source", src.Name(), "jobs", len(res.Jobs), "query", q.Text)
			return res.Jobs, src.Name()
		case StatusFailed:
			logger.CtxWarn(ctx, "cascade: source failed, continuing", "source", src.Name(), "error", res.Err)
		case StatusEmpty:
			logger.CtxDebug(ctx, "cascade: source empty", "source", src.Name())
		}
	}
	return nil, ""
}
