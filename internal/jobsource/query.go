package jobsource

import (
	"strings"

	"pathpilot_backend/internal/models"
)

// DefaultQuery is substituted when the user submits a blank search.
const DefaultQuery = "Software Engineer"

// NormalizeQuery canonicalizes free-text search input into the stable
// cache/session key. Total function, no error conditions.
func NormalizeQuery(text, location string, remote bool) models.NormalizedQuery {
	text = strings.TrimSpace(text)
	if text == "" {
		text = DefaultQuery
	}
	return models.NormalizedQuery{
		Text:     text,
		Location: strings.TrimSpace(location),
		Remote:   remote,
	}
}
