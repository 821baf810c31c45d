package algorithms

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Keyword overlap scoring between a resume and a job posting.
// This is a heuristic, not semantic matching: it rewards shared
// vocabulary, nothing more.

const minKeywordLen = 3

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "you": {}, "your": {},
	"this": {}, "that": {}, "are": {}, "was": {}, "have": {}, "has": {},
	"from": {}, "can": {}, "will": {}, "all": {}, "any": {}, "not": {},
	"but": {}, "its": {}, "may": {}, "new": {}, "one": {}, "our": {},
	"out": {}, "use": {}, "via": {},
}

// ExtractKeywords tokenizes text into lowercase alphanumeric words of
// length >= 3, excluding stop words.
func ExtractKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) < minKeywordLen {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords[w] = struct{}{}
	}
	return keywords
}

// MatchScore computes a 0-100 relevance score and human-readable
// reasons for a resume against a job posting. A blank resume returns
// (0, nil): a job is never penalized, merely unscored.
func MatchScore(resumeText, jobTitle, jobDescription string) (float64, []string) {
	if strings.TrimSpace(resumeText) == "" {
		return 0.0, nil
	}

	resumeKw := ExtractKeywords(resumeText)
	jobKw := ExtractKeywords(jobTitle + " " + jobDescription)
	if len(jobKw) == 0 {
		return 0.0, nil
	}

	var overlap []string
	for w := range resumeKw {
		if _, ok := jobKw[w]; ok {
			overlap = append(overlap, w)
		}
	}

	ratio := float64(len(overlap)) / float64(len(jobKw))
	capped := float64(len(overlap))
	if capped > 15 {
		capped = 15
	}
	score := math.Min(100.0, ratio*60+capped*2.5)
	score = math.Round(score*10) / 10

	var reasons []string
	if len(overlap) > 0 {
		sort.Strings(overlap)
		sample := overlap
		if len(sample) > 5 {
			sample = sample[:5]
		}
		reasons = append(reasons, fmt.Sprintf("Your resume matches keywords: %s", strings.Join(sample, ", ")))
	}
	if ratio >= 0.2 {
		reasons = append(reasons, "Strong keyword alignment with job description")
	}
	if ratio >= 0.1 {
		reasons = append(reasons, "Some skills match the role")
	}

	return score, reasons
}
