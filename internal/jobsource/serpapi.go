package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pathpilot_backend/internal/models"
)

const (
	serpAPIBaseURL    = "https://serpapi.com/search.json"
	serpAPITimeout    = 30 * time.Second
	MaxJobsPerSearch  = 5
	maxDescriptionLen = 500
)

// SerpAPISource queries SerpAPI's Google Jobs engine. Without an API
// key it resolves to Empty so the cascade moves on.
type SerpAPISource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewSerpAPISource(apiKey string, client *http.Client) *SerpAPISource {
	if client == nil {
		client = http.DefaultClient
	}
	return &SerpAPISource{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: serpAPIBaseURL,
		client:  client,
		timeout: serpAPITimeout,
	}
}

func (s *SerpAPISource) Name() string { return "serpapi" }

type serpAPIResponse struct {
	Error          string `json:"error"`
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	JobsResults []serpAPIJob `json:"jobs_results"`
}

type serpAPIJob struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	ApplyLink    string `json:"apply_link"`
	Link         string `json:"link"`
	ShareLink    string `json:"share_link"`
	ApplyOptions []struct {
		Link string `json:"link"`
	} `json:"apply_options"`
	DetectedExtensions struct {
		Salary   string `json:"salary"`
		PostedAt string `json:"posted_at"`
	} `json:"detected_extensions"`
}

func (s *SerpAPISource) Resolve(ctx context.Context, q models.NormalizedQuery) Result {
	if s.apiKey == "" {
		return Empty()
	}

	loc := q.Location
	if loc == "" {
		loc = "United States"
	}

	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", q.Text)
	params.Set("api_key", s.apiKey)
	params.Set("hl", "en")
	params.Set("gl", "us")
	params.Set("location", loc)
	if lower := strings.ToLower(loc); strings.Contains(lower, "germany") || strings.Contains(lower, "deutschland") {
		params.Set("gl", "de")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Failed(fmt.Errorf("serpapi: new request: %w", err))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("serpapi: request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Errorf("serpapi: unexpected status %d", resp.StatusCode))
	}

	var data serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Failed(fmt.Errorf("serpapi: decode: %w", err))
	}

	if data.Error != "" {
		return Failed(fmt.Errorf("serpapi: error in response: %s", data.Error))
	}
	if st := data.SearchMetadata.Status; st != "" && st != "Success" {
		return Failed(fmt.Errorf("serpapi: status %s", st))
	}

	jobs := parseSerpAPIJobs(data.JobsResults)
	if len(jobs) > MaxJobsPerSearch {
		jobs = jobs[:MaxJobsPerSearch]
	}
	return Found(jobs)
}

func parseSerpAPIJobs(results []serpAPIJob) []RawJob {
	var out []RawJob
	for _, j := range results {
		title := strings.TrimSpace(j.Title)
		if title == "" {
			title = "N/A"
		}
		company := strings.TrimSpace(j.CompanyName)
		if company == "" {
			company = "N/A"
		}

		desc := j.Description
		if short := truncateRunes(desc, maxDescriptionLen); short != desc {
			desc = short + "..."
		}

		// Ссылка на вакансию: apply_link -> link -> apply_options[0] -> share_link
		applyURL := j.ApplyLink
		if applyURL == "" {
			applyURL = j.Link
		}
		if applyURL == "" && len(j.ApplyOptions) > 0 {
			applyURL = j.ApplyOptions[0].Link
		}
		if applyURL == "" {
			applyURL = j.ShareLink
		}

		out = append(out, RawJob{
			Title:       title,
			Company:     company,
			Location:    strings.TrimSpace(j.Location),
			Description: desc,
			ApplyURL:    applyURL,
			Salary:      j.DetectedExtensions.Salary,
			PostedDate:  j.DetectedExtensions.PostedAt,
		})
	}
	return out
}
