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
	adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"
	adzunaTimeout = 20 * time.Second
)

// AdzunaSource queries the Adzuna search API. Country is guessed from
// the location string, defaulting to "us". Without credentials it
// resolves to Empty.
type AdzunaSource struct {
	appID   string
	appKey  string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

func NewAdzunaSource(appID, appKey string, client *http.Client) *AdzunaSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &AdzunaSource{
		appID:   strings.TrimSpace(appID),
		appKey:  strings.TrimSpace(appKey),
		baseURL: adzunaBaseURL,
		client:  client,
		timeout: adzunaTimeout,
	}
}

func (a *AdzunaSource) Name() string { return "adzuna" }

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string   `json:"description"`
	RedirectURL string   `json:"redirect_url"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Created     string   `json:"created"`
}

func (a *AdzunaSource) Resolve(ctx context.Context, q models.NormalizedQuery) Result {
	if a.appID == "" || a.appKey == "" {
		return Empty()
	}

	country := adzunaCountry(q.Location)

	params := url.Values{}
	params.Set("app_id", a.appID)
	params.Set("app_key", a.appKey)
	params.Set("results_per_page", fmt.Sprintf("%d", MaxJobsPerSearch))
	params.Set("what", q.Text)
	if q.Location != "" && (country == "us" || country == "gb") {
		params.Set("where", truncateRunes(q.Location, 100))
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s/search/1?%s", a.baseURL, country, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Failed(fmt.Errorf("adzuna: new request: %w", err))
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return Failed(fmt.Errorf("adzuna: request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Failed(fmt.Errorf("adzuna: unexpected status %d", resp.StatusCode))
	}

	var data adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Failed(fmt.Errorf("adzuna: decode: %w", err))
	}

	return Found(parseAdzunaResults(data.Results, q.Location, country))
}

func adzunaCountry(location string) string {
	loc := strings.ToLower(location)
	switch {
	case strings.Contains(loc, "uk"), strings.Contains(loc, "united kingdom"), strings.Contains(loc, "london"), strings.Contains(loc, "gb"):
		return "gb"
	case strings.Contains(loc, "de"), strings.Contains(loc, "germany"), strings.Contains(loc, "berlin"):
		return "de"
	case strings.Contains(loc, "at"), strings.Contains(loc, "austria"):
		return "at"
	default:
		return "us"
	}
}

func adzunaCurrency(country string) string {
	switch country {
	case "gb":
		return "£"
	case "de", "at":
		return "€"
	default:
		return "$"
	}
}

func parseAdzunaResults(results []adzunaResult, fallbackLocation, country string) []RawJob {
	if len(results) > MaxJobsPerSearch {
		results = results[:MaxJobsPerSearch]
	}

	sym := adzunaCurrency(country)
	var out []RawJob
	for _, r := range results {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = "Job"
		}
		company := strings.TrimSpace(r.Company.DisplayName)
		if company == "" {
			company = "Company"
		}
		loc := strings.TrimSpace(r.Location.DisplayName)
		if loc == "" {
			loc = strings.TrimSpace(fallbackLocation)
		}

		desc := truncateRunes(r.Description, maxDescriptionLen)

		var salary string
		switch {
		case r.SalaryMin != nil && r.SalaryMax != nil:
			salary = fmt.Sprintf("%s%.0f - %s%.0f", sym, *r.SalaryMin, sym, *r.SalaryMax)
		case r.SalaryMin != nil:
			salary = fmt.Sprintf("From %s%.0f", sym, *r.SalaryMin)
		}

		posted := r.Created
		if len(posted) > 10 {
			posted = posted[:10]
		}

		out = append(out, RawJob{
			Title:       title,
			Company:     company,
			Location:    loc,
			Description: desc,
			ApplyURL:    r.RedirectURL,
			Salary:      salary,
			PostedDate:  posted,
		})
	}
	return out
}
