package jobsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serpAPIFixture = `{
	"search_metadata": {"status": "Success"},
	"jobs_results": [
		{
			"title": "Data Analyst",
			"company_name": "Acme",
			"location": "Berlin, Germany",
			"description": "SQL and dashboards",
			"apply_options": [{"link": "https://careers.acme.example/1"}],
			"detected_extensions": {"salary": "60k", "posted_at": "3 days ago"}
		},
		{
			"title": "  ",
			"company_name": "",
			"share_link": "https://share.example/2"
		}
	]
}`

func newSerpAPITestSource(t *testing.T, handler http.HandlerFunc) *SerpAPISource {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	src := NewSerpAPISource("test-key", ts.Client())
	src.baseURL = ts.URL
	return src
}

func TestSerpAPISource_ParsesResponse(t *testing.T) {
	t.Parallel()

	var gotQuery string
	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(serpAPIFixture))
	})

	res := src.Resolve(context.Background(), NormalizeQuery("Data Analyst", "Berlin, Germany", false))
	require.Equal(t, StatusFound, res.Status)
	require.Len(t, res.Jobs, 2)
	assert.Equal(t, "Data Analyst", gotQuery)

	first := res.Jobs[0]
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "https://careers.acme.example/1", first.ApplyURL, "apply_options link wins when apply_link is absent")
	assert.Equal(t, "60k", first.Salary)
	assert.Equal(t, "3 days ago", first.PostedDate)

	// blank fields become placeholders, share_link is the last resort
	second := res.Jobs[1]
	assert.Equal(t, "N/A", second.Title)
	assert.Equal(t, "N/A", second.Company)
	assert.Equal(t, "https://share.example/2", second.ApplyURL)
}

func TestSerpAPISource_TruncatesDescription(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", maxDescriptionLen+100)
	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs_results": [{"title": "T", "company_name": "C", "description": "` + long + `"}]}`))
	})

	res := src.Resolve(context.Background(), NormalizeQuery("t", "", false))
	require.Equal(t, StatusFound, res.Status)
	assert.Len(t, res.Jobs[0].Description, maxDescriptionLen+3)
	assert.True(t, strings.HasSuffix(res.Jobs[0].Description, "..."))
}

func TestSerpAPISource_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	// two-byte runes, a byte-index slice would split one in half
	long := strings.Repeat("я", maxDescriptionLen+50)
	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs_results": [{"title": "T", "company_name": "C", "description": "` + long + `"}]}`))
	})

	res := src.Resolve(context.Background(), NormalizeQuery("t", "", false))
	require.Equal(t, StatusFound, res.Status)
	desc := res.Jobs[0].Description
	assert.True(t, utf8.ValidString(desc))
	assert.Equal(t, maxDescriptionLen+3, utf8.RuneCountInString(desc))
	assert.True(t, strings.HasSuffix(desc, "..."))
}

func TestSerpAPISource_NoKeyIsEmpty(t *testing.T) {
	t.Parallel()

	src := NewSerpAPISource("", nil)
	res := src.Resolve(context.Background(), NormalizeQuery("x", "", false))
	assert.Equal(t, StatusEmpty, res.Status)
}

func TestSerpAPISource_Non200IsFailed(t *testing.T) {
	t.Parallel()

	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	res := src.Resolve(context.Background(), NormalizeQuery("x", "", false))
	assert.Equal(t, StatusFailed, res.Status)
	assert.Error(t, res.Err)
}

func TestSerpAPISource_ErrorPayloadIsFailed(t *testing.T) {
	t.Parallel()

	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "Your searches for the month are exhausted."}`))
	})

	res := src.Resolve(context.Background(), NormalizeQuery("x", "", false))
	assert.Equal(t, StatusFailed, res.Status)
}

func TestSerpAPISource_TimeoutIsFailed(t *testing.T) {
	t.Parallel()

	src := newSerpAPITestSource(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	})
	src.timeout = 20 * time.Millisecond

	res := src.Resolve(context.Background(), NormalizeQuery("x", "", false))
	assert.Equal(t, StatusFailed, res.Status)
	assert.Error(t, res.Err)
}

func TestAdzunaSource_ParsesResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/gb/search/1"), "UK location routes to the gb country API")
		w.Write([]byte(`{"results": [
			{
				"title": "Data Analyst",
				"company": {"display_name": "Globex"},
				"location": {"display_name": "London"},
				"description": "Reporting role",
				"redirect_url": "https://adzuna.example/redirect/1",
				"salary_min": 50000, "salary_max": 60000,
				"created": "2026-08-12T10:00:00Z"
			}
		]}`))
	}))
	t.Cleanup(ts.Close)

	src := NewAdzunaSource("id", "key", ts.Client())
	src.baseURL = ts.URL

	res := src.Resolve(context.Background(), NormalizeQuery("Data Analyst", "London, UK", false))
	require.Equal(t, StatusFound, res.Status)
	require.Len(t, res.Jobs, 1)

	job := res.Jobs[0]
	assert.Equal(t, "Globex", job.Company)
	assert.Equal(t, "£50000 - £60000", job.Salary)
	assert.Equal(t, "2026-08-12", job.PostedDate)
	assert.Equal(t, "https://adzuna.example/redirect/1", job.ApplyURL)
}

func TestAdzunaSource_NoCredentialsIsEmpty(t *testing.T) {
	t.Parallel()

	src := NewAdzunaSource("", "", nil)
	res := src.Resolve(context.Background(), NormalizeQuery("x", "", false))
	assert.Equal(t, StatusEmpty, res.Status)
}

func TestAdzunaCountry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gb", adzunaCountry("London, UK"))
	assert.Equal(t, "de", adzunaCountry("Berlin"))
	assert.Equal(t, "at", adzunaCountry("Vienna, Austria"))
	assert.Equal(t, "us", adzunaCountry("New York"))
	assert.Equal(t, "us", adzunaCountry(""))
}
