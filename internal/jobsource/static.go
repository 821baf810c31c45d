package jobsource

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
)

// MaxJobsFromCorpus caps how many corpus entries one search may return.
const MaxJobsFromCorpus = 100

// StaticSource serves the pre-populated corpus at data/jobs.json. The
// file is re-read on every resolve so the refresh worker's rewrites
// are picked up without a restart.
type StaticSource struct {
	path string
}

func NewStaticSource(path string) *StaticSource {
	return &StaticSource{path: path}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Resolve(ctx context.Context, q models.NormalizedQuery) Result {
	jobs, err := LoadCorpus(s.path)
	if err != nil {
		return Failed(err)
	}
	return Found(FilterCorpus(jobs, q.Text, q.Location))
}

// LoadCorpus reads the corpus file. A missing file is an empty corpus,
// not an error.
func LoadCorpus(path string) ([]RawJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var jobs []RawJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// SaveCorpus rewrites the corpus file atomically via a temp file.
func SaveCorpus(path string, jobs []RawJob) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		logger.Warn("corpus: rename failed", "path", path, "error", err)
		return err
	}
	return nil
}

// FilterCorpus applies case-insensitive substring filters: query
// against title/company/description, location against location, AND
// semantics between the two. An empty criterion matches everything.
func FilterCorpus(jobs []RawJob, query, location string) []RawJob {
	qNorm := strings.ToLower(strings.TrimSpace(query))
	locNorm := strings.ToLower(strings.TrimSpace(location))

	var out []RawJob
	for _, j := range jobs {
		if qNorm != "" {
			title := strings.ToLower(j.Title)
			company := strings.ToLower(j.Company)
			desc := strings.ToLower(j.Description)
			if !strings.Contains(title, qNorm) && !strings.Contains(company, qNorm) && !strings.Contains(desc, qNorm) {
				continue
			}
		}
		if locNorm != "" && !strings.Contains(strings.ToLower(j.Location), locNorm) {
			continue
		}
		out = append(out, j)
		if len(out) >= MaxJobsFromCorpus {
			break
		}
	}
	return out
}
