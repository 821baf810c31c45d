package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
)

// Запросы, по которым ночной воркер пополняет статический корпус
var seedQueries = []string{
	"Software Engineer",
	"Data Analyst",
	"Product Manager",
	"DevOps Engineer",
	"Frontend Developer",
}

// CorpusWorker keeps data/jobs.json warm: every night it pulls the live
// aggregators for the seed queries and merges new listings into the
// corpus. Without aggregator credentials the worker stays idle.
type CorpusWorker struct {
	path    string
	sources []jobsource.Source
	cron    *cron.Cron
}

func NewCorpusWorker(path string, sources ...jobsource.Source) *CorpusWorker {
	return &CorpusWorker{
		path:    path,
		sources: sources,
		cron:    cron.New(),
	}
}

// Start регистрирует ночное обновление корпуса. Возвращает ошибку
// только при невалидном cron-выражении.
func (w *CorpusWorker) Start() error {
	if len(w.sources) == 0 {
		logger.Info("corpus worker: no live sources configured, refresh disabled")
		return nil
	}

	_, err := w.cron.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		w.Refresh(ctx)
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	logger.Info("corpus worker started", "path", w.path, "sources", len(w.sources))
	return nil
}

func (w *CorpusWorker) Stop() {
	w.cron.Stop()
}

// Refresh прогоняет seed-запросы по живым источникам и дописывает
// новые вакансии в корпус. Дедупликация по ключу (title, company).
func (w *CorpusWorker) Refresh(ctx context.Context) {
	existing, err := jobsource.LoadCorpus(w.path)
	if err != nil {
		logger.Error("corpus worker: load failed", "path", w.path, "error", err)
		return
	}

	seen := make(map[string]struct{}, len(existing))
	for _, j := range existing {
		seen[models.JobIdentityKey(j.Title, j.Company)] = struct{}{}
	}

	added := 0
	for _, query := range seedQueries {
		if ctx.Err() != nil {
			return
		}
		q := jobsource.NormalizeQuery(query, "", false)

		for _, src := range w.sources {
			result := src.Resolve(ctx, q)
			if result.Status != jobsource.StatusFound {
				if result.Status == jobsource.StatusFailed {
					logger.Warn("corpus worker: source failed",
						"source", src.Name(), "query", query, "error", result.Err)
				}
				continue
			}
			for _, job := range result.Jobs {
				key := models.JobIdentityKey(job.Title, job.Company)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				existing = append(existing, job)
				added++
			}
		}
	}

	if added == 0 {
		logger.Info("corpus worker: nothing new", "path", w.path)
		return
	}

	if err := jobsource.SaveCorpus(w.path, existing); err != nil {
		logger.Error("corpus worker: save failed", "path", w.path, "error", err)
		return
	}
	logger.Info("corpus refreshed", "added", added, "total", len(existing))
}
