package services

import (
	"context"

	"pathpilot_backend/internal/algorithms"
	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
)

// SearchService runs the job discovery pipeline: same-day cache lookup,
// source cascade, deduplicating persistence, session recording and
// resume-aware scoring. Search never fails: persistence and session
// errors degrade to unpersisted results, the synthetic source
// guarantees a non-empty list.
type SearchService interface {
	Search(ctx context.Context, query, location string, remote bool, userID string) []models.ScoredJob
}

type SearchServiceImpl struct {
	cascade  *jobsource.Cascade
	jobs     repositories.JobRepository
	sessions repositories.SearchSessionRepository
	resumes  repositories.ResumeRepository
}

func NewSearchService(
	cascade *jobsource.Cascade,
	jobs repositories.JobRepository,
	sessions repositories.SearchSessionRepository,
	resumes repositories.ResumeRepository,
) *SearchServiceImpl {
	return &SearchServiceImpl{
		cascade:  cascade,
		jobs:     jobs,
		sessions: sessions,
		resumes:  resumes,
	}
}

func (s *SearchServiceImpl) Search(ctx context.Context, query, location string, remote bool, userID string) []models.ScoredJob {
	log := logger.FromContext(ctx)
	q := jobsource.NormalizeQuery(query, location, remote)

	if cached := s.fromCache(q); cached != nil {
		log.Info("search served from same-day session",
			"query", q.Text, "location", q.Location, "jobs", len(cached))
		return s.score(cached, userID)
	}

	raw, source := s.cascade.Resolve(ctx, q)
	jobs := s.persist(ctx, raw, source)

	s.storeSession(ctx, q, source, jobs)

	log.Info("search resolved",
		"query", q.Text, "location", q.Location, "source", source, "jobs", len(jobs))
	return s.score(jobs, userID)
}

// fromCache returns the jobs of today's newest session for the query in
// their original order, or nil when there is no reusable session.
func (s *SearchServiceImpl) fromCache(q models.NormalizedQuery) []models.Job {
	session, err := s.sessions.FindSameDay(q)
	if err != nil {
		return nil
	}
	ids, err := s.sessions.JobIDs(session.ID)
	if err != nil || len(ids) == 0 {
		return nil
	}
	byID, err := s.jobs.FindByIDs(ids)
	if err != nil {
		return nil
	}
	jobs := make([]models.Job, 0, len(ids))
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			jobs = append(jobs, job)
		}
	}
	if len(jobs) == 0 {
		return nil
	}
	return jobs
}

// persist upserts the raw listings into the identity store. A listing
// that cannot be persisted is kept in the result under a negative
// synthetic id so the response stays complete.
func (s *SearchServiceImpl) persist(ctx context.Context, raw []jobsource.RawJob, source string) []models.Job {
	jobs := make([]models.Job, 0, len(raw))
	for i, rj := range raw {
		job, err := s.jobs.Upsert(rj, source)
		if err != nil {
			logger.CtxWarn(ctx, "job persistence failed, returning unpersisted listing",
				"error", err.Error(), "title", rj.Title, "company", rj.Company)
			jobs = append(jobs, models.Job{
				ID:          int64(-(i + 1)),
				Title:       rj.Title,
				Company:     rj.Company,
				Location:    rj.Location,
				Description: rj.Description,
				ApplyURL:    rj.ApplyURL,
				Source:      source,
				IdentityKey: models.JobIdentityKey(rj.Title, rj.Company),
			})
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs
}

// storeSession records a reusable session when at least one listing was
// actually persisted. Failure is logged and swallowed: caching is an
// optimization, not part of the search contract.
func (s *SearchServiceImpl) storeSession(ctx context.Context, q models.NormalizedQuery, source string, jobs []models.Job) {
	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		if j.ID > 0 {
			ids = append(ids, j.ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	if _, err := s.sessions.Store(q, source, ids); err != nil {
		logger.CtxWarn(ctx, "search session not recorded",
			"error", err.Error(), "query", q.Text, "location", q.Location)
	}
}

// score attaches the caller's resume-match score to every job. Scores
// are computed per request against the latest resume and never stored.
func (s *SearchServiceImpl) score(jobs []models.Job, userID string) []models.ScoredJob {
	resumeText := ""
	if userID != "" {
		if resume, err := s.resumes.LatestByUser(userID); err == nil {
			resumeText = resume.Content
		}
	}
	scored := make([]models.ScoredJob, 0, len(jobs))
	for _, job := range jobs {
		score, reasons := algorithms.MatchScore(resumeText, job.Title, job.Description)
		scored = append(scored, models.ScoredJob{Job: job, Score: score, Reasons: reasons})
	}
	return scored
}
