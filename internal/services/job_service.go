package services

import (
	"context"
	"fmt"
	"time"

	"pathpilot_backend/internal/jobsource"
	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

const coverLetterDescriptionLimit = 1500

// truncateRunes cuts s to at most limit characters without splitting a
// multi-byte rune. Job descriptions and resumes are user text, not ASCII.
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

// JobService covers user actions on listings: tracking view/shortlist/
// redirect, listing saved jobs and generating cover letters.
type JobService interface {
	RecordAction(ctx context.Context, userID string, req dto.JobActionRequest) (*models.Application, error)
	ListSaved(userID string) ([]dto.SavedJobView, error)
	CoverLetter(ctx context.Context, userID string, req dto.CoverLetterRequest) (string, error)
}

type JobServiceImpl struct {
	jobs      repositories.JobRepository
	apps      repositories.ApplicationRepository
	quota     QuotaService
	completer llm.Completer
}

func NewJobService(
	jobs repositories.JobRepository,
	apps repositories.ApplicationRepository,
	quota QuotaService,
	completer llm.Completer,
) *JobServiceImpl {
	return &JobServiceImpl{jobs: jobs, apps: apps, quota: quota, completer: completer}
}

// RecordAction upserts the user's application row for a job. Redirects
// are quota-gated before anything is written; saving a job the user has
// no row for yet is gated by the saved-jobs capacity.
func (s *JobServiceImpl) RecordAction(ctx context.Context, userID string, req dto.JobActionRequest) (*models.Application, error) {
	status := models.ApplicationStatus(req.Action)
	if !status.Valid() {
		return nil, apperrors.ErrInvalidJobAction
	}

	if status == models.ApplicationStatusRedirected {
		if err := s.quota.CheckRedirect(userID); err != nil {
			return nil, err
		}
	}

	job, err := s.resolveJob(userID, status, req)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.FindByUserAndJob(userID, job.ID)
	switch {
	case err == nil:
		app.Status = status
		if status == models.ApplicationStatusRedirected {
			now := time.Now().UTC()
			app.RedirectedAt = &now
		}
		if err := s.apps.Update(app); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case apperrors.Is(err, repositories.ErrApplicationNotFound):
		if status == models.ApplicationStatusShortlisted || status == models.ApplicationStatusRedirected {
			if err := s.quota.CheckJobSave(userID); err != nil {
				return nil, err
			}
		}
		app = &models.Application{UserID: userID, JobID: job.ID, Status: status}
		if status == models.ApplicationStatusRedirected {
			now := time.Now().UTC()
			app.RedirectedAt = &now
		}
		if err := s.apps.Create(app); err != nil {
			return nil, apperrors.InternalError(err)
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "job action recorded",
		"job_id", job.ID, "action", string(status))
	app.Job = *job
	return app, nil
}

// resolveJob loads an existing listing by id, or persists the payload
// the client carried over from an unpersisted search result. Payloads
// are only accepted for shortlisted and redirected actions, and the
// saved-jobs capacity is checked before a new listing is written.
func (s *JobServiceImpl) resolveJob(userID string, status models.ApplicationStatus, req dto.JobActionRequest) (*models.Job, error) {
	if req.JobID > 0 {
		job, err := s.jobs.FindByID(req.JobID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrJobNotFound) {
				return nil, apperrors.ErrJobNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return job, nil
	}
	if req.Job == nil {
		return nil, apperrors.ErrInvalidJobAction
	}
	if status == models.ApplicationStatusViewed {
		return nil, apperrors.NewBadRequestError("a job payload requires a shortlist or redirect action")
	}

	// Known listings resolve without touching the capacity; only an
	// unseen payload costs a save.
	existing, err := s.jobs.FindByIdentityKey(req.Job.Title, req.Job.Company)
	switch {
	case err == nil:
		return existing, nil
	case apperrors.Is(err, repositories.ErrJobNotFound):
		if err := s.quota.CheckJobSave(userID); err != nil {
			return nil, err
		}
	default:
		return nil, apperrors.InternalError(err)
	}

	job, err := s.jobs.Upsert(jobsource.RawJob{
		Title:       req.Job.Title,
		Company:     req.Job.Company,
		Location:    req.Job.Location,
		Description: req.Job.Description,
		ApplyURL:    req.Job.ApplyURL,
	}, "user")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobServiceImpl) ListSaved(userID string) ([]dto.SavedJobView, error) {
	apps, err := s.apps.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	views := make([]dto.SavedJobView, 0, len(apps))
	for _, app := range apps {
		views = append(views, dto.SavedJobView{
			ID:       app.Job.ID,
			Title:    app.Job.Title,
			Company:  app.Job.Company,
			Location: app.Job.Location,
			ApplyURL: app.Job.ApplyURL,
			Source:   app.Job.Source,
			Status:   app.Status,
		})
	}
	return views, nil
}

// CoverLetter drafts a letter for a saved job, or for an ad-hoc payload
// when job_id is zero. Saved jobs must belong to the caller through an
// application row.
func (s *JobServiceImpl) CoverLetter(ctx context.Context, userID string, req dto.CoverLetterRequest) (string, error) {
	var title, company, description string

	if req.JobID > 0 {
		if _, err := s.apps.FindByUserAndJob(userID, req.JobID); err != nil {
			if apperrors.Is(err, repositories.ErrApplicationNotFound) {
				return "", apperrors.ErrJobNotFound
			}
			return "", apperrors.InternalError(err)
		}
		job, err := s.jobs.FindByID(req.JobID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrJobNotFound) {
				return "", apperrors.ErrJobNotFound
			}
			return "", apperrors.InternalError(err)
		}
		title, company, description = job.Title, job.Company, job.Description
	} else {
		if req.Job == nil {
			return "", apperrors.NewBadRequestError("either job_id or job payload is required")
		}
		title, company, description = req.Job.Title, req.Job.Company, req.Job.Description
	}

	description = truncateRunes(description, coverLetterDescriptionLimit)

	text, err := s.completer.Complete(ctx,
		"You are a career coach. Write a short, professional cover letter.",
		fmt.Sprintf("Job: %s at %s. Description: %s", title, company, description),
		600)
	if err != nil {
		return "", apperrors.ErrExternalService(err, "llm", "cover letter generation failed")
	}
	return text, nil
}
