package services

import (
	"context"
	"fmt"
	"strings"

	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

// ResumeService stores resume versions and runs the metered AI improve
// flow. Every improve result is saved as a new version; old versions
// are never overwritten.
type ResumeService interface {
	Save(userID string, req dto.CreateResumeRequest) (*models.Resume, error)
	Latest(userID string) (*models.Resume, error)
	Improve(ctx context.Context, userID string, req dto.ImproveResumeRequest) (*dto.ImproveResumeResponse, error)
}

type ResumeServiceImpl struct {
	resumes   repositories.ResumeRepository
	quota     QuotaService
	completer llm.Completer
}

func NewResumeService(resumes repositories.ResumeRepository, quota QuotaService, completer llm.Completer) *ResumeServiceImpl {
	return &ResumeServiceImpl{resumes: resumes, quota: quota, completer: completer}
}

func (s *ResumeServiceImpl) Save(userID string, req dto.CreateResumeRequest) (*models.Resume, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "My Resume"
	}
	resume := &models.Resume{UserID: userID, Title: title, Content: req.Content}
	if err := s.resumes.Create(resume); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return resume, nil
}

func (s *ResumeServiceImpl) Latest(userID string) (*models.Resume, error) {
	resume, err := s.resumes.LatestByUser(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrResumeNotFound) {
			return nil, apperrors.ErrResumeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return resume, nil
}

// Improve checks the monthly quota, rewrites the resume through the
// LLM, stores the rewrite as a new version and only then burns a
// generation. A failed LLM call costs nothing.
func (s *ResumeServiceImpl) Improve(ctx context.Context, userID string, req dto.ImproveResumeRequest) (*dto.ImproveResumeResponse, error) {
	if _, err := s.quota.CheckResumeAI(userID); err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf("Rewrite and improve this resume:\n%s", req.ResumeText)
	if strings.TrimSpace(req.JobDescription) != "" {
		userPrompt += fmt.Sprintf("\n\nTailor it to this job description:\n%s", req.JobDescription)
	}
	improved, err := s.completer.Complete(ctx,
		"You are an expert resume writer. Improve the resume: tighten wording, quantify impact, keep it truthful. Return only the resume text.",
		userPrompt, 1200)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "llm", "resume improvement failed")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Improved Resume"
	}
	resume := &models.Resume{UserID: userID, Title: title, Content: improved}
	if err := s.resumes.Create(resume); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.quota.RecordUsage(userID, models.FeatureResumeAI); err != nil {
		logger.CtxWarn(ctx, "resume AI usage not recorded", "error", err.Error())
	}

	remaining, err := s.quota.CheckResumeAI(userID)
	if err != nil {
		// счётчик только что исчерпан, остаток равен нулю
		zero := 0
		remaining = &zero
	}

	return &dto.ImproveResumeResponse{
		ImprovedText:         improved,
		ResumeID:             resume.ID,
		GenerationsRemaining: remaining,
	}, nil
}
