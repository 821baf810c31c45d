package services

import (
	"time"

	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/plans"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

// SubscriptionService exposes the caller's plan, usage table and the
// (payment-less) plan switch. Billing is out of scope: SetPlan flips
// the stored tier directly.
type SubscriptionService interface {
	Me(userID string) (*dto.SubscriptionMeResponse, error)
	SetPlan(userID string, req dto.SetPlanRequest) (*dto.SubscriptionMeResponse, error)
	DashboardStats(userID string) (*dto.DashboardStatsResponse, error)
}

type SubscriptionServiceImpl struct {
	users   repositories.UserRepository
	apps    repositories.ApplicationRepository
	resumes repositories.ResumeRepository
	quota   QuotaService
}

func NewSubscriptionService(
	users repositories.UserRepository,
	apps repositories.ApplicationRepository,
	resumes repositories.ResumeRepository,
	quota QuotaService,
) *SubscriptionServiceImpl {
	return &SubscriptionServiceImpl{users: users, apps: apps, resumes: resumes, quota: quota}
}

func (s *SubscriptionServiceImpl) Me(userID string) (*dto.SubscriptionMeResponse, error) {
	plan, err := s.users.PlanOf(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildMe(userID, plan)
}

func (s *SubscriptionServiceImpl) SetPlan(userID string, req dto.SetPlanRequest) (*dto.SubscriptionMeResponse, error) {
	plan := models.Plan(req.Plan)
	if !plan.Valid() {
		return nil, apperrors.ErrUnknownPlan
	}
	if err := s.users.UpdatePlan(userID, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildMe(userID, plan)
}

func (s *SubscriptionServiceImpl) buildMe(userID string, plan models.Plan) (*dto.SubscriptionMeResponse, error) {
	usage, err := s.quota.Usage(userID)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]dto.UsageEntry, len(usage))
	for feature, stat := range usage {
		entries[feature] = dto.UsageEntry{Used: stat.Used, Limit: stat.Limit}
	}

	display := plans.DisplayFor(plan)
	price := display.PriceMonthlyCents
	return &dto.SubscriptionMeResponse{
		Plan:              string(plan),
		PlanDisplayName:   display.Name,
		PriceMonthlyCents: &price,
		PriceYearlyCents:  display.PriceYearlyCents,
		Currency:          display.Currency,
		Usage:             entries,
	}, nil
}

// DashboardStats is the landing-page summary: saved jobs, sent
// applications (redirects) and uploaded resume versions.
func (s *SubscriptionServiceImpl) DashboardStats(userID string) (*dto.DashboardStatsResponse, error) {
	saved, err := s.apps.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	sent, err := s.apps.CountRedirectedSince(userID, time.Time{})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	uploaded, err := s.resumes.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.DashboardStatsResponse{
		JobsSaved:        saved,
		ApplicationsSent: sent,
		ResumesUploaded:  uploaded,
	}, nil
}
