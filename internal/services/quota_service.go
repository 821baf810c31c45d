package services

import (
	"time"

	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/plans"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/pkg/apperrors"
)

// QuotaService enforces plan limits against the usage ledger and the
// applications table. Checks and increments are separate calls: a
// handler that checks, performs work, then records usage can double
// count under concurrency. The ledger row itself is updated atomically,
// so the counter never loses increments, it only admits an extra call.
type QuotaService interface {
	// CheckResumeAI returns the remaining generations for the current
	// month, or a plan-limit error when the cap is exhausted.
	CheckResumeAI(userID string) (*int, error)
	// CheckCareerChat returns remaining chat messages for the month.
	CheckCareerChat(userID string) (*int, error)
	// CheckRedirect gates the assisted-apply redirect action.
	CheckRedirect(userID string) error
	// CheckJobSave gates storing one more job against the saved total.
	CheckJobSave(userID string) error
	// RecordUsage bumps the period counter for a metered feature.
	RecordUsage(userID, feature string) error
	// RequireAIRecommendations is a pure plan-tier gate.
	RequireAIRecommendations(userID string) error
	// Usage returns the per-feature {used, limit} table for /subscription/me.
	Usage(userID string) (map[string]UsageStat, error)
}

// UsageStat mirrors one line of the subscription usage table.
type UsageStat struct {
	Used  int
	Limit *int
}

type QuotaServiceImpl struct {
	users repositories.UserRepository
	usage repositories.UsageRepository
	apps  repositories.ApplicationRepository
	now   func() time.Time
}

func NewQuotaService(
	users repositories.UserRepository,
	usage repositories.UsageRepository,
	apps repositories.ApplicationRepository,
) *QuotaServiceImpl {
	return &QuotaServiceImpl{
		users: users,
		usage: usage,
		apps:  apps,
		now:   time.Now,
	}
}

// CurrentPeriod is the UTC calendar month key for the usage ledger.
func (s *QuotaServiceImpl) CurrentPeriod() string {
	return s.now().UTC().Format("2006-01")
}

func (s *QuotaServiceImpl) planOf(userID string) (models.Plan, error) {
	plan, err := s.users.PlanOf(userID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *QuotaServiceImpl) CheckResumeAI(userID string) (*int, error) {
	plan, err := s.planOf(userID)
	if err != nil {
		return nil, err
	}
	used, err := s.usage.Count(userID, models.FeatureResumeAI, s.CurrentPeriod())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	allowed, remaining := plans.CheckResumeAI(plan, used)
	if !allowed {
		return nil, apperrors.ErrPlanLimit(models.FeatureResumeAI,
			"You have used all AI resume generations for this month.")
	}
	return remaining, nil
}

func (s *QuotaServiceImpl) CheckCareerChat(userID string) (*int, error) {
	plan, err := s.planOf(userID)
	if err != nil {
		return nil, err
	}
	used, err := s.usage.Count(userID, models.FeatureCareerChat, s.CurrentPeriod())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	allowed, remaining := plans.CheckChatMessages(plan, used)
	if !allowed {
		return nil, apperrors.ErrPlanLimit(models.FeatureCareerChat,
			"You have used all career chat messages for this month.")
	}
	return remaining, nil
}

func (s *QuotaServiceImpl) CheckRedirect(userID string) error {
	plan, err := s.planOf(userID)
	if err != nil {
		return err
	}
	used, err := s.redirectsThisMonth(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	allowed, _ := plans.CheckRedirects(plan, used)
	if !allowed {
		return apperrors.ErrPlanLimit("job_redirects",
			"You have reached your application redirects limit for this month.")
	}
	return nil
}

func (s *QuotaServiceImpl) CheckJobSave(userID string) error {
	plan, err := s.planOf(userID)
	if err != nil {
		return err
	}
	saved, err := s.apps.CountByUser(userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	allowed, _ := plans.CheckJobSave(plan, int(saved))
	if !allowed {
		return apperrors.ErrPlanLimit("job_save",
			"You have reached your saved jobs limit.")
	}
	return nil
}

func (s *QuotaServiceImpl) RecordUsage(userID, feature string) error {
	if err := s.usage.Increment(userID, feature, s.CurrentPeriod()); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *QuotaServiceImpl) RequireAIRecommendations(userID string) error {
	plan, err := s.planOf(userID)
	if err != nil {
		return err
	}
	if !plans.LimitsFor(plan).AIJobRecommendations {
		return apperrors.ErrFeatureLocked("ai_job_recommendations",
			"AI job recommendations are available on Pro and Premium plans.")
	}
	return nil
}

// redirectsThisMonth counts redirected applications since the start of
// the current UTC month. Redirects live in the applications table, not
// the usage ledger.
func (s *QuotaServiceImpl) redirectsThisMonth(userID string) (int, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	n, err := s.apps.CountRedirectedSince(userID, monthStart)
	return int(n), err
}

func (s *QuotaServiceImpl) Usage(userID string) (map[string]UsageStat, error) {
	plan, err := s.planOf(userID)
	if err != nil {
		return nil, err
	}
	limits := plans.LimitsFor(plan)
	period := s.CurrentPeriod()

	resumeUsed, err := s.usage.Count(userID, models.FeatureResumeAI, period)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	chatUsed, err := s.usage.Count(userID, models.FeatureCareerChat, period)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	redirects, err := s.redirectsThisMonth(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	saved, err := s.apps.CountByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return map[string]UsageStat{
		"resume_ai":     {Used: resumeUsed, Limit: limits.ResumeAIPerMonth},
		"career_chat":   {Used: chatUsed, Limit: limits.ChatPerMonth},
		"job_redirects": {Used: redirects, Limit: limits.RedirectsPerMonth},
		"job_save":      {Used: int(saved), Limit: limits.JobSaveLimit},
	}, nil
}
