package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/pkg/apperrors"
)

func newQuotaService(db *gorm.DB) *QuotaServiceImpl {
	return NewQuotaService(
		repositories.NewUserRepository(db),
		repositories.NewUsageRepository(db),
		repositories.NewApplicationRepository(db),
	)
}

func TestQuotaService_ResumeAIFreeCap(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "free@test.dev", models.PlanFree)
	svc := newQuotaService(db)

	remaining, err := svc.CheckResumeAI(user.ID)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Equal(t, 2, *remaining)

	require.NoError(t, svc.RecordUsage(user.ID, models.FeatureResumeAI))
	require.NoError(t, svc.RecordUsage(user.ID, models.FeatureResumeAI))

	_, err = svc.CheckResumeAI(user.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodePlanLimit, appErr.Code)
	assert.Equal(t, 403, appErr.HTTPCode)
	assert.Contains(t, appErr.Message, "Upgrade your plan")

	// отказ ничего не инкрементирует
	used, err := repositories.NewUsageRepository(db).Count(user.ID, models.FeatureResumeAI, svc.CurrentPeriod())
	require.NoError(t, err)
	assert.Equal(t, 2, used)
}

func TestQuotaService_ProChatUnlimited(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "pro@test.dev", models.PlanPro)
	svc := newQuotaService(db)

	for i := 0; i < 25; i++ {
		require.NoError(t, svc.RecordUsage(user.ID, models.FeatureCareerChat))
	}
	remaining, err := svc.CheckCareerChat(user.ID)
	require.NoError(t, err)
	assert.Nil(t, remaining)
}

func TestQuotaService_RedirectsCountedFromApplications(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "redirects@test.dev", models.PlanFree)
	svc := newQuotaService(db)

	now := time.Now().UTC()
	for i := 0; i < 10; i++ {
		job := &models.Job{
			Title:       "Job",
			Company:     string(rune('a' + i)),
			IdentityKey: models.JobIdentityKey("Job", string(rune('a'+i))),
		}
		require.NoError(t, db.Create(job).Error)
		require.NoError(t, db.Create(&models.Application{
			UserID:       user.ID,
			JobID:        job.ID,
			Status:       models.ApplicationStatusRedirected,
			RedirectedAt: &now,
		}).Error)
	}

	err := svc.CheckRedirect(user.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodePlanLimit, appErr.Code)
}

func TestQuotaService_RedirectsFromPreviousMonthIgnored(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "lastmonth@test.dev", models.PlanFree)
	svc := newQuotaService(db)

	old := time.Now().UTC().AddDate(0, -2, 0)
	for i := 0; i < 10; i++ {
		job := &models.Job{
			Title:       "Old Job",
			Company:     string(rune('a' + i)),
			IdentityKey: models.JobIdentityKey("Old Job", string(rune('a'+i))),
		}
		require.NoError(t, db.Create(job).Error)
		require.NoError(t, db.Create(&models.Application{
			UserID:       user.ID,
			JobID:        job.ID,
			Status:       models.ApplicationStatusRedirected,
			RedirectedAt: &old,
		}).Error)
	}

	assert.NoError(t, svc.CheckRedirect(user.ID))
}

func TestQuotaService_JobSaveCapacity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "saver@test.dev", models.PlanFree)
	svc := newQuotaService(db)

	for i := 0; i < 9; i++ {
		job := &models.Job{
			Title:       "Saved",
			Company:     string(rune('a' + i)),
			IdentityKey: models.JobIdentityKey("Saved", string(rune('a'+i))),
		}
		require.NoError(t, db.Create(job).Error)
		require.NoError(t, db.Create(&models.Application{
			UserID: user.ID,
			JobID:  job.ID,
			Status: models.ApplicationStatusShortlisted,
		}).Error)
	}
	assert.NoError(t, svc.CheckJobSave(user.ID))

	job := &models.Job{Title: "Saved", Company: "last", IdentityKey: models.JobIdentityKey("Saved", "last")}
	require.NoError(t, db.Create(job).Error)
	require.NoError(t, db.Create(&models.Application{
		UserID: user.ID,
		JobID:  job.ID,
		Status: models.ApplicationStatusShortlisted,
	}).Error)

	assert.Error(t, svc.CheckJobSave(user.ID))
}

func TestQuotaService_FeatureLock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	free := createTestUser(t, db, "locked@test.dev", models.PlanFree)
	pro := createTestUser(t, db, "unlocked@test.dev", models.PlanPro)
	svc := newQuotaService(db)

	err := svc.RequireAIRecommendations(free.ID)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeFeatureLocked, appErr.Code)
	assert.Equal(t, 403, appErr.HTTPCode)

	assert.NoError(t, svc.RequireAIRecommendations(pro.ID))
}

func TestQuotaService_UsageTable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "usage@test.dev", models.PlanFree)
	svc := newQuotaService(db)

	require.NoError(t, svc.RecordUsage(user.ID, models.FeatureResumeAI))

	usage, err := svc.Usage(user.ID)
	require.NoError(t, err)
	require.Contains(t, usage, "resume_ai")
	require.Contains(t, usage, "career_chat")
	require.Contains(t, usage, "job_redirects")
	require.Contains(t, usage, "job_save")

	assert.Equal(t, 1, usage["resume_ai"].Used)
	require.NotNil(t, usage["resume_ai"].Limit)
	assert.Equal(t, 2, *usage["resume_ai"].Limit)
	assert.Equal(t, 0, usage["career_chat"].Used)
}
