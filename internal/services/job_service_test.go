package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

func newJobService(db *gorm.DB) *JobServiceImpl {
	return NewJobService(
		repositories.NewJobRepository(db),
		repositories.NewApplicationRepository(db),
		newQuotaService(db),
		llm.NewDisabledCompleter(),
	)
}

func TestJobService_RecordActionFromPayload(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "actions@test.dev", models.PlanFree)
	svc := newJobService(db)

	app, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "shortlisted",
		Job:    &dto.JobPayload{Title: "Backend Engineer", Company: "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, app.Status)
	assert.Positive(t, app.JobID)
	assert.Nil(t, app.RedirectedAt)

	// повторное действие по той же вакансии обновляет строку, не плодит новую
	again, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		JobID:  app.JobID,
		Action: "redirected",
	})
	require.NoError(t, err)
	assert.Equal(t, app.ID, again.ID)
	assert.Equal(t, models.ApplicationStatusRedirected, again.Status)
	require.NotNil(t, again.RedirectedAt)

	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestJobService_RecordActionUnknownJob(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "missing@test.dev", models.PlanFree)
	svc := newJobService(db)

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		JobID:  99999,
		Action: "viewed",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestJobService_RecordActionInvalid(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "invalid@test.dev", models.PlanFree)
	svc := newJobService(db)

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "applied",
		Job:    &dto.JobPayload{Title: "X", Company: "Y"},
	})
	assert.Error(t, err)

	// без job_id и без payload действие некуда привязать
	_, err = svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{Action: "viewed"})
	assert.Error(t, err)
}

func TestJobService_RedirectQuotaCheckedBeforeWrite(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "gated@test.dev", models.PlanFree)
	svc := newJobService(db)

	// исчерпываем лимит редиректов
	for i := 0; i < 10; i++ {
		_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
			Action: "redirected",
			Job:    &dto.JobPayload{Title: "Job", Company: string(rune('a' + i))},
		})
		require.NoError(t, err)
	}

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "redirected",
		Job:    &dto.JobPayload{Title: "Job", Company: "overflow"},
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodePlanLimit, appErr.Code)

	// отказ ничего не записал
	var count int64
	require.NoError(t, db.Model(&models.Application{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)
}

func TestJobService_SaveQuotaCheckedBeforePersist(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "capacity@test.dev", models.PlanFree)
	svc := newJobService(db)

	// заполняем вместимость сохранённых вакансий до предела
	for i := 0; i < 10; i++ {
		_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
			Action: "shortlisted",
			Job:    &dto.JobPayload{Title: "Role", Company: string(rune('a' + i))},
		})
		require.NoError(t, err)
	}

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "shortlisted",
		Job:    &dto.JobPayload{Title: "New Role", Company: "NewCo"},
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodePlanLimit, appErr.Code)

	// отклонённое сохранение не должно оставить вакансию в хранилище
	var jobCount int64
	require.NoError(t, db.Model(&models.Job{}).
		Where("identity_key = ?", models.JobIdentityKey("New Role", "NewCo")).
		Count(&jobCount).Error)
	assert.EqualValues(t, 0, jobCount)

	var appCount int64
	require.NoError(t, db.Model(&models.Application{}).Count(&appCount).Error)
	assert.EqualValues(t, 10, appCount)
}

func TestJobService_ViewedRejectsPayload(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "viewer@test.dev", models.PlanFree)
	svc := newJobService(db)

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "viewed",
		Job:    &dto.JobPayload{Title: "Drive-by", Company: "Corp"},
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)

	// просмотр с payload ничего не пишет
	var jobCount int64
	require.NoError(t, db.Model(&models.Job{}).Count(&jobCount).Error)
	assert.EqualValues(t, 0, jobCount)

	var appCount int64
	require.NoError(t, db.Model(&models.Application{}).Count(&appCount).Error)
	assert.EqualValues(t, 0, appCount)
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncateRunes("short", 10))

	// многобайтовые руны режутся по границе символа, не байта
	cut := truncateRunes(strings.Repeat("ы", 30), 20)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, 20, utf8.RuneCountInString(cut))

	assert.Equal(t, "ab", truncateRunes("abc", 2))
}

func TestJobService_ListSaved(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "list@test.dev", models.PlanFree)
	svc := newJobService(db)

	_, err := svc.RecordAction(context.Background(), user.ID, dto.JobActionRequest{
		Action: "shortlisted",
		Job:    &dto.JobPayload{Title: "Platform Engineer", Company: "Initech"},
	})
	require.NoError(t, err)

	views, err := svc.ListSaved(user.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Platform Engineer", views[0].Title)
	assert.Equal(t, models.ApplicationStatusShortlisted, views[0].Status)
}

func TestJobService_CoverLetter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	user := createTestUser(t, db, "letters@test.dev", models.PlanFree)
	svc := newJobService(db)

	// ad-hoc payload без сохраненной вакансии
	text, err := svc.CoverLetter(context.Background(), user.ID, dto.CoverLetterRequest{
		Job: &dto.JobPayload{Title: "SRE", Company: "Globex", Description: "keep things up"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	// чужую вакансию без application-строки не отдаём
	job := &models.Job{Title: "Hidden", Company: "Corp", IdentityKey: models.JobIdentityKey("Hidden", "Corp")}
	require.NoError(t, db.Create(job).Error)
	_, err = svc.CoverLetter(context.Background(), user.ID, dto.CoverLetterRequest{JobID: job.ID})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
