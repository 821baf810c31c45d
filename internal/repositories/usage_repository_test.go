package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathpilot_backend/internal/models"
)

func TestUsageRepository_LazyCreateAndIncrement(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUsageRepository(db)
	user := createTestUser(t, db, "usage@test.com", models.PlanFree)

	// строки ещё нет: счётчик нулевой, без ошибки
	count, err := repo.Count(user.ID, models.FeatureResumeAI, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, repo.Increment(user.ID, models.FeatureResumeAI, "2026-08"))
	require.NoError(t, repo.Increment(user.ID, models.FeatureResumeAI, "2026-08"))

	count, err = repo.Count(user.ID, models.FeatureResumeAI, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// одна строка на (user, feature, period)
	var rows int64
	require.NoError(t, db.Model(&models.AIUsage{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestUsageRepository_PeriodsAreIndependent(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewUsageRepository(db)
	user := createTestUser(t, db, "periods@test.com", models.PlanFree)

	require.NoError(t, repo.Increment(user.ID, models.FeatureResumeAI, "2026-07"))
	require.NoError(t, repo.Increment(user.ID, models.FeatureCareerChat, "2026-08"))

	count, err := repo.Count(user.ID, models.FeatureResumeAI, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, count, "a new month starts from zero")

	count, err = repo.Count(user.ID, models.FeatureResumeAI, "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rows, err := repo.ListForPeriod(user.ID, "2026-08")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.FeatureCareerChat, rows[0].Feature)
}
