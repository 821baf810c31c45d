package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pathpilot_backend/internal/models"
)

// newTestDB открывает изолированную sqlite-базу на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Resume{},
		&models.Job{},
		&models.Application{},
		&models.SearchSession{},
		&models.SessionJob{},
		&models.Conversation{},
		&models.Message{},
		&models.AIUsage{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, plan models.Plan) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "x",
		Plan:         plan,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
