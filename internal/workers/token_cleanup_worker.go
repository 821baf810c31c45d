package workers

import (
	"github.com/robfig/cron/v3"

	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/repositories"
)

// TokenCleanupWorker nightly removes expired refresh tokens; logins and
// rotations keep working without it, the table just grows.
type TokenCleanupWorker struct {
	users repositories.UserRepository
	cron  *cron.Cron
}

func NewTokenCleanupWorker(users repositories.UserRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		users: users,
		cron:  cron.New(),
	}
}

func (w *TokenCleanupWorker) Start() error {
	_, err := w.cron.AddFunc("30 3 * * *", w.Cleanup)
	if err != nil {
		return err
	}
	w.cron.Start()
	logger.Info("token cleanup worker started")
	return nil
}

func (w *TokenCleanupWorker) Stop() {
	w.cron.Stop()
}

func (w *TokenCleanupWorker) Cleanup() {
	if err := w.users.CleanExpiredRefreshTokens(); err != nil {
		logger.Error("token cleanup failed", "error", err)
		return
	}
	logger.Debug("expired refresh tokens cleaned")
}
