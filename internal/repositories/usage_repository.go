package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pathpilot_backend/internal/models"
)

type UsageRepository interface {
	// Count returns the accumulated usage for (user, feature, period);
	// zero when no row exists yet.
	Count(userID, feature, period string) (int, error)
	// Increment bumps the counter, creating the row lazily on first
	// use in a period. The row upsert is atomic; the caller's
	// check-then-increment sequence is not.
	Increment(userID, feature, period string) error
	ListForPeriod(userID, period string) ([]models.AIUsage, error)
}

type UsageRepositoryImpl struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &UsageRepositoryImpl{db: db}
}

func (r *UsageRepositoryImpl) Count(userID, feature, period string) (int, error) {
	var usage models.AIUsage
	err := r.db.First(&usage, "user_id = ? AND feature = ? AND period = ?", userID, feature, period).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return usage.Count, nil
}

func (r *UsageRepositoryImpl) Increment(userID, feature, period string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AIUsage{}).
			Where("user_id = ? AND feature = ? AND period = ?", userID, feature, period).
			UpdateColumn("count", gorm.Expr("count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		usage := models.AIUsage{
			UserID:  userID,
			Feature: feature,
			Period:  period,
			Count:   1,
		}
		if err := tx.Create(&usage).Error; err != nil {
			// гонка на создании строки: уникальный индекс отбил
			// дубликат, инкрементируем существующую
			retry := tx.Model(&models.AIUsage{}).
				Where("user_id = ? AND feature = ? AND period = ?", userID, feature, period).
				UpdateColumn("count", gorm.Expr("count + 1"))
			if retry.Error != nil {
				return retry.Error
			}
			if retry.RowsAffected == 0 {
				return err
			}
		}
		return nil
	})
}

func (r *UsageRepositoryImpl) ListForPeriod(userID, period string) ([]models.AIUsage, error) {
	var rows []models.AIUsage
	err := r.db.Where("user_id = ? AND period = ?", userID, period).Find(&rows).Error
	return rows, err
}
