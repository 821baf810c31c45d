package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pathpilot_backend/internal/models"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	FindByUserAndJob(userID string, jobID int64) (*models.Application, error)
	Create(app *models.Application) error
	Update(app *models.Application) error
	// ListByUser returns the user's applications with jobs preloaded,
	// newest first.
	ListByUser(userID string) ([]models.Application, error)
	// CountByUser is the capacity-style saved-jobs total.
	CountByUser(userID string) (int64, error)
	// CountRedirectedSince counts assisted-apply redirects recorded at
	// or after the given instant.
	CountRedirectedSince(userID string, since time.Time) (int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByUserAndJob(userID string, jobID int64) (*models.Application, error) {
	var app models.Application
	err := r.db.First(&app, "user_id = ? AND job_id = ?", userID, jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *ApplicationRepositoryImpl) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepositoryImpl) ListByUser(userID string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.Preload("Job").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *ApplicationRepositoryImpl) CountRedirectedSince(userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("user_id = ? AND status = ? AND redirected_at >= ?", userID, models.ApplicationStatusRedirected, since).
		Count(&count).Error
	return count, err
}
