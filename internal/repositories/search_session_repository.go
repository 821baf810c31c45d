package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pathpilot_backend/internal/models"
)

var ErrSessionNotFound = errors.New("search session not found")

type SearchSessionRepository interface {
	// FindSameDay returns the newest session for the normalized query
	// created on the current calendar day, or ErrSessionNotFound.
	FindSameDay(query models.NormalizedQuery) (*models.SearchSession, error)
	// JobIDs returns the session's job ids in original insertion order.
	JobIDs(sessionID int64) ([]int64, error)
	// Store writes a session with its ordered job links in one
	// transaction.
	Store(query models.NormalizedQuery, source string, jobIDs []int64) (*models.SearchSession, error)
}

type SearchSessionRepositoryImpl struct {
	db *gorm.DB
	// подменяется в тестах
	now func() time.Time
}

func NewSearchSessionRepository(db *gorm.DB) *SearchSessionRepositoryImpl {
	return &SearchSessionRepositoryImpl{db: db, now: time.Now}
}

func (r *SearchSessionRepositoryImpl) FindSameDay(query models.NormalizedQuery) (*models.SearchSession, error) {
	now := r.now()
	// граница календарного дня сервера, не скользящее окно 24ч
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var session models.SearchSession
	err := r.db.
		Where("query_text = ? AND location = ? AND created_at >= ?", query.Text, query.Location, midnight).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *SearchSessionRepositoryImpl) JobIDs(sessionID int64) ([]int64, error) {
	var links []models.SessionJob
	if err := r.db.Where("session_id = ?", sessionID).Order("position ASC").Find(&links).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.JobID)
	}
	return ids, nil
}

func (r *SearchSessionRepositoryImpl) Store(query models.NormalizedQuery, source string, jobIDs []int64) (*models.SearchSession, error) {
	session := models.SearchSession{
		QueryText: query.Text,
		Location:  query.Location,
		Source:    source,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		for i, jobID := range jobIDs {
			link := models.SessionJob{
				SessionID: session.ID,
				JobID:     jobID,
				Position:  i,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}
