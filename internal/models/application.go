package models

import "time"

// Application is one user's relationship to a job: viewed, shortlisted
// or redirected to the external apply page. One row per (user, job);
// repeated actions update the status in place.
type Application struct {
	ID           int64             `gorm:"primaryKey;autoIncrement"`
	UserID       string            `gorm:"type:uuid;not null;uniqueIndex:idx_app_user_job"`
	JobID        int64             `gorm:"not null;uniqueIndex:idx_app_user_job"`
	Status       ApplicationStatus `gorm:"type:varchar(20);not null"`
	RedirectedAt *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	// Relations
	Job Job `gorm:"foreignKey:JobID"`
}
