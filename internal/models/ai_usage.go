package models

import "time"

// Метерируемые AI-фичи, по которым ведётся счётчик за период
const (
	FeatureResumeAI   = "resume_ai"
	FeatureCareerChat = "career_chat"
)

// AIUsage is the permanent usage ledger. One row per (user, feature,
// calendar month); created lazily on first use, only ever incremented.
type AIUsage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_usage_user_feature_period"`
	Feature   string    `gorm:"type:varchar(40);not null;uniqueIndex:idx_usage_user_feature_period"`
	Period    string    `gorm:"type:varchar(7);not null;uniqueIndex:idx_usage_user_feature_period"` // "YYYY-MM", UTC
	Count     int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (AIUsage) TableName() string {
	return "ai_usage"
}
