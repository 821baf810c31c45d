package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Job is a canonical listing shared across search sessions and users.
// Listings are deduplicated by (title, company), not by the numeric id.
type Job struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Company     string `gorm:"not null"`
	Location    string
	Description string `gorm:"type:text"`
	ApplyURL    string
	Source      string `gorm:"type:varchar(40);index"`
	IdentityKey string `gorm:"uniqueIndex;not null"`
	// Снимок исходного payload от агрегатора, как пришёл
	RawAttributes datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

// JobIdentityKey builds the dedup key from already-defaulted title/company.
func JobIdentityKey(title, company string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(company))
}
