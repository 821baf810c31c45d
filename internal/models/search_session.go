package models

import "time"

// SearchSession is one resolved cascade run for a normalized query.
// Sessions are immutable once written; same-day reuse only reads them.
type SearchSession struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	QueryText string    `gorm:"not null;index:idx_session_query"`
	Location  string    `gorm:"index:idx_session_query"`
	Source    string    `gorm:"type:varchar(40)"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	// Relations
	Jobs []SessionJob `gorm:"foreignKey:SessionID"`
}

// SessionJob links a session to a job, keeping the cascade's result order.
type SessionJob struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	SessionID int64 `gorm:"not null;index"`
	JobID     int64 `gorm:"not null"`
	Position  int   `gorm:"not null"`
}
