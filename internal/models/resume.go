package models

type Resume struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index"`
	Title   string
	Content string `gorm:"type:text;not null"`
}
