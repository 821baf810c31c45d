package models

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Conversation struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index"`
	Title  string

	// Relations
	Messages []Message `gorm:"foreignKey:ConversationID"`
}

type Message struct {
	BaseModel
	ConversationID string      `gorm:"type:uuid;not null;index"`
	Role           MessageRole `gorm:"type:varchar(20);not null"`
	Content        string      `gorm:"type:text;not null"`
}
