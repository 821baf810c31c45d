package repositories

import (
	"errors"

	"gorm.io/gorm"

	"pathpilot_backend/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

type ConversationRepository interface {
	Create(conv *models.Conversation) error
	FindByIDAndUser(id, userID string) (*models.Conversation, error)
	ListByUser(userID string) ([]models.Conversation, error)
	AddMessage(msg *models.Message) error
	ListMessages(conversationID string) ([]models.Message, error)
}

type ConversationRepositoryImpl struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &ConversationRepositoryImpl{db: db}
}

func (r *ConversationRepositoryImpl) Create(conv *models.Conversation) error {
	return r.db.Create(conv).Error
}

func (r *ConversationRepositoryImpl) FindByIDAndUser(id, userID string) (*models.Conversation, error) {
	var conv models.Conversation
	err := r.db.First(&conv, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepositoryImpl) ListByUser(userID string) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&convs).Error
	return convs, err
}

func (r *ConversationRepositoryImpl) AddMessage(msg *models.Message) error {
	return r.db.Create(msg).Error
}

func (r *ConversationRepositoryImpl) ListMessages(conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.Where("conversation_id = ?", conversationID).Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}
