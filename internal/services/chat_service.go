package services

import (
	"context"
	"fmt"
	"strings"

	"pathpilot_backend/internal/llm"
	"pathpilot_backend/internal/logger"
	"pathpilot_backend/internal/models"
	"pathpilot_backend/internal/repositories"
	"pathpilot_backend/internal/services/dto"
	"pathpilot_backend/pkg/apperrors"
)

const (
	chatHistoryWindow    = 10
	chatProfileLimit     = 1500
	defaultConvTitle     = "Career guidance"
	careerCoachSystemFmt = "You are a supportive career coach. Help with career goals, job search, skills, and advice. Be concise and actionable. Context about the user: %s"
)

// ChatService runs the metered career-coach conversation flow.
type ChatService interface {
	Chat(ctx context.Context, userID string, req dto.ChatRequest) (*dto.ChatResponse, error)
	Conversations(userID string) ([]models.Conversation, error)
	History(userID, conversationID string) ([]models.Message, error)
}

type ChatServiceImpl struct {
	convs     repositories.ConversationRepository
	resumes   repositories.ResumeRepository
	quota     QuotaService
	completer llm.Completer
}

func NewChatService(
	convs repositories.ConversationRepository,
	resumes repositories.ResumeRepository,
	quota QuotaService,
	completer llm.Completer,
) *ChatServiceImpl {
	return &ChatServiceImpl{convs: convs, resumes: resumes, quota: quota, completer: completer}
}

// Chat checks the monthly message quota, appends the user message to
// the conversation (creating one when no id is given), asks the coach
// and stores the reply. The quota is burned only after a reply exists.
func (s *ChatServiceImpl) Chat(ctx context.Context, userID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	if _, err := s.quota.CheckCareerChat(userID); err != nil {
		return nil, err
	}

	conv, err := s.resolveConversation(userID, req.ConversationID)
	if err != nil {
		return nil, err
	}

	history, err := s.convs.ListMessages(conv.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userMsg := &models.Message{
		ConversationID: conv.ID,
		Role:           models.MessageRoleUser,
		Content:        req.Message,
	}
	if err := s.convs.AddMessage(userMsg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	reply, err := s.completer.Complete(ctx,
		fmt.Sprintf(careerCoachSystemFmt, s.userProfile(userID)),
		buildChatPrompt(history, req.Message), 800)
	if err != nil {
		return nil, apperrors.ErrExternalService(err, "llm", "career chat failed")
	}

	if err := s.convs.AddMessage(&models.Message{
		ConversationID: conv.ID,
		Role:           models.MessageRoleAssistant,
		Content:        reply,
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.quota.RecordUsage(userID, models.FeatureCareerChat); err != nil {
		logger.CtxWarn(ctx, "chat usage not recorded", "error", err.Error())
	}

	remaining, err := s.quota.CheckCareerChat(userID)
	if err != nil {
		zero := 0
		remaining = &zero
	}

	return &dto.ChatResponse{
		ConversationID: conv.ID,
		Reply:          reply,
		Remaining:      remaining,
	}, nil
}

// Conversations lists the user's conversations, newest first.
func (s *ChatServiceImpl) Conversations(userID string) ([]models.Conversation, error) {
	convs, err := s.convs.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return convs, nil
}

func (s *ChatServiceImpl) History(userID, conversationID string) ([]models.Message, error) {
	if _, err := s.convs.FindByIDAndUser(conversationID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrConversationNotFound) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	msgs, err := s.convs.ListMessages(conversationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return msgs, nil
}

func (s *ChatServiceImpl) resolveConversation(userID, id string) (*models.Conversation, error) {
	if id != "" {
		conv, err := s.convs.FindByIDAndUser(id, userID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrConversationNotFound) {
				return nil, apperrors.ErrConversationNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return conv, nil
	}
	conv := &models.Conversation{UserID: userID, Title: defaultConvTitle}
	if err := s.convs.Create(conv); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return conv, nil
}

// userProfile is a short resume excerpt used as coaching context.
// Users without a resume get a neutral placeholder.
func (s *ChatServiceImpl) userProfile(userID string) string {
	resume, err := s.resumes.LatestByUser(userID)
	if err != nil {
		return "No resume on file."
	}
	return "User's resume (excerpt): " + truncateRunes(resume.Content, chatProfileLimit)
}

// buildChatPrompt folds the recent history into a transcript so the
// single-turn completer sees the conversation.
func buildChatPrompt(history []models.Message, message string) string {
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, m := range history {
			b.WriteString(string(m.Role))
			b.WriteString(": ")
			b.WriteString(m.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(message)
	return b.String()
}
