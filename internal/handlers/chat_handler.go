package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathpilot_backend/internal/middleware"
	"pathpilot_backend/internal/services/dto"
)

type ChatHandler struct {
	*BaseHandler
}

func NewChatHandler(base *BaseHandler) *ChatHandler {
	return &ChatHandler{BaseHandler: base}
}

func (h *ChatHandler) RegisterRoutes(rg *gin.RouterGroup) {
	chat := rg.Group("/chat")
	chat.Use(middleware.AuthMiddleware())
	{
		chat.POST("", h.Chat)
		chat.GET("", h.Conversations)
		chat.GET("/:id/messages", h.History)
	}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChatRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.Services(c).Chat.Chat(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) Conversations(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	convs, err := h.Services(c).Chat.Conversations(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(convs))
	for _, conv := range convs {
		out = append(out, gin.H{
			"id":         conv.ID,
			"title":      conv.Title,
			"created_at": conv.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

func (h *ChatHandler) History(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	msgs, err := h.Services(c).Chat.History(userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, gin.H{
			"role":       m.Role,
			"content":    m.Content,
			"created_at": m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}
