package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathpilot_backend/internal/middleware"
	"pathpilot_backend/internal/services/dto"
)

type ResumeHandler struct {
	*BaseHandler
}

func NewResumeHandler(base *BaseHandler) *ResumeHandler {
	return &ResumeHandler{BaseHandler: base}
}

func (h *ResumeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	resumes := rg.Group("/resumes")
	resumes.Use(middleware.AuthMiddleware())
	{
		resumes.POST("", h.Create)
		resumes.GET("/latest", h.Latest)
		resumes.POST("/improve", h.Improve)
	}
}

func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resume, err := h.Services(c).Resumes.Save(userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResumeResponse(resume, false))
}

func (h *ResumeHandler) Latest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resume, err := h.Services(c).Resumes.Latest(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResumeResponse(resume, true))
}

// Improve - метерируемая AI-генерация улучшенной версии резюме
func (h *ResumeHandler) Improve(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ImproveResumeRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.Services(c).Resumes.Improve(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
