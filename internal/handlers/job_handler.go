package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathpilot_backend/internal/middleware"
	"pathpilot_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
}

func NewJobHandler(base *BaseHandler) *JobHandler {
	return &JobHandler{BaseHandler: base}
}

// RegisterRoutes регистрирует маршруты вакансий. Поиск доступен и
// анонимно, действия требуют авторизации.
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")

	jobs.GET("/search", middleware.OptionalAuthMiddleware(), h.Search)

	authed := jobs.Group("")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.GET("/saved", h.ListSaved)
		authed.POST("/action", h.RecordAction)
		authed.POST("/cover-letter", h.CoverLetter)
	}
}

// Search - GET /api/v1/jobs/search?q=...&location=...&remote=true
func (h *JobHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	results := h.Services(c).Search.Search(c.Request.Context(), req.Query, req.Location, req.Remote, middleware.GetUserID(c))

	views := make([]dto.JobView, 0, len(results))
	for _, sj := range results {
		views = append(views, dto.NewJobView(sj))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": views, "count": len(views)})
}

func (h *JobHandler) ListSaved(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	views, err := h.Services(c).Jobs.ListSaved(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": views, "count": len(views)})
}

func (h *JobHandler) RecordAction(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JobActionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.Services(c).Jobs.RecordAction(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": app.JobID,
		"status": app.Status,
	})
}

func (h *JobHandler) CoverLetter(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CoverLetterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	text, err := h.Services(c).Jobs.CoverLetter(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CoverLetterResponse{Text: text})
}
