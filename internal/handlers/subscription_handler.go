package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathpilot_backend/internal/middleware"
	"pathpilot_backend/internal/services/dto"
)

type SubscriptionHandler struct {
	*BaseHandler
}

func NewSubscriptionHandler(base *BaseHandler) *SubscriptionHandler {
	return &SubscriptionHandler{BaseHandler: base}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sub := rg.Group("/subscription")
	sub.Use(middleware.AuthMiddleware())
	{
		sub.GET("/me", h.Me)
		sub.POST("/plan", h.SetPlan)
	}

	dashboard := rg.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", h.DashboardStats)
	}
}

func (h *SubscriptionHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.Services(c).Subscription.Me(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetPlan переключает тариф без платежного провайдера
func (h *SubscriptionHandler) SetPlan(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SetPlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.Services(c).Subscription.SetPlan(userID, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SubscriptionHandler) DashboardStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.Services(c).Subscription.DashboardStats(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
