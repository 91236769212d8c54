package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// DashboardHandler serves the landing-page summary.
type DashboardHandler struct {
	service *application.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard route on the given router group.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.GET("/api/v1/dashboard", middleware.Auth(tokens), h.Summary)
}

// Summary handles GET /api/v1/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	result, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
