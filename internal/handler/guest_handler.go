package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/guest"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// GuestHandler handles HTTP requests for guest operations.
type GuestHandler struct {
	service *application.GuestService
}

// NewGuestHandler creates a new GuestHandler.
func NewGuestHandler(service *application.GuestService) *GuestHandler {
	return &GuestHandler{service: service}
}

// RegisterRoutes registers all guest routes on the given router group.
func (h *GuestHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	guests := r.Group("/api/v1/guests")
	guests.Use(middleware.Auth(tokens), middleware.RequireFeature("guests"))
	{
		guests.GET("", h.List)
		guests.GET("/stats", h.Stats)
		guests.GET("/:id", h.Get)
		guests.POST("", h.Create)
		guests.PATCH("/:id", h.Update)
		guests.POST("/:id/toggle-vip", h.ToggleVip)
		guests.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api/v1/guests. The optional "search" query filters by
// name, email or phone; every load runs the VIP classification.
func (h *GuestHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /api/v1/guests/:id.
func (h *GuestHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create handles POST /api/v1/guests.
func (h *GuestHandler) Create(c *gin.Context) {
	var req application.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PATCH /api/v1/guests/:id.
func (h *GuestHandler) Update(c *gin.Context) {
	var patch guest.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ToggleVip handles POST /api/v1/guests/:id/toggle-vip.
func (h *GuestHandler) ToggleVip(c *gin.Context) {
	result, err := h.service.ToggleVip(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /api/v1/guests/:id.
func (h *GuestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats handles GET /api/v1/guests/stats.
func (h *GuestHandler) Stats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
