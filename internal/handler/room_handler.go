package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// RoomHandler handles HTTP requests for room inventory operations.
type RoomHandler struct {
	service *application.RoomService
}

// NewRoomHandler creates a new RoomHandler.
func NewRoomHandler(service *application.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// RegisterRoutes registers all room routes on the given router group. The
// availability listing is open so the self-service flow can browse rooms.
func (h *RoomHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.GET("/api/v1/rooms/available", h.Available)

	rooms := r.Group("/api/v1/rooms")
	rooms.Use(middleware.Auth(tokens), middleware.RequireFeature("rooms"))
	{
		rooms.GET("", h.List)
		rooms.GET("/stats", h.Stats)
		rooms.GET("/:id", h.Get)
		rooms.POST("", h.Create)
		rooms.PATCH("/:id", h.Update)
		rooms.PUT("/:id/status", h.SetStatus)
		rooms.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api/v1/rooms.
func (h *RoomHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Available handles GET /api/v1/rooms/available.
func (h *RoomHandler) Available(c *gin.Context) {
	result, err := h.service.Available(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /api/v1/rooms/:id.
func (h *RoomHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create handles POST /api/v1/rooms.
func (h *RoomHandler) Create(c *gin.Context) {
	var req application.CreateRoomRequest
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

// Update handles PATCH /api/v1/rooms/:id.
func (h *RoomHandler) Update(c *gin.Context) {
	var patch room.Patch
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

// SetStatus handles PUT /api/v1/rooms/:id/status.
func (h *RoomHandler) SetStatus(c *gin.Context) {
	var body struct {
		Status room.Status `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /api/v1/rooms/:id.
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Stats handles GET /api/v1/rooms/stats.
func (h *RoomHandler) Stats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
