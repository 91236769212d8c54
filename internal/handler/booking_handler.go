package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// The self-service booking endpoint is open; everything else is staff-only.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.POST("/api/v1/bookings/self-service", h.CreateSelfService)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.Auth(tokens), middleware.RequireFeature("bookings"))
	{
		bookings.GET("", h.List)
		bookings.GET("/stats", h.Stats)
		bookings.GET("/:id", h.Get)
		bookings.POST("", h.Create)
		bookings.PUT("/:id", h.Update)
		bookings.POST("/:id/advance", h.AdvanceStatus)
	}
}

// List handles GET /api/v1/bookings. Loading the list runs the
// auto-completion sweep.
func (h *BookingHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /api/v1/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create handles POST /api/v1/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req application.CreateBookingRequest
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

// CreateSelfService handles POST /api/v1/bookings/self-service.
func (h *BookingHandler) CreateSelfService(c *gin.Context) {
	var req application.SelfServiceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateSelfService(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update handles PUT /api/v1/bookings/:id.
func (h *BookingHandler) Update(c *gin.Context) {
	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// AdvanceStatus handles POST /api/v1/bookings/:id/advance, moving the
// booking one step along the status cycle.
func (h *BookingHandler) AdvanceStatus(c *gin.Context) {
	result, err := h.service.AdvanceStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Stats handles GET /api/v1/bookings/stats.
func (h *BookingHandler) Stats(c *gin.Context) {
	result, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
