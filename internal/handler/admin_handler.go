package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/user"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// AdminHandler handles the admin console: user management profiles and the
// room-status saga log.
type AdminHandler struct {
	users    *application.UserService
	bookings *application.BookingService
	sagas    *application.SagaLog
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(users *application.UserService, bookings *application.BookingService, sagas *application.SagaLog) *AdminHandler {
	return &AdminHandler{users: users, bookings: bookings, sagas: sagas}
}

// RegisterRoutes registers all admin routes on the given router group.
// Everything here requires the users feature, which only admins hold.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.Auth(tokens), middleware.RequireFeature("users"))
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:id", h.GetUser)
		admin.POST("/users", h.CreateUser)
		admin.PATCH("/users/:id", h.UpdateUser)
		admin.PUT("/users/:id/status", h.SetUserStatus)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.GET("/sagas", h.ListSagas)
		admin.GET("/sagas/failed", h.ListFailedSagas)
		admin.POST("/sagas/:id/retry", h.RetrySaga)
	}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	result, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetUser handles GET /api/v1/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	result, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateUser handles POST /api/v1/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req application.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateUser handles PATCH /api/v1/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var patch user.ProfilePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// SetUserStatus handles PUT /api/v1/admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	var body struct {
		Status user.AccountStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.SetStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSagas handles GET /api/v1/admin/sagas.
func (h *AdminHandler) ListSagas(c *gin.Context) {
	response.Success(c, h.sagas.All())
}

// ListFailedSagas handles GET /api/v1/admin/sagas/failed.
func (h *AdminHandler) ListFailedSagas(c *gin.Context) {
	response.Success(c, h.sagas.Failed())
}

// RetrySaga handles POST /api/v1/admin/sagas/:id/retry, re-running the room
// update of a failed saga.
func (h *AdminHandler) RetrySaga(c *gin.Context) {
	result, err := h.bookings.RetryRoomSync(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
