package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// AuthHandler handles sign-in, registration and credential changes.
type AuthHandler struct {
	service *application.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *application.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterRoutes registers all auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.POST("/api/v1/auth/signin", h.SignIn)
	r.POST("/api/v1/auth/signup", h.SignUp)

	account := r.Group("/api/v1/auth")
	account.Use(middleware.Auth(tokens))
	{
		account.POST("/change-password", h.ChangePassword)
		account.PUT("/email", h.UpdateEmail)
	}
}

// SignIn handles POST /api/v1/auth/signin.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req application.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, session)
}

// SignUp handles POST /api/v1/auth/signup.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req application.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// ChangePassword handles POST /api/v1/auth/change-password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req application.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateEmail handles PUT /api/v1/auth/email.
func (h *AuthHandler) UpdateEmail(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.UpdateEmail(c.Request.Context(), userID, body.Email, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	// Never echo the credential hash.
	updated.PasswordHash = ""
	response.Success(c, updated)
}
