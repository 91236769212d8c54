package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stayfront/hotel-console/internal/application"
	"github.com/stayfront/hotel-console/internal/auth"
	"github.com/stayfront/hotel-console/internal/domain/servicereq"
	"github.com/stayfront/hotel-console/internal/middleware"
	"github.com/stayfront/hotel-console/internal/response"
)

// ServiceRequestHandler handles HTTP requests for the service request queue.
type ServiceRequestHandler struct {
	service *application.ServiceRequestService
}

// NewServiceRequestHandler creates a new ServiceRequestHandler.
func NewServiceRequestHandler(service *application.ServiceRequestService) *ServiceRequestHandler {
	return &ServiceRequestHandler{service: service}
}

// RegisterRoutes registers all service request routes on the given router group.
func (h *ServiceRequestHandler) RegisterRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	requests := r.Group("/api/v1/service-requests")
	requests.Use(middleware.Auth(tokens), middleware.RequireFeature("rooms"))
	{
		requests.GET("", h.List)
		requests.GET("/:id", h.Get)
		requests.POST("", h.Create)
		requests.POST("/:id/assign", h.Assign)
		requests.POST("/:id/start", h.Start)
		requests.POST("/:id/complete", h.Complete)
		requests.POST("/:id/cancel", h.Cancel)
		requests.DELETE("/:id", h.Delete)
	}
}

// List handles GET /api/v1/service-requests. Type, status and priority
// query parameters filter the queue; counters always cover the full
// collection.
func (h *ServiceRequestHandler) List(c *gin.Context) {
	filter := servicereq.Filter{
		Type:     servicereq.Type(c.Query("type")),
		Status:   servicereq.Status(c.Query("status")),
		Priority: servicereq.Priority(c.Query("priority")),
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Get handles GET /api/v1/service-requests/:id.
func (h *ServiceRequestHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create handles POST /api/v1/service-requests.
func (h *ServiceRequestHandler) Create(c *gin.Context) {
	var req application.CreateServiceRequest
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

// Assign handles POST /api/v1/service-requests/:id/assign.
func (h *ServiceRequestHandler) Assign(c *gin.Context) {
	var body struct {
		AssignedTo string `json:"assignedTo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Assign(c.Request.Context(), c.Param("id"), body.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Start handles POST /api/v1/service-requests/:id/start.
func (h *ServiceRequestHandler) Start(c *gin.Context) {
	result, err := h.service.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Complete handles POST /api/v1/service-requests/:id/complete.
func (h *ServiceRequestHandler) Complete(c *gin.Context) {
	result, err := h.service.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Cancel handles POST /api/v1/service-requests/:id/cancel.
func (h *ServiceRequestHandler) Cancel(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete handles DELETE /api/v1/service-requests/:id.
func (h *ServiceRequestHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
