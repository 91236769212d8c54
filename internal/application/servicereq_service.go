package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/domain/servicereq"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

// CreateServiceRequest is the service request form.
type CreateServiceRequest struct {
	RoomNumber  string              `json:"roomNumber"`
	Type        servicereq.Type     `json:"type"`
	Description string              `json:"description"`
	Priority    servicereq.Priority `json:"priority"`
}

// ServiceRequestList is a filtered request queue with the counters derived
// from the full collection, not the filtered view.
type ServiceRequestList struct {
	Requests []servicereq.Request `json:"requests"`
	Counters servicereq.Counters  `json:"counters"`
}

// ServiceRequestService manages the staff service request queue.
type ServiceRequestService struct {
	stores *store.Stores
	hub    *notifier.Hub
	logger *zap.Logger
	now    func() time.Time
}

// NewServiceRequestService creates the service request service.
func NewServiceRequestService(stores *store.Stores, hub *notifier.Hub, logger *zap.Logger) *ServiceRequestService {
	return &ServiceRequestService{stores: stores, hub: hub, logger: logger, now: time.Now}
}

// List returns the queue filtered by type, status and priority, with the
// counters always computed over the unfiltered collection.
func (s *ServiceRequestService) List(ctx context.Context, filter servicereq.Filter) (ServiceRequestList, error) {
	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		return ServiceRequestList{}, fmt.Errorf("failed to list service requests: %w", err)
	}

	s.hub.Requests.Publish(requests)
	return ServiceRequestList{
		Requests: filter.Apply(requests),
		Counters: servicereq.Count(requests),
	}, nil
}

// Get retrieves a single service request.
func (s *ServiceRequestService) Get(ctx context.Context, id string) (servicereq.Request, error) {
	return s.stores.Requests.Get(ctx, id)
}

// Create raises a new request. It starts pending, stamped with the current
// time; priority defaults to medium.
func (s *ServiceRequestService) Create(ctx context.Context, req CreateServiceRequest) (servicereq.Request, error) {
	if req.RoomNumber == "" {
		return servicereq.Request{}, apperrors.NewValidationError("room number is required")
	}
	if !req.Type.IsValid() {
		return servicereq.Request{}, apperrors.NewValidationError(fmt.Sprintf("invalid service type: %s", req.Type))
	}
	priority := req.Priority
	if priority == "" {
		priority = servicereq.PriorityMedium
	}
	if !priority.IsValid() {
		return servicereq.Request{}, apperrors.NewValidationError(fmt.Sprintf("invalid priority: %s", req.Priority))
	}

	ids, err := s.existingIDs(ctx)
	if err != nil {
		return servicereq.Request{}, err
	}

	r := servicereq.Request{
		ID:          store.NextID(ids),
		RoomNumber:  req.RoomNumber,
		Type:        req.Type,
		Description: req.Description,
		Status:      servicereq.StatusPending,
		Priority:    priority,
		RequestedAt: s.now(),
	}

	created, err := s.stores.Requests.Create(ctx, r)
	if err != nil {
		return servicereq.Request{}, fmt.Errorf("failed to save service request: %w", err)
	}
	s.publishSnapshot(ctx)
	return created, nil
}

// Assign puts the request in progress under the given assignee.
func (s *ServiceRequestService) Assign(ctx context.Context, id, assignee string) (servicereq.Request, error) {
	if assignee == "" {
		return servicereq.Request{}, apperrors.NewValidationError("assignee is required")
	}
	status := servicereq.StatusInProgress
	return s.patch(ctx, id, servicereq.Patch{Status: &status, AssignedTo: &assignee})
}

// Start moves a pending request to in-progress.
func (s *ServiceRequestService) Start(ctx context.Context, id string) (servicereq.Request, error) {
	r, err := s.stores.Requests.Get(ctx, id)
	if err != nil {
		return servicereq.Request{}, err
	}
	if r.Status != servicereq.StatusPending {
		return servicereq.Request{}, apperrors.NewInvalidStateError(string(r.Status), string(servicereq.StatusInProgress))
	}
	status := servicereq.StatusInProgress
	return s.patch(ctx, id, servicereq.Patch{Status: &status})
}

// Complete closes the request and stamps the completion time.
func (s *ServiceRequestService) Complete(ctx context.Context, id string) (servicereq.Request, error) {
	r, err := s.stores.Requests.Get(ctx, id)
	if err != nil {
		return servicereq.Request{}, err
	}
	if r.Status == servicereq.StatusCompleted || r.Status == servicereq.StatusCancelled {
		return servicereq.Request{}, apperrors.NewInvalidStateError(string(r.Status), string(servicereq.StatusCompleted))
	}
	status := servicereq.StatusCompleted
	completedAt := s.now()
	return s.patch(ctx, id, servicereq.Patch{Status: &status, CompletedAt: &completedAt})
}

// Cancel drops the request from the active queue.
func (s *ServiceRequestService) Cancel(ctx context.Context, id string) (servicereq.Request, error) {
	r, err := s.stores.Requests.Get(ctx, id)
	if err != nil {
		return servicereq.Request{}, err
	}
	if r.Status == servicereq.StatusCompleted || r.Status == servicereq.StatusCancelled {
		return servicereq.Request{}, apperrors.NewInvalidStateError(string(r.Status), string(servicereq.StatusCancelled))
	}
	status := servicereq.StatusCancelled
	return s.patch(ctx, id, servicereq.Patch{Status: &status})
}

// Delete removes a request entirely.
func (s *ServiceRequestService) Delete(ctx context.Context, id string) error {
	if _, err := s.stores.Requests.Get(ctx, id); err != nil {
		return err
	}
	if err := s.stores.Requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service request: %w", err)
	}
	s.publishSnapshot(ctx)
	return nil
}

func (s *ServiceRequestService) patch(ctx context.Context, id string, patch servicereq.Patch) (servicereq.Request, error) {
	updated, err := s.stores.Requests.Patch(ctx, id, patch)
	if err != nil {
		return servicereq.Request{}, err
	}
	s.publishSnapshot(ctx)
	return updated, nil
}

func (s *ServiceRequestService) existingIDs(ctx context.Context) ([]string, error) {
	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (s *ServiceRequestService) publishSnapshot(ctx context.Context) {
	requests, err := s.stores.Requests.List(ctx)
	if err != nil {
		s.logger.Debug("skipping service request snapshot publish", zap.Error(err))
		return
	}
	s.hub.Requests.Publish(requests)
}
