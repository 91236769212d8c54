package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

// CreateRoomRequest is the room creation form.
type CreateRoomRequest struct {
	Number      string      `json:"number"`
	Type        room.Type   `json:"type"`
	Price       float64     `json:"price"`
	Status      room.Status `json:"status"`
	Description string      `json:"description"`
	Amenities   []string    `json:"amenities"`
}

// RoomStats aggregates room counters by status.
type RoomStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Reserved    int `json:"reserved"`
	Maintenance int `json:"maintenance"`
}

// RoomService manages the room inventory.
type RoomService struct {
	stores *store.Stores
	hub    *notifier.Hub
	logger *zap.Logger
}

// NewRoomService creates the room service.
func NewRoomService(stores *store.Stores, hub *notifier.Hub, logger *zap.Logger) *RoomService {
	return &RoomService{stores: stores, hub: hub, logger: logger}
}

// List returns all rooms in numeric room-number order.
func (s *RoomService) List(ctx context.Context) ([]room.Room, error) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	room.SortByNumber(rooms)
	s.hub.Rooms.Publish(rooms)
	return rooms, nil
}

// Available returns the rooms currently open for booking.
func (s *RoomService) Available(ctx context.Context) ([]room.Room, error) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	available := room.Available(rooms)
	room.SortByNumber(available)
	return available, nil
}

// Get retrieves a single room.
func (s *RoomService) Get(ctx context.Context, id string) (room.Room, error) {
	return s.stores.Rooms.Get(ctx, id)
}

// Create adds a room to the inventory. Status defaults to available.
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (room.Room, error) {
	if req.Number == "" {
		return room.Room{}, apperrors.NewValidationError("room number is required")
	}
	if !req.Type.IsValid() {
		return room.Room{}, apperrors.NewValidationError(fmt.Sprintf("invalid room type: %s", req.Type))
	}
	if req.Price < 0 {
		return room.Room{}, apperrors.NewValidationError("room price cannot be negative")
	}
	status := req.Status
	if status == "" {
		status = room.StatusAvailable
	}
	if !status.IsValid() {
		return room.Room{}, apperrors.NewValidationError(fmt.Sprintf("invalid room status: %s", req.Status))
	}

	existing, err := s.stores.Rooms.Find(ctx, map[string]string{"number": req.Number})
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to check room number: %w", err)
	}
	if len(existing) > 0 {
		return room.Room{}, apperrors.NewConflictError(fmt.Sprintf("room %s already exists", req.Number))
	}

	ids, err := s.existingIDs(ctx)
	if err != nil {
		return room.Room{}, err
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	r := room.Room{
		ID:          store.NextID(ids),
		Number:      req.Number,
		Type:        req.Type,
		Price:       req.Price,
		Status:      status,
		Description: req.Description,
		Amenities:   amenities,
	}

	created, err := s.stores.Rooms.Create(ctx, r)
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to save room: %w", err)
	}
	s.publishSnapshot(ctx)
	return created, nil
}

// Update applies a partial edit to a room.
func (s *RoomService) Update(ctx context.Context, id string, patch room.Patch) (room.Room, error) {
	if patch.Type != nil && !patch.Type.IsValid() {
		return room.Room{}, apperrors.NewValidationError(fmt.Sprintf("invalid room type: %s", *patch.Type))
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return room.Room{}, apperrors.NewValidationError(fmt.Sprintf("invalid room status: %s", *patch.Status))
	}
	if patch.Price != nil && *patch.Price < 0 {
		return room.Room{}, apperrors.NewValidationError("room price cannot be negative")
	}

	updated, err := s.stores.Rooms.Patch(ctx, id, patch)
	if err != nil {
		return room.Room{}, err
	}
	s.publishSnapshot(ctx)
	return updated, nil
}

// SetStatus moves a room to the given status.
func (s *RoomService) SetStatus(ctx context.Context, id string, status room.Status) (room.Room, error) {
	if !status.IsValid() {
		return room.Room{}, apperrors.NewValidationError(fmt.Sprintf("invalid room status: %s", status))
	}
	return s.Update(ctx, id, room.Patch{Status: &status})
}

// Delete removes a room. An occupied or reserved room cannot be deleted.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	r, err := s.stores.Rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	if r.Status == room.StatusOccupied || r.Status == room.StatusReserved {
		return apperrors.NewConflictError("cannot delete a room that is occupied or reserved")
	}

	if err := s.stores.Rooms.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	s.publishSnapshot(ctx)
	return nil
}

// Stats derives the per-status room counters.
func (s *RoomService) Stats(ctx context.Context) (RoomStats, error) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		return RoomStats{}, fmt.Errorf("failed to list rooms: %w", err)
	}
	return RoomStats{
		Total:       len(rooms),
		Available:   room.CountByStatus(rooms, room.StatusAvailable),
		Occupied:    room.CountByStatus(rooms, room.StatusOccupied),
		Reserved:    room.CountByStatus(rooms, room.StatusReserved),
		Maintenance: room.CountByStatus(rooms, room.StatusMaintenance),
	}, nil
}

func (s *RoomService) existingIDs(ctx context.Context) ([]string, error) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	ids := make([]string, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func (s *RoomService) publishSnapshot(ctx context.Context) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		s.logger.Debug("skipping room snapshot publish", zap.Error(err))
		return
	}
	room.SortByNumber(rooms)
	s.hub.Rooms.Publish(rooms)
}
