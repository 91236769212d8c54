package booking

import (
	"fmt"

	"github.com/stayfront/hotel-console/internal/domain/room"
)

// Status represents the current state of a booking in its lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// nextInCycle defines the staff-operated status cycle. The cycle is closed
// and total: four advances from any status return to that status.
var nextInCycle = map[Status]Status{
	StatusPending:   StatusConfirmed,
	StatusConfirmed: StatusCompleted,
	StatusCompleted: StatusCancelled,
	StatusCancelled: StatusPending,
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := nextInCycle[s]
	return exists
}

// Next returns the status that follows s in the staff-operated cycle.
// Unknown statuses fall back to pending.
func (s Status) Next() Status {
	if next, ok := nextInCycle[s]; ok {
		return next
	}
	return StatusPending
}

// IsActive returns true while the booking still blocks its guest and room
// (pending or confirmed).
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// RoomStatus returns the room status implied by this booking status. The
// second result is false for statuses that carry no room-status implication.
func (s Status) RoomStatus() (room.Status, bool) {
	switch s {
	case StatusConfirmed:
		return room.StatusOccupied, true
	case StatusPending:
		return room.StatusReserved, true
	case StatusCompleted, StatusCancelled:
		return room.StatusAvailable, true
	}
	return "", false
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
