package servicereq

import "time"

// Type is the category of a staff service request.
type Type string

const (
	TypeHousekeeping Type = "housekeeping"
	TypeMaintenance  Type = "maintenance"
	TypeRoomService  Type = "room-service"
	TypeConcierge    Type = "concierge"
	TypeLaundry      Type = "laundry"
)

// IsValid returns true if the service type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypeHousekeeping, TypeMaintenance, TypeRoomService, TypeConcierge, TypeLaundry:
		return true
	}
	return false
}

// Status is the processing state of a service request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Priority is the urgency of a service request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid returns true if the priority is recognized.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Request is a staff service request raised against a room.
type Request struct {
	ID          string     `json:"id"`
	RoomNumber  string     `json:"roomNumber"`
	Type        Type       `json:"type"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	RequestedAt time.Time  `json:"requestedAt"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Patch lists the request attributes mutable after creation.
type Patch struct {
	RoomNumber  *string    `json:"roomNumber,omitempty"`
	Type        *Type      `json:"type,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Counters are the queue totals recomputed from the full collection on
// every load. The urgent counter tracks high-priority requests.
type Counters struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Urgent     int `json:"urgent"`
}

// Count derives the queue counters from the full collection.
func Count(requests []Request) Counters {
	var c Counters
	for _, r := range requests {
		switch r.Status {
		case StatusPending:
			c.Pending++
		case StatusInProgress:
			c.InProgress++
		case StatusCompleted:
			c.Completed++
		}
		if r.Priority == PriorityHigh {
			c.Urgent++
		}
	}
	return c
}

// Filter selects requests by type, status and priority. Empty fields match
// everything; filter state is never persisted.
type Filter struct {
	Type     Type
	Status   Status
	Priority Priority
}

// Apply returns the requests matching the filter.
func (f Filter) Apply(requests []Request) []Request {
	out := make([]Request, 0, len(requests))
	for _, r := range requests {
		if f.Type != "" && r.Type != f.Type {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.Priority != "" && r.Priority != f.Priority {
			continue
		}
		out = append(out, r)
	}
	return out
}
