package room

import (
	"sort"
	"strconv"
)

// Type is the category of a hotel room.
type Type string

const (
	TypeSingle Type = "single"
	TypeDouble Type = "double"
	TypeSuite  Type = "suite"
	TypeDeluxe Type = "deluxe"
)

// IsValid returns true if the room type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case TypeSingle, TypeDouble, TypeSuite, TypeDeluxe:
		return true
	}
	return false
}

// Status is the occupancy status of a room. It is a denormalized field kept
// in sync with the most recent relevant booking by the lifecycle engine.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
	StatusReserved    Status = "reserved"
)

// IsValid returns true if the room status is recognized.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusReserved:
		return true
	}
	return false
}

// Room is a bookable hotel room. Price is currency units per night.
type Room struct {
	ID          string   `json:"id"`
	Number      string   `json:"number"`
	Type        Type     `json:"type"`
	Price       float64  `json:"price"`
	Status      Status   `json:"status"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

// Patch lists the room attributes mutable after creation. Nil fields are
// left untouched by the store merge.
type Patch struct {
	Number      *string   `json:"number,omitempty"`
	Type        *Type     `json:"type,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Description *string   `json:"description,omitempty"`
	Amenities   *[]string `json:"amenities,omitempty"`
}

// SortByNumber orders rooms numerically by room number, in place.
func SortByNumber(rooms []Room) {
	sort.SliceStable(rooms, func(i, j int) bool {
		a, _ := strconv.Atoi(rooms[i].Number)
		b, _ := strconv.Atoi(rooms[j].Number)
		return a < b
	})
}

// Available filters rooms that can currently be offered for a new booking.
func Available(rooms []Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Status == StatusAvailable {
			out = append(out, r)
		}
	}
	return out
}

// CountByStatus returns the number of rooms in the given status.
func CountByStatus(rooms []Room, status Status) int {
	n := 0
	for _, r := range rooms {
		if r.Status == status {
			n++
		}
	}
	return n
}
