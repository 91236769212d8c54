package application

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stayfront/hotel-console/internal/domain/room"
)

// SagaState tracks the two-step booking-then-room write pair. The pair is
// deliberately not atomic: a failed room update leaves the saga in
// room_update_failed for inspection and manual retry, and the room status
// drifts until then.
type SagaState string

const (
	SagaBookingUpdated      SagaState = "booking_updated"
	SagaRoomUpdatePending   SagaState = "room_update_pending"
	SagaRoomUpdateConfirmed SagaState = "room_update_confirmed"
	SagaRoomUpdateFailed    SagaState = "room_update_failed"
)

// RoomStatusSaga records one dependent room-status write that follows a
// booking mutation.
type RoomStatusSaga struct {
	ID        string      `json:"id"`
	BookingID string      `json:"bookingId"`
	RoomID    string      `json:"roomId"`
	Target    room.Status `json:"target"`
	State     SagaState   `json:"state"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"startedAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// SagaLog is a bounded in-memory record of recent room-status sagas.
type SagaLog struct {
	mu       sync.Mutex
	capacity int
	order    []string
	sagas    map[string]*RoomStatusSaga
}

// NewSagaLog creates a saga log keeping at most capacity entries.
func NewSagaLog(capacity int) *SagaLog {
	if capacity <= 0 {
		capacity = 128
	}
	return &SagaLog{
		capacity: capacity,
		sagas:    make(map[string]*RoomStatusSaga),
	}
}

// Start records a new saga in the booking_updated state and returns its id.
func (l *SagaLog) Start(bookingID, roomID string, target room.Status, now time.Time) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.New().String()
	l.sagas[id] = &RoomStatusSaga{
		ID:        id,
		BookingID: bookingID,
		RoomID:    roomID,
		Target:    target,
		State:     SagaBookingUpdated,
		StartedAt: now,
		UpdatedAt: now,
	}
	l.order = append(l.order, id)
	for len(l.order) > l.capacity {
		delete(l.sagas, l.order[0])
		l.order = l.order[1:]
	}
	return id
}

// SetState advances a saga, recording the failure message when the room
// update failed.
func (l *SagaLog) SetState(id string, state SagaState, errMsg string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	saga, ok := l.sagas[id]
	if !ok {
		return
	}
	saga.State = state
	saga.Error = errMsg
	saga.UpdatedAt = now
}

// Get returns a copy of the saga with the given id.
func (l *SagaLog) Get(id string) (RoomStatusSaga, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	saga, ok := l.sagas[id]
	if !ok {
		return RoomStatusSaga{}, false
	}
	return *saga, true
}

// All returns copies of every recorded saga, oldest first.
func (l *SagaLog) All() []RoomStatusSaga {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RoomStatusSaga, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.sagas[id])
	}
	return out
}

// Failed returns copies of the sagas whose room update failed, oldest first.
func (l *SagaLog) Failed() []RoomStatusSaga {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]RoomStatusSaga, 0, len(l.order))
	for _, id := range l.order {
		if l.sagas[id].State == SagaRoomUpdateFailed {
			out = append(out, *l.sagas[id])
		}
	}
	return out
}
