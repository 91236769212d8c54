package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayfront/hotel-console/internal/domain/room"
)

func TestSagaLog_Lifecycle(t *testing.T) {
	log := NewSagaLog(0)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	id := log.Start("b1", "r1", room.StatusOccupied, now)

	saga, ok := log.Get(id)
	require.True(t, ok)
	assert.Equal(t, SagaBookingUpdated, saga.State)
	assert.Equal(t, room.StatusOccupied, saga.Target)

	log.SetState(id, SagaRoomUpdateFailed, "boom", now.Add(time.Second))
	saga, _ = log.Get(id)
	assert.Equal(t, SagaRoomUpdateFailed, saga.State)
	assert.Equal(t, "boom", saga.Error)
	assert.Equal(t, now.Add(time.Second), saga.UpdatedAt)

	failed := log.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, id, failed[0].ID)

	log.SetState(id, SagaRoomUpdateConfirmed, "", now.Add(2*time.Second))
	saga, _ = log.Get(id)
	assert.Empty(t, saga.Error, "confirm clears the failure message")
	assert.Empty(t, log.Failed())
}

func TestSagaLog_EvictsOldestOverCapacity(t *testing.T) {
	log := NewSagaLog(2)
	now := time.Now()

	first := log.Start("b1", "r1", room.StatusReserved, now)
	log.Start("b2", "r1", room.StatusOccupied, now)
	log.Start("b3", "r1", room.StatusAvailable, now)

	_, ok := log.Get(first)
	assert.False(t, ok, "oldest evicted")
	assert.Len(t, log.All(), 2)
}

func TestSagaLog_GetReturnsCopy(t *testing.T) {
	log := NewSagaLog(0)
	id := log.Start("b1", "r1", room.StatusReserved, time.Now())

	saga, _ := log.Get(id)
	saga.State = SagaRoomUpdateFailed

	stored, _ := log.Get(id)
	assert.Equal(t, SagaBookingUpdated, stored.State)
}
