package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayfront/hotel-console/internal/domain/room"
)

func TestStatusCycle(t *testing.T) {
	assert.Equal(t, StatusConfirmed, StatusPending.Next())
	assert.Equal(t, StatusCompleted, StatusConfirmed.Next())
	assert.Equal(t, StatusCancelled, StatusCompleted.Next())
	assert.Equal(t, StatusPending, StatusCancelled.Next())
}

func TestStatusCycle_ClosedAfterFourAdvances(t *testing.T) {
	for _, start := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		s := start
		for i := 0; i < 4; i++ {
			s = s.Next()
		}
		assert.Equal(t, start, s)
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, Status("checked-in").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())
}

func TestStatusRoomStatus(t *testing.T) {
	cases := []struct {
		status   Status
		expected room.Status
	}{
		{StatusConfirmed, room.StatusOccupied},
		{StatusPending, room.StatusReserved},
		{StatusCompleted, room.StatusAvailable},
		{StatusCancelled, room.StatusAvailable},
	}
	for _, tc := range cases {
		target, ok := tc.status.RoomStatus()
		require.True(t, ok)
		assert.Equal(t, tc.expected, target)
	}

	_, ok := Status("bogus").RoomStatus()
	assert.False(t, ok)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("unknown")
	assert.Error(t, err)
}
