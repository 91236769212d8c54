package servicereq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	requests := []Request{
		{Status: StatusPending, Priority: PriorityHigh},
		{Status: StatusPending, Priority: PriorityLow},
		{Status: StatusInProgress, Priority: PriorityMedium},
		{Status: StatusCompleted, Priority: PriorityHigh},
		{Status: StatusCancelled, Priority: PriorityHigh},
	}

	c := Count(requests)
	assert.Equal(t, 2, c.Pending)
	assert.Equal(t, 1, c.InProgress)
	assert.Equal(t, 1, c.Completed)
	assert.Equal(t, 3, c.Urgent, "urgent tracks high priority across statuses")
}

func TestFilterApply(t *testing.T) {
	requests := []Request{
		{ID: "1", Type: TypeHousekeeping, Status: StatusPending, Priority: PriorityHigh},
		{ID: "2", Type: TypeMaintenance, Status: StatusPending, Priority: PriorityLow},
		{ID: "3", Type: TypeHousekeeping, Status: StatusCompleted, Priority: PriorityHigh},
	}

	cases := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{name: "empty filter matches all", filter: Filter{}, expected: []string{"1", "2", "3"}},
		{name: "by type", filter: Filter{Type: TypeHousekeeping}, expected: []string{"1", "3"}},
		{name: "by status", filter: Filter{Status: StatusPending}, expected: []string{"1", "2"}},
		{name: "combined", filter: Filter{Type: TypeHousekeeping, Status: StatusPending, Priority: PriorityHigh}, expected: []string{"1"}},
		{name: "no match", filter: Filter{Type: TypeLaundry}, expected: []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.filter.Apply(requests)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestEnumsIsValid(t *testing.T) {
	assert.True(t, TypeRoomService.IsValid())
	assert.False(t, Type("spa").IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.False(t, Status("paused").IsValid())
	assert.True(t, PriorityUrgent.IsValid())
	assert.False(t, Priority("critical").IsValid())
}
