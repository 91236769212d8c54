package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByNumber_Numeric(t *testing.T) {
	rooms := []Room{
		{ID: "1", Number: "102"},
		{ID: "2", Number: "9"},
		{ID: "3", Number: "101"},
	}
	SortByNumber(rooms)

	assert.Equal(t, "9", rooms[0].Number, "numeric order, not lexicographic")
	assert.Equal(t, "101", rooms[1].Number)
	assert.Equal(t, "102", rooms[2].Number)
}

func TestAvailable(t *testing.T) {
	rooms := []Room{
		{Number: "101", Status: StatusAvailable},
		{Number: "102", Status: StatusOccupied},
		{Number: "103", Status: StatusReserved},
		{Number: "104", Status: StatusMaintenance},
		{Number: "105", Status: StatusAvailable},
	}

	available := Available(rooms)
	assert.Len(t, available, 2)
	assert.Equal(t, "101", available[0].Number)
	assert.Equal(t, "105", available[1].Number)
}

func TestCountByStatus(t *testing.T) {
	rooms := []Room{
		{Status: StatusAvailable},
		{Status: StatusAvailable},
		{Status: StatusOccupied},
	}
	assert.Equal(t, 2, CountByStatus(rooms, StatusAvailable))
	assert.Equal(t, 1, CountByStatus(rooms, StatusOccupied))
	assert.Equal(t, 0, CountByStatus(rooms, StatusReserved))
}

func TestEnumsIsValid(t *testing.T) {
	assert.True(t, TypeSuite.IsValid())
	assert.False(t, Type("penthouse").IsValid())
	assert.True(t, StatusMaintenance.IsValid())
	assert.False(t, Status("cleaning").IsValid())
}
