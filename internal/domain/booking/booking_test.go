package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		expected int
	}{
		{name: "three nights", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 4), expected: 3},
		{name: "one night", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 2), expected: 1},
		{name: "same day", checkIn: date(2024, 1, 1), checkOut: date(2024, 1, 1), expected: 0},
		{name: "reversed dates use absolute difference", checkIn: date(2024, 1, 4), checkOut: date(2024, 1, 1), expected: 3},
		{name: "dst skew rounds to whole night", checkIn: time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC), checkOut: time.Date(2024, 3, 31, 1, 0, 0, 0, time.UTC), expected: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Nights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestTotalAmount(t *testing.T) {
	assert.Equal(t, float64(300), TotalAmount(date(2024, 1, 1), date(2024, 1, 4), 100))
	assert.Equal(t, float64(0), TotalAmount(date(2024, 1, 1), date(2024, 1, 1), 100))
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, float64(200), Remaining(StatusConfirmed, 300, 100))
	assert.Equal(t, float64(0), Remaining(StatusCompleted, 300, 100))
	assert.Equal(t, float64(300), Remaining(StatusPending, 300, 0))
}

func TestValidate_Order(t *testing.T) {
	valid := Booking{
		GuestID:     "1",
		RoomID:      "2",
		CheckIn:     date(2024, 1, 1),
		CheckOut:    date(2024, 1, 4),
		TotalAmount: 300,
		AdvancePaid: 100,
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name    string
		mutate  func(*Booking)
		message string
	}{
		{
			name:    "missing guest reported first",
			mutate:  func(b *Booking) { b.GuestID = ""; b.RoomID = ""; b.CheckIn = time.Time{} },
			message: "please select a guest",
		},
		{
			name:    "missing room before dates",
			mutate:  func(b *Booking) { b.RoomID = ""; b.CheckOut = time.Time{} },
			message: "please select a room",
		},
		{
			name:    "missing check-in",
			mutate:  func(b *Booking) { b.CheckIn = time.Time{} },
			message: "please select both check-in and check-out dates",
		},
		{
			name:    "missing check-out",
			mutate:  func(b *Booking) { b.CheckOut = time.Time{} },
			message: "please select both check-in and check-out dates",
		},
		{
			name:    "same-day checkout rejected",
			mutate:  func(b *Booking) { b.CheckOut = b.CheckIn },
			message: "check-out date must be after check-in date",
		},
		{
			name:    "check-out before check-in",
			mutate:  func(b *Booking) { b.CheckIn, b.CheckOut = b.CheckOut, b.CheckIn },
			message: "check-out date must be after check-in date",
		},
		{
			name:    "advance above total",
			mutate:  func(b *Booking) { b.AdvancePaid = 400 },
			message: "advance cannot be more than total amount",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := valid
			tc.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestRecalculate(t *testing.T) {
	b := Booking{
		Status:      StatusConfirmed,
		CheckIn:     date(2024, 1, 1),
		CheckOut:    date(2024, 1, 4),
		AdvancePaid: 100,
	}
	b.Recalculate(100)
	assert.Equal(t, float64(300), b.TotalAmount)
	assert.Equal(t, float64(200), b.RemainingAmount)

	b.Status = StatusCompleted
	b.Recalculate(100)
	assert.Equal(t, float64(0), b.RemainingAmount)
}

func TestReopenIfExtended(t *testing.T) {
	now := date(2024, 6, 15)

	b := Booking{
		Status:      StatusCompleted,
		CheckIn:     date(2024, 6, 10),
		CheckOut:    date(2024, 6, 20),
		TotalAmount: 1000,
		AdvancePaid: 400,
	}
	require.True(t, b.ReopenIfExtended(now))
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, float64(600), b.RemainingAmount, "balance owed again after reopen")

	past := Booking{Status: StatusCompleted, CheckOut: date(2024, 6, 10)}
	assert.False(t, past.ReopenIfExtended(now))
	assert.Equal(t, StatusCompleted, past.Status)

	active := Booking{Status: StatusConfirmed, CheckOut: date(2024, 6, 20)}
	assert.False(t, active.ReopenIfExtended(now))
}

func TestIsStale(t *testing.T) {
	now := date(2024, 6, 15)

	assert.True(t, (&Booking{Status: StatusConfirmed, CheckOut: date(2024, 6, 10)}).IsStale(now))
	assert.True(t, (&Booking{Status: StatusPending, CheckOut: date(2024, 6, 10)}).IsStale(now))
	assert.True(t, (&Booking{Status: StatusCancelled, CheckOut: date(2024, 6, 10)}).IsStale(now))
	assert.False(t, (&Booking{Status: StatusCompleted, CheckOut: date(2024, 6, 10)}).IsStale(now))
	assert.False(t, (&Booking{Status: StatusConfirmed, CheckOut: date(2024, 6, 20)}).IsStale(now))
}

func TestOverlaps(t *testing.T) {
	existing := []Booking{
		{RoomID: "7", Status: StatusConfirmed, CheckIn: date(2024, 2, 10), CheckOut: date(2024, 2, 15)},
		{RoomID: "9", Status: StatusCancelled, CheckIn: date(2024, 2, 10), CheckOut: date(2024, 2, 15)},
	}

	cases := []struct {
		name     string
		roomID   string
		checkIn  time.Time
		checkOut time.Time
		expected bool
	}{
		{name: "contained range overlaps", roomID: "7", checkIn: date(2024, 2, 12), checkOut: date(2024, 2, 14), expected: true},
		{name: "start at existing checkout is free", roomID: "7", checkIn: date(2024, 2, 15), checkOut: date(2024, 2, 18), expected: false},
		{name: "end at existing checkin is free", roomID: "7", checkIn: date(2024, 2, 8), checkOut: date(2024, 2, 10), expected: false},
		{name: "straddles start", roomID: "7", checkIn: date(2024, 2, 8), checkOut: date(2024, 2, 11), expected: true},
		{name: "straddles end", roomID: "7", checkIn: date(2024, 2, 14), checkOut: date(2024, 2, 18), expected: true},
		{name: "covers whole stay", roomID: "7", checkIn: date(2024, 2, 1), checkOut: date(2024, 2, 28), expected: true},
		{name: "other room ignored", roomID: "8", checkIn: date(2024, 2, 12), checkOut: date(2024, 2, 14), expected: false},
		{name: "cancelled booking does not block", roomID: "9", checkIn: date(2024, 2, 11), checkOut: date(2024, 2, 13), expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(existing, tc.roomID, tc.checkIn, tc.checkOut))
		})
	}
}

func TestSortByCheckInDesc(t *testing.T) {
	bookings := []Booking{
		{ID: "a", CheckIn: date(2024, 1, 1)},
		{ID: "b", CheckIn: date(2024, 3, 1)},
		{ID: "c", CheckIn: date(2024, 2, 1)},
	}
	SortByCheckInDesc(bookings)

	assert.Equal(t, "b", bookings[0].ID)
	assert.Equal(t, "c", bookings[1].ID)
	assert.Equal(t, "a", bookings[2].ID)
}

func TestRevenue(t *testing.T) {
	bookings := []Booking{
		{Status: StatusCompleted, TotalAmount: 300, CheckOut: date(2024, 6, 10)},
		{Status: StatusCompleted, TotalAmount: 200, CheckOut: date(2024, 7, 2)},
		{Status: StatusConfirmed, TotalAmount: 500, CheckOut: date(2024, 6, 20)},
		{Status: StatusCancelled, TotalAmount: 150, CheckOut: date(2024, 6, 25)},
	}

	assert.Equal(t, float64(500), TotalRevenue(bookings))
	assert.Equal(t, float64(300), MonthlyRevenue(bookings, time.June, 2024))
	assert.Equal(t, float64(0), MonthlyRevenue(bookings, time.June, 2023))
}
