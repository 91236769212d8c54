package booking

import (
	"math"
	"sort"
	"time"

	"github.com/stayfront/hotel-console/internal/apperrors"
)

// Booking is a reservation of a room by a guest for a date range. GuestName
// and RoomNumber are denormalized copies resolved at save time. Dates travel
// as ISO date-time strings on the wire and are parsed on read.
type Booking struct {
	ID              string    `json:"id"`
	GuestID         string    `json:"guestId"`
	RoomID          string    `json:"roomId"`
	CheckIn         time.Time `json:"checkIn"`
	CheckOut        time.Time `json:"checkOut"`
	Status          Status    `json:"status"`
	TotalAmount     float64   `json:"totalAmount"`
	AdvancePaid     float64   `json:"advancePaid"`
	RemainingAmount float64   `json:"remainingAmount"`
	GuestName       string    `json:"guestName"`
	RoomNumber      string    `json:"roomNumber"`
	IDProof         string    `json:"idProof,omitempty"`
}

// Patch lists the booking attributes mutable after creation. Nil fields are
// left untouched by the store merge.
type Patch struct {
	GuestID         *string    `json:"guestId,omitempty"`
	RoomID          *string    `json:"roomId,omitempty"`
	CheckIn         *time.Time `json:"checkIn,omitempty"`
	CheckOut        *time.Time `json:"checkOut,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	TotalAmount     *float64   `json:"totalAmount,omitempty"`
	AdvancePaid     *float64   `json:"advancePaid,omitempty"`
	RemainingAmount *float64   `json:"remainingAmount,omitempty"`
	GuestName       *string    `json:"guestName,omitempty"`
	RoomNumber      *string    `json:"roomNumber,omitempty"`
	IDProof         *string    `json:"idProof,omitempty"`
}

// Nights returns the whole-day count between check-in and check-out.
// Rounding is half-away-from-zero on the day count to absorb DST/timezone
// skew in date-only inputs.
func Nights(checkIn, checkOut time.Time) int {
	days := math.Abs(checkOut.Sub(checkIn).Hours()) / 24
	return int(math.Round(days))
}

// TotalAmount computes the cost of a stay at the given nightly price.
func TotalAmount(checkIn, checkOut time.Time, pricePerNight float64) float64 {
	return float64(Nights(checkIn, checkOut)) * pricePerNight
}

// Remaining derives the outstanding balance. A completed booking owes
// nothing regardless of the advance paid.
func Remaining(status Status, total, advance float64) float64 {
	if status == StatusCompleted {
		return 0
	}
	return total - advance
}

// Validate checks a booking before any persist, failing closed on the first
// violation. Same-day checkout is rejected: checkOut must be strictly after
// checkIn.
func (b *Booking) Validate() error {
	if b.GuestID == "" {
		return apperrors.NewValidationError("please select a guest")
	}
	if b.RoomID == "" {
		return apperrors.NewValidationError("please select a room")
	}
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return apperrors.NewValidationError("please select both check-in and check-out dates")
	}
	if !b.CheckOut.After(b.CheckIn) {
		return apperrors.NewValidationError("check-out date must be after check-in date")
	}
	if b.AdvancePaid > b.TotalAmount {
		return apperrors.NewValidationError("advance cannot be more than total amount")
	}
	return nil
}

// Recalculate rederives total and remaining from the dates, nightly price
// and advance currently on the booking.
func (b *Booking) Recalculate(pricePerNight float64) {
	b.TotalAmount = TotalAmount(b.CheckIn, b.CheckOut, pricePerNight)
	b.RemainingAmount = Remaining(b.Status, b.TotalAmount, b.AdvancePaid)
}

// ReopenIfExtended revises a completed booking back to confirmed when its
// checkout now lies in the future — the correction for "someone edited a
// supposedly-finished stay to extend it". Returns true if the status changed.
func (b *Booking) ReopenIfExtended(now time.Time) bool {
	if b.Status == StatusCompleted && b.CheckOut.After(now) {
		b.Status = StatusConfirmed
		b.RemainingAmount = Remaining(b.Status, b.TotalAmount, b.AdvancePaid)
		return true
	}
	return false
}

// IsStale reports whether the booking should be swept to completed: not yet
// completed with a checkout strictly before now.
func (b *Booking) IsStale(now time.Time) bool {
	return b.Status != StatusCompleted && b.CheckOut.Before(now)
}

// Overlaps reports whether the candidate range [checkIn, checkOut) on the
// given room collides with any existing booking. Intervals are half-open:
// touching at a boundary is not an overlap. Cancelled bookings do not
// block the room.
func Overlaps(existing []Booking, roomID string, checkIn, checkOut time.Time) bool {
	for _, b := range existing {
		if b.RoomID != roomID || b.Status == StatusCancelled {
			continue
		}
		if b.CheckOut.After(checkIn) && b.CheckIn.Before(checkOut) {
			return true
		}
	}
	return false
}

// SortByCheckInDesc orders bookings latest check-in first, in place.
func SortByCheckInDesc(bookings []Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CheckIn.After(bookings[j].CheckIn)
	})
}

// CountByStatus returns the number of bookings in the given status.
func CountByStatus(bookings []Booking, status Status) int {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}

// TotalRevenue sums the total amounts of completed bookings.
func TotalRevenue(bookings []Booking) float64 {
	var sum float64
	for _, b := range bookings {
		if b.Status == StatusCompleted {
			sum += b.TotalAmount
		}
	}
	return sum
}

// MonthlyRevenue sums completed bookings whose checkout falls in the given
// month and year.
func MonthlyRevenue(bookings []Booking, month time.Month, year int) float64 {
	var sum float64
	for _, b := range bookings {
		if b.Status != StatusCompleted {
			continue
		}
		if b.CheckOut.Month() == month && b.CheckOut.Year() == year {
			sum += b.TotalAmount
		}
	}
	return sum
}
