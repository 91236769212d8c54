package events

import "time"

// Topics.
const (
	TopicBookingEvents = "hotel.booking.events"
	TopicPaymentEvents = "hotel.payment.events"
)

// Event types.
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingCompleted     = "booking.completed"
	BookingCancelled     = "booking.cancelled"
	PaymentSucceeded     = "payment.succeeded"
)

// BookingCreatedEvent is published when a booking is created on either
// entry channel.
type BookingCreatedEvent struct {
	BookingID   string    `json:"booking_id"`
	GuestID     string    `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	RoomID      string    `json:"room_id"`
	RoomNumber  string    `json:"room_number"`
	Status      string    `json:"status"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published on every booking status change,
// including sweep auto-completions.
type BookingStatusChangedEvent struct {
	BookingID  string    `json:"booking_id"`
	GuestID    string    `json:"guest_id"`
	RoomID     string    `json:"room_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentSucceededEvent arrives on the payment topic when a payment against
// a booking clears; the amount is recorded as advance paid.
type PaymentSucceededEvent struct {
	PaymentID  string    `json:"payment_id"`
	BookingID  string    `json:"booking_id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	Method     string    `json:"method"`
	OccurredAt time.Time `json:"occurred_at"`
}
