package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/events"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

// EventPublisher publishes lifecycle CloudEvents. Publish failures are
// logged and never propagated.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event events.CloudEvent) error
}

const eventSource = "hotel-console"

// DateLayout is the date-only format the console forms submit.
const DateLayout = "2006-01-02"

// CreateBookingRequest holds the staff booking form. Dates are date-only
// strings; the engine validates everything before any store call.
type CreateBookingRequest struct {
	GuestID     string         `json:"guestId"`
	RoomID      string         `json:"roomId"`
	CheckIn     string         `json:"checkIn" binding:"omitempty,dateonly"`
	CheckOut    string         `json:"checkOut" binding:"omitempty,dateonly"`
	Status      booking.Status `json:"status"`
	AdvancePaid float64        `json:"advancePaid"`
	IDProof     string         `json:"idProof,omitempty"`
}

// SelfServiceBookingRequest holds the guest self-service checkout form.
type SelfServiceBookingRequest struct {
	GuestName    string `json:"guestName"`
	GovernmentID string `json:"governmentId"`
	RoomID       string `json:"roomId"`
	CheckIn      string `json:"checkIn" binding:"omitempty,dateonly"`
	CheckOut     string `json:"checkOut" binding:"omitempty,dateonly"`
}

// UpdateBookingRequest holds the staff edit form. The console always
// submits the full form state, so every field is present on update.
type UpdateBookingRequest struct {
	GuestID     string         `json:"guestId"`
	RoomID      string         `json:"roomId"`
	CheckIn     string         `json:"checkIn" binding:"omitempty,dateonly"`
	CheckOut    string         `json:"checkOut" binding:"omitempty,dateonly"`
	Status      booking.Status `json:"status"`
	AdvancePaid float64        `json:"advancePaid"`
	IDProof     string         `json:"idProof,omitempty"`
}

// BookingStats aggregates booking counters for the console.
type BookingStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Confirmed    int     `json:"confirmed"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// BookingService is the booking lifecycle engine: it computes nights and
// totals, validates bookings, decides status transitions, rederives the
// dependent room status and sweeps stale bookings to completed.
type BookingService struct {
	stores   *store.Stores
	producer EventPublisher
	hub      *notifier.Hub
	sagas    *SagaLog
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates the booking lifecycle engine.
func NewBookingService(stores *store.Stores, producer EventPublisher, hub *notifier.Hub, sagas *SagaLog, logger *zap.Logger) *BookingService {
	return &BookingService{
		stores:   stores,
		producer: producer,
		hub:      hub,
		sagas:    sagas,
		logger:   logger,
		now:      time.Now,
	}
}

// List loads the booking collection, runs the auto-completion sweep and
// returns the swept snapshot sorted latest check-in first. The sweep flips
// every booking whose checkout has passed to completed; it is idempotent
// per booking and not atomic across the collection — a failure mid-sweep
// leaves the rest for the next load.
func (s *BookingService) List(ctx context.Context) ([]booking.Booking, error) {
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	now := s.now()
	for i := range bookings {
		if !bookings[i].IsStale(now) {
			continue
		}
		updated, err := s.applyStatus(ctx, bookings[i], booking.StatusCompleted)
		if err != nil {
			s.logger.Error("sweep failed for booking; will retry on next load",
				zap.String("booking_id", bookings[i].ID),
				zap.Error(err),
			)
			continue
		}
		bookings[i] = updated
	}

	booking.SortByCheckInDesc(bookings)
	s.hub.Bookings.Publish(bookings)
	return bookings, nil
}

// Get retrieves a single booking.
func (s *BookingService) Get(ctx context.Context, id string) (booking.Booking, error) {
	return s.stores.Bookings.Get(ctx, id)
}

// Create creates a staff-entered booking. Status defaults to pending.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (booking.Booking, error) {
	status := req.Status
	if status == "" {
		status = booking.StatusPending
	}
	if !status.IsValid() {
		return booking.Booking{}, apperrors.NewValidationError(fmt.Sprintf("invalid booking status: %s", req.Status))
	}

	b := booking.Booking{
		ID:          store.BookingID(s.now()),
		GuestID:     req.GuestID,
		RoomID:      req.RoomID,
		CheckIn:     parseDate(req.CheckIn),
		CheckOut:    parseDate(req.CheckOut),
		Status:      status,
		AdvancePaid: req.AdvancePaid,
		IDProof:     req.IDProof,
	}
	return s.create(ctx, b)
}

// CreateSelfService creates a guest self-service booking: overlap-checked,
// confirmed on creation with the full amount recorded as advance paid.
func (s *BookingService) CreateSelfService(ctx context.Context, req SelfServiceBookingRequest) (booking.Booking, error) {
	checkIn := parseDate(req.CheckIn)
	checkOut := parseDate(req.CheckOut)

	if req.GuestName == "" || req.GovernmentID == "" {
		return booking.Booking{}, apperrors.NewValidationError("please fill all fields")
	}

	existing, err := s.stores.Bookings.Find(ctx, map[string]string{"roomId": req.RoomID})
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to check room availability: %w", err)
	}
	if booking.Overlaps(existing, req.RoomID, checkIn, checkOut) {
		return booking.Booking{}, apperrors.NewConflictError("room is already booked for the selected dates")
	}

	b := booking.Booking{
		ID:        store.BookingID(s.now()),
		GuestID:   req.GovernmentID,
		GuestName: req.GuestName,
		RoomID:    req.RoomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    booking.StatusConfirmed,
	}

	created, err := s.create(ctx, b)
	if err != nil {
		return booking.Booking{}, err
	}

	// Self-service checkout pays in full up front.
	advance := created.TotalAmount
	remaining := booking.Remaining(created.Status, created.TotalAmount, advance)
	created, err = s.stores.Bookings.Patch(ctx, created.ID, booking.Patch{
		AdvancePaid:     &advance,
		RemainingAmount: &remaining,
	})
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to record advance: %w", err)
	}
	return created, nil
}

func (s *BookingService) create(ctx context.Context, b booking.Booking) (booking.Booking, error) {
	// Presence gates first, so a bad room reference never masks a missing
	// guest. An unknown room is a form error, not a lookup to ignore.
	if b.GuestID == "" {
		return booking.Booking{}, apperrors.NewValidationError("please select a guest")
	}
	if b.RoomID == "" {
		return booking.Booking{}, apperrors.NewValidationError("please select a room")
	}
	rm, err := s.stores.Rooms.Get(ctx, b.RoomID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return booking.Booking{}, apperrors.NewValidationError("please select a room")
		}
		return booking.Booking{}, fmt.Errorf("failed to load room: %w", err)
	}
	b.RoomNumber = rm.Number
	b.Recalculate(rm.Price)
	if b.GuestName == "" {
		if g, err := s.stores.Guests.Get(ctx, b.GuestID); err == nil {
			b.GuestName = g.Name
		}
	}

	if err := b.Validate(); err != nil {
		return booking.Booking{}, err
	}

	created, err := s.stores.Bookings.Create(ctx, b)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to save booking: %w", err)
	}

	if target, ok := created.Status.RoomStatus(); ok {
		s.reconcileRoom(ctx, created.ID, created.RoomID, target)
	}

	s.publishCreated(ctx, created)
	s.publishSnapshot(ctx)
	return created, nil
}

// Update applies the staff edit form to an existing booking: totals and the
// remaining balance are recomputed, and a completed booking whose new
// checkout lies in the future is silently reopened to confirmed.
func (s *BookingService) Update(ctx context.Context, id string, req UpdateBookingRequest) (booking.Booking, error) {
	existing, err := s.stores.Bookings.Get(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}

	updated := existing
	if req.GuestID != "" {
		updated.GuestID = req.GuestID
	}
	if req.RoomID != "" {
		updated.RoomID = req.RoomID
	}
	if req.CheckIn != "" {
		updated.CheckIn = parseDate(req.CheckIn)
	}
	if req.CheckOut != "" {
		updated.CheckOut = parseDate(req.CheckOut)
	}
	if req.Status != "" {
		if !req.Status.IsValid() {
			return booking.Booking{}, apperrors.NewValidationError(fmt.Sprintf("invalid booking status: %s", req.Status))
		}
		updated.Status = req.Status
	}
	updated.AdvancePaid = req.AdvancePaid
	if req.IDProof != "" {
		updated.IDProof = req.IDProof
	}

	rm, err := s.stores.Rooms.Get(ctx, updated.RoomID)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return booking.Booking{}, apperrors.NewValidationError("please select a room")
		}
		return booking.Booking{}, fmt.Errorf("failed to load room: %w", err)
	}
	updated.RoomNumber = rm.Number
	updated.Recalculate(rm.Price)
	if g, err := s.stores.Guests.Get(ctx, updated.GuestID); err == nil {
		updated.GuestName = g.Name
	}

	if updated.ReopenIfExtended(s.now()) {
		s.logger.Info("completed booking extended; reopened as confirmed",
			zap.String("booking_id", id),
		)
	}
	updated.RemainingAmount = booking.Remaining(updated.Status, updated.TotalAmount, updated.AdvancePaid)

	if err := updated.Validate(); err != nil {
		return booking.Booking{}, err
	}

	patch := booking.Patch{
		GuestID:         &updated.GuestID,
		RoomID:          &updated.RoomID,
		CheckIn:         &updated.CheckIn,
		CheckOut:        &updated.CheckOut,
		Status:          &updated.Status,
		TotalAmount:     &updated.TotalAmount,
		AdvancePaid:     &updated.AdvancePaid,
		RemainingAmount: &updated.RemainingAmount,
		GuestName:       &updated.GuestName,
		RoomNumber:      &updated.RoomNumber,
	}
	if updated.IDProof != "" {
		patch.IDProof = &updated.IDProof
	}

	saved, err := s.stores.Bookings.Patch(ctx, id, patch)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to update booking: %w", err)
	}

	if saved.Status != existing.Status {
		if target, ok := saved.Status.RoomStatus(); ok {
			s.reconcileRoom(ctx, saved.ID, saved.RoomID, target)
		}
		s.publishStatusChanged(ctx, existing.Status, saved)
	}
	s.publishSnapshot(ctx)
	return saved, nil
}

// AdvanceStatus moves a booking one step along the fixed staff cycle
// pending → confirmed → completed → cancelled → pending.
func (s *BookingService) AdvanceStatus(ctx context.Context, id string) (booking.Booking, error) {
	b, err := s.stores.Bookings.Get(ctx, id)
	if err != nil {
		return booking.Booking{}, err
	}

	updated, err := s.applyStatus(ctx, b, b.Status.Next())
	if err != nil {
		return booking.Booking{}, err
	}
	s.publishSnapshot(ctx)
	return updated, nil
}

// applyStatus persists a status change, rederives the dependent room status
// through a saga and publishes the matching lifecycle event.
func (s *BookingService) applyStatus(ctx context.Context, b booking.Booking, next booking.Status) (booking.Booking, error) {
	remaining := booking.Remaining(next, b.TotalAmount, b.AdvancePaid)
	updated, err := s.stores.Bookings.Patch(ctx, b.ID, booking.Patch{
		Status:          &next,
		RemainingAmount: &remaining,
	})
	if err != nil {
		return booking.Booking{}, fmt.Errorf("failed to update booking status: %w", err)
	}

	if target, ok := next.RoomStatus(); ok {
		s.reconcileRoom(ctx, b.ID, b.RoomID, target)
	}
	s.publishStatusChanged(ctx, b.Status, updated)
	return updated, nil
}

// ApplyPayment records a cleared payment as advance paid on the booking and
// rederives the remaining balance.
func (s *BookingService) ApplyPayment(ctx context.Context, bookingID string, amount float64) error {
	if amount <= 0 {
		return apperrors.NewValidationError("payment amount must be positive")
	}

	b, err := s.stores.Bookings.Get(ctx, bookingID)
	if err != nil {
		return err
	}

	advance := b.AdvancePaid + amount
	if advance > b.TotalAmount {
		return apperrors.NewValidationError("advance cannot be more than total amount")
	}
	remaining := booking.Remaining(b.Status, b.TotalAmount, advance)

	if _, err := s.stores.Bookings.Patch(ctx, bookingID, booking.Patch{
		AdvancePaid:     &advance,
		RemainingAmount: &remaining,
	}); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

// Stats derives the booking counters and total revenue from the collection.
func (s *BookingService) Stats(ctx context.Context) (BookingStats, error) {
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return BookingStats{}, fmt.Errorf("failed to list bookings: %w", err)
	}
	return BookingStats{
		Total:        len(bookings),
		Pending:      booking.CountByStatus(bookings, booking.StatusPending),
		Confirmed:    booking.CountByStatus(bookings, booking.StatusConfirmed),
		Completed:    booking.CountByStatus(bookings, booking.StatusCompleted),
		Cancelled:    booking.CountByStatus(bookings, booking.StatusCancelled),
		TotalRevenue: booking.TotalRevenue(bookings),
	}, nil
}

// reconcileRoom runs the dependent room-status write as an inspectable saga.
// The write is fire-and-forget: a failure is recorded on the saga and
// logged, the booking change stands, and the room status drifts until a
// manual retry or a later edit.
func (s *BookingService) reconcileRoom(ctx context.Context, bookingID, roomID string, target room.Status) *RoomStatusSaga {
	now := s.now()
	id := s.sagas.Start(bookingID, roomID, target, now)
	s.sagas.SetState(id, SagaRoomUpdatePending, "", s.now())

	if _, err := s.stores.Rooms.Patch(ctx, roomID, map[string]any{"status": target}); err != nil {
		s.sagas.SetState(id, SagaRoomUpdateFailed, err.Error(), s.now())
		s.logger.Error("room status update failed after booking change",
			zap.String("booking_id", bookingID),
			zap.String("room_id", roomID),
			zap.String("target", string(target)),
			zap.Error(err),
		)
	} else {
		s.sagas.SetState(id, SagaRoomUpdateConfirmed, "", s.now())
	}

	saga, _ := s.sagas.Get(id)
	return &saga
}

// RetryRoomSync re-runs the room update of a failed saga.
func (s *BookingService) RetryRoomSync(ctx context.Context, sagaID string) (RoomStatusSaga, error) {
	saga, ok := s.sagas.Get(sagaID)
	if !ok {
		return RoomStatusSaga{}, apperrors.NewNotFoundError("saga", sagaID)
	}
	if saga.State != SagaRoomUpdateFailed {
		return RoomStatusSaga{}, apperrors.NewInvalidStateError(string(saga.State), string(SagaRoomUpdatePending))
	}

	s.sagas.SetState(sagaID, SagaRoomUpdatePending, "", s.now())
	if _, err := s.stores.Rooms.Patch(ctx, saga.RoomID, map[string]any{"status": saga.Target}); err != nil {
		s.sagas.SetState(sagaID, SagaRoomUpdateFailed, err.Error(), s.now())
		saga, _ = s.sagas.Get(sagaID)
		return saga, fmt.Errorf("room update retry failed: %w", err)
	}
	s.sagas.SetState(sagaID, SagaRoomUpdateConfirmed, "", s.now())
	saga, _ = s.sagas.Get(sagaID)
	return saga, nil
}

// publishSnapshot pushes the latest booking collection to subscribers.
// Best-effort: a listing failure only costs the notification.
func (s *BookingService) publishSnapshot(ctx context.Context) {
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		s.logger.Debug("skipping booking snapshot publish", zap.Error(err))
		return
	}
	booking.SortByCheckInDesc(bookings)
	s.hub.Bookings.Publish(bookings)
}

func (s *BookingService) publishCreated(ctx context.Context, b booking.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:   b.ID,
		GuestID:     b.GuestID,
		GuestName:   b.GuestName,
		RoomID:      b.RoomID,
		RoomNumber:  b.RoomNumber,
		Status:      string(b.Status),
		CheckIn:     b.CheckIn,
		CheckOut:    b.CheckOut,
		TotalAmount: b.TotalAmount,
		OccurredAt:  s.now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
}

func (s *BookingService) publishStatusChanged(ctx context.Context, from booking.Status, b booking.Booking) {
	eventType := events.BookingStatusChanged
	switch b.Status {
	case booking.StatusCompleted:
		eventType = events.BookingCompleted
	case booking.StatusCancelled:
		eventType = events.BookingCancelled
	}

	evt := events.BookingStatusChangedEvent{
		BookingID:  b.ID,
		GuestID:    b.GuestID,
		RoomID:     b.RoomID,
		From:       string(from),
		To:         string(b.Status),
		OccurredAt: s.now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, eventType, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data any) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// parseDate parses a date-only form value; empty or malformed input maps to
// the zero time so validation reports the missing date.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
