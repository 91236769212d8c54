package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/apperrors"
	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/guest"
	"github.com/stayfront/hotel-console/internal/notifier"
	"github.com/stayfront/hotel-console/internal/store"
)

// CreateGuestRequest is the guest registration form.
type CreateGuestRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	IDNumber    string `json:"idNumber"`
	IDProofPath string `json:"idProofPath,omitempty"`
}

// GuestView is a guest with the derived classification label attached.
type GuestView struct {
	guest.Guest
	StatusLabel string `json:"statusLabel"`
}

// GuestStats aggregates guest counters for the console.
type GuestStats struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	Vip             int     `json:"vip"`
	AverageSpending float64 `json:"averageSpending"`
}

// GuestService manages guest records and the VIP classification rules.
type GuestService struct {
	stores *store.Stores
	hub    *notifier.Hub
	logger *zap.Logger
}

// NewGuestService creates the guest service.
func NewGuestService(stores *store.Stores, hub *notifier.Hub, logger *zap.Logger) *GuestService {
	return &GuestService{stores: stores, hub: hub, logger: logger}
}

// List returns guests classified and filtered by the search term. Each load
// runs the promotion check, so a guest whose completed spend crossed the
// threshold since the last visit is promoted here.
func (s *GuestService) List(ctx context.Context, search string) ([]GuestView, error) {
	guests, err := s.stores.Guests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	matched := make(map[string]bool)
	for _, g := range guest.Search(guests, search) {
		matched[g.ID] = true
	}

	views := make([]GuestView, 0, len(matched))
	snapshot := make([]guest.Guest, 0, len(guests))
	for _, g := range guests {
		view := s.classify(ctx, g, bookings)
		snapshot = append(snapshot, view.Guest)
		if matched[g.ID] {
			views = append(views, view)
		}
	}

	// The snapshot always carries the whole collection, independent of the
	// search filter.
	s.hub.Guests.Publish(snapshot)
	return views, nil
}

// Get retrieves a single guest with the classification label.
func (s *GuestService) Get(ctx context.Context, id string) (GuestView, error) {
	g, err := s.stores.Guests.Get(ctx, id)
	if err != nil {
		return GuestView{}, err
	}
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return GuestView{}, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.classify(ctx, g, bookings), nil
}

// Create registers a new guest. The bookings list starts empty and the
// guest starts as non-VIP regardless of input.
func (s *GuestService) Create(ctx context.Context, req CreateGuestRequest) (guest.Guest, error) {
	if req.Name == "" {
		return guest.Guest{}, apperrors.NewValidationError("guest name is required")
	}

	ids, err := s.existingIDs(ctx)
	if err != nil {
		return guest.Guest{}, err
	}

	g := guest.Guest{
		ID:          store.NextID(ids),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		IDNumber:    req.IDNumber,
		Bookings:    []booking.Booking{},
		IDProofPath: req.IDProofPath,
	}

	created, err := s.stores.Guests.Create(ctx, g)
	if err != nil {
		return guest.Guest{}, fmt.Errorf("failed to save guest: %w", err)
	}
	s.publishSnapshot(ctx)
	return created, nil
}

// Update applies a partial edit to a guest.
func (s *GuestService) Update(ctx context.Context, id string, patch guest.Patch) (guest.Guest, error) {
	updated, err := s.stores.Guests.Patch(ctx, id, patch)
	if err != nil {
		return guest.Guest{}, err
	}
	s.publishSnapshot(ctx)
	return updated, nil
}

// Delete removes a guest. A guest referenced by any pending or confirmed
// booking cannot be deleted.
func (s *GuestService) Delete(ctx context.Context, id string) error {
	if _, err := s.stores.Guests.Get(ctx, id); err != nil {
		return err
	}
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}
	if guest.HasActiveBookings(bookings, id) {
		return apperrors.NewConflictError("cannot delete guest with active bookings")
	}

	if err := s.stores.Guests.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	s.publishSnapshot(ctx)
	return nil
}

// ToggleVip flips the guest's VIP flag manually, applying the tier and
// points defaults on the way up and clearing the tier on the way down.
func (s *GuestService) ToggleVip(ctx context.Context, id string) (guest.Guest, error) {
	g, err := s.stores.Guests.Get(ctx, id)
	if err != nil {
		return guest.Guest{}, err
	}

	isVip := !g.IsVip
	patch := guest.Patch{IsVip: &isVip}
	if isVip {
		level := g.VipLevel
		if level == "" {
			level = guest.DefaultVipLevel
		}
		points := g.LoyaltyPoints
		if points == 0 {
			points = guest.DefaultLoyaltyPoints
		}
		patch.VipLevel = &level
		patch.LoyaltyPoints = &points
	} else {
		empty := guest.VipLevel("")
		patch.VipLevel = &empty
	}

	updated, err := s.stores.Guests.Patch(ctx, id, patch)
	if err != nil {
		return guest.Guest{}, err
	}
	s.publishSnapshot(ctx)
	return updated, nil
}

// Stats derives the guest counters. Average spending is over all guests,
// counting completed bookings only.
func (s *GuestService) Stats(ctx context.Context) (GuestStats, error) {
	guests, err := s.stores.Guests.List(ctx)
	if err != nil {
		return GuestStats{}, fmt.Errorf("failed to list guests: %w", err)
	}
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return GuestStats{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	stats := GuestStats{Total: len(guests)}
	var spent float64
	for _, g := range guests {
		if guest.HasActiveBookings(bookings, g.ID) {
			stats.Active++
		}
		if g.IsVip {
			stats.Vip++
		}
		spent += guest.TotalSpent(bookings, g.ID)
	}
	if len(guests) > 0 {
		stats.AverageSpending = spent / float64(len(guests))
	}
	return stats, nil
}

// classify promotes the guest when due and returns the view with the label
// computed over the post-promotion state. The promotion write is persisted;
// a write failure is logged and the promotion retried on the next load.
func (s *GuestService) classify(ctx context.Context, g guest.Guest, bookings []booking.Booking) GuestView {
	spent := guest.TotalSpent(bookings, g.ID)
	if patch := guest.PromotionPatch(g, spent); patch != nil {
		promoted, err := s.stores.Guests.Patch(ctx, g.ID, patch)
		if err != nil {
			s.logger.Error("vip promotion write failed",
				zap.String("guest_id", g.ID),
				zap.Error(err),
			)
		} else {
			g = promoted
		}
	}
	return GuestView{Guest: g, StatusLabel: guest.StatusLabel(g, bookings)}
}

func (s *GuestService) existingIDs(ctx context.Context) ([]string, error) {
	guests, err := s.stores.Guests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	ids := make([]string, 0, len(guests))
	for _, g := range guests {
		ids = append(ids, g.ID)
	}
	return ids, nil
}

func (s *GuestService) publishSnapshot(ctx context.Context) {
	guests, err := s.stores.Guests.List(ctx)
	if err != nil {
		s.logger.Debug("skipping guest snapshot publish", zap.Error(err))
		return
	}
	s.hub.Guests.Publish(guests)
}
