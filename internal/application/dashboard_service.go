package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/store"
)

// DashboardSummary is the landing-page snapshot: room occupancy, booking
// volume, the current month's completed revenue and the latest bookings.
type DashboardSummary struct {
	AvailableRooms int               `json:"availableRooms"`
	OccupiedRooms  int               `json:"occupiedRooms"`
	TotalRooms     int               `json:"totalRooms"`
	TotalBookings  int               `json:"totalBookings"`
	MonthlyRevenue float64           `json:"monthlyRevenue"`
	RecentBookings []booking.Booking `json:"recentBookings"`
}

const recentBookingsLimit = 3

// DashboardService derives the landing-page summary from the live
// collections on every request; nothing is cached.
type DashboardService struct {
	stores *store.Stores
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(stores *store.Stores, logger *zap.Logger) *DashboardService {
	return &DashboardService{stores: stores, logger: logger, now: time.Now}
}

// Summary computes the dashboard snapshot.
func (s *DashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	rooms, err := s.stores.Rooms.List(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("failed to list rooms: %w", err)
	}
	bookings, err := s.stores.Bookings.List(ctx)
	if err != nil {
		return DashboardSummary{}, fmt.Errorf("failed to list bookings: %w", err)
	}

	booking.SortByCheckInDesc(bookings)
	recent := bookings
	if len(recent) > recentBookingsLimit {
		recent = recent[:recentBookingsLimit]
	}

	now := s.now()
	return DashboardSummary{
		AvailableRooms: room.CountByStatus(rooms, room.StatusAvailable),
		OccupiedRooms:  room.CountByStatus(rooms, room.StatusOccupied),
		TotalRooms:     len(rooms),
		TotalBookings:  len(bookings),
		MonthlyRevenue: booking.MonthlyRevenue(bookings, now.Month(), now.Year()),
		RecentBookings: recent,
	}, nil
}
