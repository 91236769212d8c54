package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stayfront/hotel-console/internal/domain/booking"
	"github.com/stayfront/hotel-console/internal/domain/guest"
	"github.com/stayfront/hotel-console/internal/domain/room"
	"github.com/stayfront/hotel-console/internal/domain/servicereq"
	"github.com/stayfront/hotel-console/internal/domain/user"
)

// Resource is the persistence contract for one store collection.
type Resource[T any] interface {
	List(ctx context.Context) ([]T, error)
	Find(ctx context.Context, filters map[string]string) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Patch(ctx context.Context, id string, patch any) (T, error)
	Delete(ctx context.Context, id string) error
}

// Collection names as exposed by the store. The credentials and profile
// collections are deliberately parallel.
const (
	CollectionRooms           = "rooms"
	CollectionBookings        = "bookings"
	CollectionGuests          = "guests"
	CollectionServiceRequests = "serviceRequests"
	CollectionUsers           = "users"
	CollectionUserManagement  = "UserManagement"
)

// Stores bundles the typed collections of the hotel store.
type Stores struct {
	Rooms    Resource[room.Room]
	Bookings Resource[booking.Booking]
	Guests   Resource[guest.Guest]
	Requests Resource[servicereq.Request]
	Users    Resource[user.User]
	Profiles Resource[user.Profile]
}

// NewHTTPStores wires every collection against the REST store at baseURL.
func NewHTTPStores(baseURL string, timeout time.Duration, logger *zap.Logger) *Stores {
	client := NewClient(baseURL, timeout, logger)
	return &Stores{
		Rooms:    NewCollection[room.Room](client, CollectionRooms),
		Bookings: NewCollection[booking.Booking](client, CollectionBookings),
		Guests:   NewCollection[guest.Guest](client, CollectionGuests),
		Requests: NewCollection[servicereq.Request](client, CollectionServiceRequests),
		Users:    NewCollection[user.User](client, CollectionUsers),
		Profiles: NewCollection[user.Profile](client, CollectionUserManagement),
	}
}

// NewMemoryStores builds an in-memory store bundle for tests.
func NewMemoryStores() *Stores {
	return &Stores{
		Rooms:    NewMemory(func(r room.Room) string { return r.ID }),
		Bookings: NewMemory(func(b booking.Booking) string { return b.ID }),
		Guests:   NewMemory(func(g guest.Guest) string { return g.ID }),
		Requests: NewMemory(func(r servicereq.Request) string { return r.ID }),
		Users:    NewMemory(func(u user.User) string { return u.ID }),
		Profiles: NewMemory(func(p user.Profile) string { return p.ID }),
	}
}
