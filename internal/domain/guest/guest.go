package guest

import (
	"strings"

	"github.com/stayfront/hotel-console/internal/domain/booking"
)

// VipLevel is the tier of a VIP guest, present only while IsVip is true.
type VipLevel string

const (
	VipBronze   VipLevel = "bronze"
	VipSilver   VipLevel = "silver"
	VipGold     VipLevel = "gold"
	VipPlatinum VipLevel = "platinum"
)

// IsValid returns true if the VIP level is recognized.
func (l VipLevel) IsValid() bool {
	switch l {
	case VipBronze, VipSilver, VipGold, VipPlatinum:
		return true
	}
	return false
}

// VipThreshold is the lifetime completed spend above which a guest is
// auto-promoted to VIP.
const VipThreshold = 1000.0

// Defaults applied on first promotion when the guest had no prior tier/points.
const (
	DefaultVipLevel      = VipBronze
	DefaultLoyaltyPoints = 100
)

// Guest is a hotel guest record. Bookings are held by reference, not owned;
// the list is initialized empty on create and maintained by the store.
type Guest struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone"`
	Address       string            `json:"address"`
	IDNumber      string            `json:"idNumber"`
	IsVip         bool              `json:"isVip"`
	VipLevel      VipLevel          `json:"vipLevel,omitempty"`
	LoyaltyPoints int               `json:"loyaltyPoints"`
	Bookings      []booking.Booking `json:"bookings"`
	IDProofPath   string            `json:"idProofPath,omitempty"`
}

// Patch lists the guest attributes mutable after creation.
type Patch struct {
	Name          *string   `json:"name,omitempty"`
	Email         *string   `json:"email,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Address       *string   `json:"address,omitempty"`
	IDNumber      *string   `json:"idNumber,omitempty"`
	IsVip         *bool     `json:"isVip,omitempty"`
	VipLevel      *VipLevel `json:"vipLevel,omitempty"`
	LoyaltyPoints *int      `json:"loyaltyPoints,omitempty"`
	IDProofPath   *string   `json:"idProofPath,omitempty"`
}

// TotalSpent sums the total amounts of the guest's completed bookings.
func TotalSpent(bookings []booking.Booking, guestID string) float64 {
	var sum float64
	for _, b := range bookings {
		if b.GuestID == guestID && b.Status == booking.StatusCompleted {
			sum += b.TotalAmount
		}
	}
	return sum
}

// HasActiveBookings reports whether any pending or confirmed booking
// references the guest. Guests with active bookings cannot be deleted.
func HasActiveBookings(bookings []booking.Booking, guestID string) bool {
	for _, b := range bookings {
		if b.GuestID == guestID && b.Status.IsActive() {
			return true
		}
	}
	return false
}

// StatusLabel derives the guest's display status: Active while any booking
// is pending/confirmed, else VIP, else Regular once anything was spent,
// else New.
func StatusLabel(g Guest, bookings []booking.Booking) string {
	if HasActiveBookings(bookings, g.ID) {
		return "Active"
	}
	if g.IsVip {
		return "VIP"
	}
	if TotalSpent(bookings, g.ID) > 0 {
		return "Regular"
	}
	return "New"
}

// PromotionPatch returns the update that promotes the guest to VIP, or nil
// when no promotion is due. The check-before-write guard makes repeated
// classification calls idempotent: an already-VIP guest never produces a
// patch.
func PromotionPatch(g Guest, totalSpent float64) *Patch {
	if g.IsVip || totalSpent <= VipThreshold {
		return nil
	}
	isVip := true
	level := g.VipLevel
	if level == "" {
		level = DefaultVipLevel
	}
	points := g.LoyaltyPoints
	if points == 0 {
		points = DefaultLoyaltyPoints
	}
	return &Patch{IsVip: &isVip, VipLevel: &level, LoyaltyPoints: &points}
}

// Search filters guests whose name, email or phone contains the term.
// An empty term returns all guests.
func Search(guests []Guest, term string) []Guest {
	if term == "" {
		return guests
	}
	lowered := strings.ToLower(term)
	out := make([]Guest, 0, len(guests))
	for _, g := range guests {
		if strings.Contains(strings.ToLower(g.Name), lowered) ||
			strings.Contains(strings.ToLower(g.Email), lowered) ||
			strings.Contains(g.Phone, term) {
			out = append(out, g)
		}
	}
	return out
}
