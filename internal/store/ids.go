package store

import (
	"strconv"
	"time"
)

// Identifier generation reproduces the store's original client-side scheme:
// max numeric id plus one for most collections, a millisecond timestamp for
// bookings. Both are collision-prone under concurrent creation; the store is
// assumed to reject or overwrite on collision. Kept reproducible on purpose
// and isolated here so a server-assigned scheme can replace it in one place.

// NextID computes the next identifier for a collection from the existing
// ids: (max numeric id) + 1 as a decimal string, starting at "1".
func NextID(ids []string) string {
	max := 0
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// BookingID computes a booking identifier: milliseconds since epoch as a
// decimal string.
func BookingID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
