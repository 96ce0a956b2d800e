package booking

import "github.com/google/uuid"

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2)
// intersect. Back-to-back windows (one ending exactly when the other
// starts) do not overlap.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

// FindConflict scans same-day bookings for one room and returns the booking
// whose window overlaps [start,end), or nil if the window is free.
//
// Rejected bookings no longer occupy their slot and are skipped, as is the
// booking identified by excludeID (used when re-validating an existing
// request against all others). When several bookings overlap the window,
// the one with the earliest CreatedAt wins.
func FindConflict(sameDay []*Booking, start, end TimeOfDay, excludeID uuid.UUID) *Booking {
	var conflict *Booking
	for _, b := range sameDay {
		if !b.Status.OccupiesSlot() {
			continue
		}
		if excludeID != uuid.Nil && b.ID == excludeID {
			continue
		}
		if !Overlaps(b.Start, b.End, start, end) {
			continue
		}
		if conflict == nil || b.CreatedAt.Before(conflict.CreatedAt) {
			conflict = b
		}
	}
	return conflict
}

// Occupying filters a day's bookings down to those blocking their window
func Occupying(sameDay []*Booking) []*Booking {
	out := make([]*Booking, 0, len(sameDay))
	for _, b := range sameDay {
		if b.Status.OccupiesSlot() {
			out = append(out, b)
		}
	}
	return out
}
