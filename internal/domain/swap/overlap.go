package swap

import "time"

// Overlaps reports whether the candidate window conflicts with any of the
// given slots on the same calendar date. Intervals are half-open: a booking
// that ends exactly when another starts does not overlap.
func Overlaps(existing []Slot, gameDate time.Time, startMinute, endMinute int) bool {
	for _, slot := range existing {
		if !sameGameDate(slot.GameDate, gameDate) {
			continue
		}
		if slot.StartMinute < endMinute && startMinute < slot.EndMinute {
			return true
		}
	}
	return false
}
