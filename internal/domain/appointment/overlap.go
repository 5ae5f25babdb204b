package appointment

import "time"

// Overlaps reports whether two half-open ranges intersect. Back to back
// appointments, one ending exactly when the next starts, do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
