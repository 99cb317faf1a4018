package progression

import "time"

// IsAbandoned reports whether at least thresholdHours passed between lastActive and now.
func IsAbandoned(lastActive, now time.Time, thresholdHours float64) bool {
	return now.Sub(lastActive).Hours() >= thresholdHours
}
