// Package license classifies client licenses by proximity to expiry.
package license

import (
	"time"

	"github.com/daehokim/soluhub/internal/domain/models"
)

// Status is the expiry bucket a license falls into at a given instant.
type Status int

const (
	StatusNormal Status = iota
	StatusExpiringSoon
	StatusExpired
	StatusUnbounded
)

// String returns the wire name used in JSON payloads and query filters.
func (s Status) String() string {
	switch s {
	case StatusExpired:
		return "expired"
	case StatusExpiringSoon:
		return "expiring_soon"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "normal"
	}
}

// soonWindow is the look-ahead for the "expiring soon" bucket,
// inclusive on both ends.
const soonWindow = 7 * 24 * time.Hour

// Classify buckets an end date relative to now. A nil end date or the
// perpetual sentinel means the license never expires. The comparison is
// exact, not day-granular: an end date 7 days and one minute away is
// still StatusNormal.
func Classify(end *time.Time, now time.Time) Status {
	if end == nil || end.Format("2006-01-02") == models.PerpetualEnd {
		return StatusUnbounded
	}
	left := end.Sub(now)
	switch {
	case left < 0:
		return StatusExpired
	case left <= soonWindow:
		return StatusExpiringSoon
	default:
		return StatusNormal
	}
}

// DaysLeft returns whole days until expiry, truncated toward zero.
// Negative for expired licenses; ok is false for unbounded ones.
func DaysLeft(end *time.Time, now time.Time) (int, bool) {
	if end == nil || end.Format("2006-01-02") == models.PerpetualEnd {
		return 0, false
	}
	return int(end.Sub(now).Hours() / 24), true
}
