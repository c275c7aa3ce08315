// Package reset decides when a completed item becomes eligible to revert
// to not-done. The cooldown is not a fixed 24-hour window: an item stays
// done until the first local midnight after the day it was completed, so
// completing at 23:59 and again at 00:05 counts as two distinct days.
package reset

import (
	"fmt"
	"time"
)

// NextRollover returns 00:00 of the calendar day after completedAt, in
// completedAt's own location. time.Date normalizes day+1 across month,
// year and DST boundaries.
func NextRollover(completedAt time.Time) time.Time {
	return time.Date(
		completedAt.Year(), completedAt.Month(), completedAt.Day()+1,
		0, 0, 0, 0,
		completedAt.Location(),
	)
}

// UntilNextMidnight returns the delay from now to the next local
// midnight. Used to arm the whole-day rollover timer; callers must
// recompute from the current clock on every re-arm rather than repeating
// a fixed interval, which drifts.
func UntilNextMidnight(now time.Time) time.Duration {
	return NextRollover(now).Sub(now)
}

// Eligible reports whether the cooldown for a completion has elapsed.
// A nil completedAt means no completion is recorded, which is trivially
// eligible.
func Eligible(completedAt *time.Time, now time.Time) bool {
	if completedAt == nil {
		return true
	}
	return !now.Before(NextRollover(*completedAt))
}

// Remaining returns the time left until the completion becomes eligible
// to reset, or zero if it already is.
func Remaining(completedAt *time.Time, now time.Time) time.Duration {
	if Eligible(completedAt, now) {
		return 0
	}
	return NextRollover(*completedAt).Sub(now)
}

// FormatRemaining renders a duration as hours and minutes for display,
// e.g. "15h 59m". Sub-minute remainders round up so the display never
// shows "0h 0m" while the cooldown is still active.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	minutes := int((d + time.Minute - 1) / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
