// Package marketcal decides whether the Tokyo market trades on a given day.
package marketcal

import "time"

// jst is the Tokyo Stock Exchange timezone. FixedZone avoids a tzdata
// dependency; JST has no daylight saving.
var jst = time.FixedZone("JST", 9*60*60)

// Now returns the current time in JST.
func Now() time.Time {
	return time.Now().In(jst)
}

// IsTradingDay reports whether the TSE trades on the given day, with a
// human-readable reason when it does not. Weekends only; national
// holidays are left to the operator's schedule.
func IsTradingDay(t time.Time) (bool, string) {
	switch t.In(jst).Weekday() {
	case time.Saturday:
		return false, "saturday"
	case time.Sunday:
		return false, "sunday"
	default:
		return true, ""
	}
}
