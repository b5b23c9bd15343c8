// Package timeutil holds the small date helpers the HTTP layer uses to set
// cookie expirations. Token lifetimes are handled by the token service, not
// here.
package timeutil

import "time"

func HoursFromNow(n int) time.Time {
	return time.Now().Add(time.Duration(n) * time.Hour)
}

func DaysFromNow(n int) time.Time {
	return time.Now().Add(time.Duration(n) * 24 * time.Hour)
}
