package service

import "time"

// clock returns the current UTC time from now, or the wall clock when now
// is nil.
func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}
