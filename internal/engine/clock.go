package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Generator uses it to default empty endpoints to today and to stamp
// results.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// today returns local midnight of the clock's current day in loc.
func today(c Clock, loc *time.Location) time.Time {
	year, month, date := c.Now().In(loc).Date()
	return time.Date(year, month, date, 0, 0, 0, 0, loc)
}
