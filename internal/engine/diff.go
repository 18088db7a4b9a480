package engine

import "time"

const (
	millisPerMinute = 60 * 1000
	minutesPerHour  = 60
	hoursPerDay     = 24
)

// Diff returns the signed number of g units from start to end. Both
// instants are compared by their calendar fields, so end before start
// yields a negative count and two instants in the same bucket yield 0.
//
// Diff panics with an *InvalidArgumentError if g is not valid; use
// ParseGranularity at the boundary to rule that out.
func Diff(start, end time.Time, g Granularity) int {
	switch g {
	case Year:
		return DiffYears(start, end)
	case Month:
		return DiffMonths(start, end)
	case Date:
		return DiffDays(start, end)
	case Hour:
		return DiffHours(start, end)
	case Minute:
		return DiffMinutes(start, end)
	default:
		panic(&InvalidArgumentError{Value: g.String()})
	}
}

// DiffYears is end.Year() - start.Year().
func DiffYears(start, end time.Time) int {
	return end.Year() - start.Year()
}

// DiffMonths counts month boundaries between start and end across years.
func DiffMonths(start, end time.Time) int {
	return totalMonths(end) - totalMonths(start)
}

// DiffDays counts calendar days between start and end, ignoring the time of day.
func DiffDays(start, end time.Time) int {
	return int((elapsedMillis(end, Date) - elapsedMillis(start, Date)) / millisPerMinute / minutesPerHour / hoursPerDay)
}

// DiffHours counts hour buckets between start and end.
func DiffHours(start, end time.Time) int {
	return int((elapsedMillis(end, Hour) - elapsedMillis(start, Hour)) / millisPerMinute / minutesPerHour)
}

// DiffMinutes counts minute buckets between start and end.
func DiffMinutes(start, end time.Time) int {
	return int((elapsedMillis(end, Minute) - elapsedMillis(start, Minute)) / millisPerMinute)
}

func totalMonths(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// elapsedMillis truncates t to g and returns the milliseconds since the
// Unix epoch of that wall-clock reading taken on a fixed-offset calendar.
// Re-reading the local fields on UTC keeps the arithmetic field-based:
// a 23 or 25 hour DST day still counts as exactly one day.
func elapsedMillis(t time.Time, g Granularity) int64 {
	return Truncate(wallClock(t), g).UnixMilli()
}

func wallClock(t time.Time) time.Time {
	year, month, date := t.Date()
	hour, minute, second := t.Clock()
	return time.Date(year, month, date, hour, minute, second, t.Nanosecond(), time.UTC)
}
