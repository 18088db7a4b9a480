package engine

import "time"

// InstantDetail is the calendar-field view of an instant, read in the
// instant's own location. Month and Day are zero-based (January = 0,
// Sunday = 0).
type InstantDetail struct {
	Year   int `json:"year" cbor:"year"`
	Month  int `json:"month" cbor:"month"`
	Date   int `json:"date" cbor:"date"`
	Day    int `json:"day" cbor:"day"`
	Hour   int `json:"hour" cbor:"hour"`
	Minute int `json:"minute" cbor:"minute"`
	Second int `json:"second" cbor:"second"`
}

// Detail splits t into its calendar fields.
func Detail(t time.Time) InstantDetail {
	year, month, date := t.Date()
	return InstantDetail{
		Year:   year,
		Month:  int(month) - 1,
		Date:   date,
		Day:    int(t.Weekday()),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Truncate zeroes every field of t finer than g, rebuilding the instant
// from its calendar fields in t's location.
//
// Truncate panics with an *InvalidArgumentError if g is not valid.
func Truncate(t time.Time, g Granularity) time.Time {
	year, month, date := t.Date()
	loc := t.Location()

	switch g {
	case Year:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	case Month:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case Date:
		return time.Date(year, month, date, 0, 0, 0, 0, loc)
	case Hour:
		return time.Date(year, month, date, t.Hour(), 0, 0, 0, loc)
	case Minute:
		return time.Date(year, month, date, t.Hour(), t.Minute(), 0, 0, loc)
	default:
		panic(&InvalidArgumentError{Value: g.String()})
	}
}

// step returns the instant i units of g after start's bucket. Only the
// stepped field moves; time.Date carries any overflow into the coarser
// fields (day 32 of January is February 1st, month 13 is next January).
// Fields finer than g are zero.
func step(start time.Time, g Granularity, i int) (time.Time, error) {
	year, month, date := start.Date()
	hour, minute := start.Hour(), start.Minute()
	loc := start.Location()

	switch g {
	case Year:
		return time.Date(year+i, time.January, 1, 0, 0, 0, 0, loc), nil
	case Month:
		return time.Date(year, month+time.Month(i), 1, 0, 0, 0, 0, loc), nil
	case Date:
		return time.Date(year, month, date+i, 0, 0, 0, 0, loc), nil
	case Hour:
		return time.Date(year, month, date, hour+i, 0, 0, 0, loc), nil
	case Minute:
		return time.Date(year, month, date, hour, minute+i, 0, 0, loc), nil
	default:
		return time.Time{}, &InvalidArgumentError{Value: g.String()}
	}
}
