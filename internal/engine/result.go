package engine

import "time"

// Request carries the raw inputs of the date-list form: two YYYY-MM-DD
// strings and a frequency name. Empty endpoints mean today; an empty
// frequency means "date".
type Request struct {
	Start     string
	End       string
	Frequency string
}

// Result is a generated range, ready for presentation.
type Result struct {
	// Granularity is the unit the range was stepped by.
	Granularity Granularity

	// Start and End are the parsed endpoints.
	Start time.Time
	End   time.Time

	// Diff is the signed distance from Start to End in Granularity units.
	Diff int

	// Dates is the ordered range. It is empty (never nil) when End's bucket
	// precedes Start's.
	Dates []time.Time

	// GeneratedAt is the Clock reading when the range was produced.
	GeneratedAt time.Time
}

// Count is the number of instants in the range.
func (r *Result) Count() int {
	return len(r.Dates)
}

// Details returns the calendar fields of every instant in the range.
func (r *Result) Details() []InstantDetail {
	out := make([]InstantDetail, len(r.Dates))
	for i, t := range r.Dates {
		out[i] = Detail(t)
	}
	return out
}
