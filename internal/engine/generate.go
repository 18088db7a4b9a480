package engine

import "time"

// Generate returns every instant from start to end at granularity g, one
// per unit step.
//
// The first element is start itself and the last is end itself; the
// instants in between are built from start's calendar fields with the
// stepped field advanced, so they sit at the beginning of their bucket.
// A range whose end bucket precedes its start bucket is empty, and a range
// whose endpoints share a bucket is just [start].
//
// An unknown g yields an *InvalidArgumentError.
func Generate(start, end time.Time, g Granularity) ([]time.Time, error) {
	if !g.Valid() {
		return nil, &InvalidArgumentError{Value: g.String()}
	}

	n := Diff(start, end, g)
	switch {
	case n < 0:
		return []time.Time{}, nil
	case n == 0:
		return []time.Time{start}, nil
	case n == 1:
		return []time.Time{start, end}, nil
	}

	dates := make([]time.Time, 0, n+1)
	dates = append(dates, start)
	for _, i := range IntRange(1, n-1) {
		next, err := step(start, g, i)
		if err != nil {
			return nil, err
		}
		dates = append(dates, next)
	}
	return append(dates, end), nil
}
