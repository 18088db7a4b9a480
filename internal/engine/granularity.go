package engine

import (
	"fmt"
	"strings"
)

// Granularity is the unit at which a range is stepped and diffed.
// The zero value is not a valid granularity.
type Granularity int

// Declared from finest to coarsest so that comparisons read naturally
// (Minute < Hour < ... < Year).
const (
	Minute Granularity = iota + 1
	Hour
	Date
	Month
	Year
)

var granularityNames = map[Granularity]string{
	Minute: "minute",
	Hour:   "hour",
	Date:   "date",
	Month:  "month",
	Year:   "year",
}

// Granularities returns every valid granularity, coarsest first.
// This is the order the selector offers them in.
func Granularities() []Granularity {
	return []Granularity{Year, Month, Date, Hour, Minute}
}

// ParseGranularity maps one of "year", "month", "date", "hour" or "minute"
// (case-insensitive) to its Granularity.
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for g, n := range granularityNames {
		if n == name {
			return g, nil
		}
	}
	return 0, &InvalidArgumentError{Value: s}
}

// Valid reports whether g is one of the declared granularities.
func (g Granularity) Valid() bool {
	_, ok := granularityNames[g]
	return ok
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// WholeDay reports whether instants of this granularity carry no time of day.
func (g Granularity) WholeDay() bool {
	switch g {
	case Year, Month, Date:
		return true
	case Hour, Minute:
		return false
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, &InvalidArgumentError{Value: g.String()}
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
