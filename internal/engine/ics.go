package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
	"github.com/tartampluch/go-daterange/internal/config"
)

const propRRule = "RRULE"

var rruleFreq = map[Granularity]rrule.Frequency{
	Year:   rrule.YEARLY,
	Month:  rrule.MONTHLY,
	Date:   rrule.DAILY,
	Hour:   rrule.HOURLY,
	Minute: rrule.MINUTELY,
}

// ICSOptions tunes EncodeICS.
type ICSOptions struct {
	// Summary labels each event. Nil falls back to config.FallbackSummary.
	Summary func(t time.Time) string

	// Compact emits a single recurring event instead of one event per
	// instant when the range can be described by an RRULE (see SeriesRule).
	Compact bool
}

// SeriesRule describes res as an RRULE (FREQ=<unit>;COUNT=<n>) anchored at
// res.Start. It only succeeds when both endpoints sit at the beginning of
// their bucket: RRULE repeats DTSTART's finer fields, whereas a range keeps
// the original endpoints and zeroes them in between.
func SeriesRule(res *Result) (*rrule.RRule, bool) {
	if res.Count() == 0 {
		return nil, false
	}
	freq, ok := rruleFreq[res.Granularity]
	if !ok {
		return nil, false
	}
	if !res.Start.Equal(Truncate(res.Start, res.Granularity)) || !res.End.Equal(Truncate(res.End, res.Granularity)) {
		return nil, false
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    freq,
		Dtstart: res.Start,
		Count:   res.Count(),
	})
	if err != nil {
		return nil, false
	}
	return r, true
}

// EncodeICS writes res as an iCalendar feed. Each instant becomes a VEVENT;
// whole-day granularities use DATE values, hour and minute use UTC DATE-TIME.
// DTSTAMP is the UTC day of res.GeneratedAt, so repeated exports on the
// same day are identical. An empty range produces a valid, empty VCALENDAR.
func EncodeICS(w io.Writer, res *Result, opts ICSOptions) error {
	if res.Count() == 0 {
		_, err := io.WriteString(w, config.StubVCalendar)
		return err
	}

	summary := opts.Summary
	if summary == nil {
		summary = func(t time.Time) string {
			return fmt.Sprintf(config.FallbackSummary, t.Format(config.DateFormatInput))
		}
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(res.GeneratedAt.UTC().Truncate(config.DTStampResolution))

	if opts.Compact {
		if rule, ok := SeriesRule(res); ok {
			event := newEvent(res.Start, res.Granularity, summary(res.Start), dtStampProp)
			rruleProp := ical.NewProp(propRRule)
			rruleProp.Value = rule.OrigOptions.RRuleString()
			event.Props.Set(rruleProp)
			cal.Children = append(cal.Children, event.Component)
			return encodeCalendar(w, cal)
		}
	}

	for _, t := range res.Dates {
		event := newEvent(t, res.Granularity, summary(t), dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}
	return encodeCalendar(w, cal)
}

func newEvent(t time.Time, g Granularity, summary string, dtStamp *ical.Prop) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, eventUID(t, g))
	event.Props.Set(dtStamp)
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	if g.WholeDay() {
		dtStartProp.SetDate(t)
	} else {
		dtStartProp.SetDateTime(t.UTC())
	}
	event.Props.Set(dtStartProp)
	return event
}

// eventUID is deterministic so re-exporting a range yields stable UIDs.
func eventUID(t time.Time, g Granularity) string {
	hash := sha256.Sum256([]byte(config.UIDSalt + g.String() + "|" + t.Format(time.RFC3339Nano)))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

func encodeCalendar(w io.Writer, cal *ical.Calendar) error {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
