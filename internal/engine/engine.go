package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tartampluch/go-daterange/internal/config"
)

// Generator turns raw form input into a generated range.
type Generator struct {
	Clock Clock // Interface for time mocking.

	// Location is the calendar the endpoints are read in. Nil means time.Local.
	Location *time.Location

	// Limit caps the number of instants Run may produce. Zero means no limit.
	Limit int
}

// NewGenerator returns a Generator reading dates in loc with the real clock.
func NewGenerator(loc *time.Location) *Generator {
	return &Generator{
		Clock:    RealClock{},
		Location: loc,
	}
}

// Run parses req and generates its range.
// Input problems are returned as *RequestError.
func (g *Generator) Run(ctx context.Context, req Request) (*Result, error) {
	begin := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gran, start, end, err := g.parse(req)
	if err != nil {
		return nil, err
	}

	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFrequency, gran.String(),
	)
	log.DebugContext(ctx, config.MsgRangeStarted,
		config.LogKeyStart, start.Format(config.DateFormatInput),
		config.LogKeyEnd, end.Format(config.DateFormatInput),
	)

	diff := Diff(start, end, gran)
	if g.Limit > 0 && diff >= g.Limit {
		return nil, &RequestError{
			Field: config.QueryEnd,
			Value: end.Format(config.DateFormatInput),
			Err:   fmt.Errorf("%w: %d > %d", ErrRangeTooLarge, diff+1, g.Limit),
		}
	}

	dates, err := Generate(start, end, gran)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Granularity: gran,
		Start:       start,
		End:         end,
		Diff:        diff,
		Dates:       dates,
		GeneratedAt: g.clock().Now(),
	}

	if res.Count() == 0 {
		log.InfoContext(ctx, config.MsgRangeEmpty, config.LogKeyDiff, res.Diff)
	}
	log.InfoContext(ctx, config.MsgRangeDone,
		config.LogKeyCount, res.Count(),
		config.LogKeyDiff, res.Diff,
		config.LogKeyDuration, time.Since(begin).Milliseconds(),
	)
	return res, nil
}

// Diff parses req and returns the signed distance between its endpoints
// without generating the range.
func (g *Generator) Diff(ctx context.Context, req Request) (Granularity, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	gran, start, end, err := g.parse(req)
	if err != nil {
		return 0, 0, err
	}
	return gran, Diff(start, end, gran), nil
}

func (g *Generator) parse(req Request) (Granularity, time.Time, time.Time, error) {
	gran, err := parseFrequency(req.Frequency)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	start, err := g.parseDate(config.QueryStart, req.Start)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	end, err := g.parseDate(config.QueryEnd, req.End)
	if err != nil {
		return 0, time.Time{}, time.Time{}, err
	}
	return gran, start, end, nil
}

func (g *Generator) clock() Clock {
	if g.Clock == nil {
		return RealClock{}
	}
	return g.Clock
}

func (g *Generator) location() *time.Location {
	if g.Location == nil {
		return time.Local
	}
	return g.Location
}

// parseDate reads a YYYY-MM-DD endpoint as local midnight in the
// generator's location. An empty value is today.
func (g *Generator) parseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return today(g.clock(), g.location()), nil
	}

	t, err := time.ParseInLocation(config.DateFormatInput, value, g.location())
	if err != nil {
		return time.Time{}, &RequestError{
			Field: field,
			Value: value,
			Err:   fmt.Errorf("%s: %w", config.ErrInvalidDate, err),
		}
	}
	return t, nil
}

func parseFrequency(value string) (Granularity, error) {
	if strings.TrimSpace(value) == "" {
		value = config.DefaultFrequency
	}
	gran, err := ParseGranularity(value)
	if err != nil {
		return 0, &RequestError{Field: config.QueryFrequency, Value: value, Err: err}
	}
	return gran, nil
}
