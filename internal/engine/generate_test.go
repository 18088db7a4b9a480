package engine_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambition/rrule-go"
	"github.com/tartampluch/go-daterange/internal/engine"
)

func day(year int, month time.Month, date int) time.Time {
	return time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_Examples(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		g        engine.Granularity
		expected []time.Time
	}{
		{
			name:     "Month-local day stepping",
			start:    day(2020, 12, 1),
			end:      day(2020, 12, 3),
			g:        engine.Date,
			expected: []time.Time{day(2020, 12, 1), day(2020, 12, 2), day(2020, 12, 3)},
		},
		{
			name:     "Day overflow rolls into next month",
			start:    day(2020, 1, 31),
			end:      day(2020, 2, 2),
			g:        engine.Date,
			expected: []time.Time{day(2020, 1, 31), day(2020, 2, 1), day(2020, 2, 2)},
		},
		{
			name:     "Leap day",
			start:    day(2024, 2, 28),
			end:      day(2024, 3, 1),
			g:        engine.Date,
			expected: []time.Time{day(2024, 2, 28), day(2024, 2, 29), day(2024, 3, 1)},
		},
		{
			name:     "Month overflow rolls into next year",
			start:    day(2020, 11, 1),
			end:      day(2021, 2, 1),
			g:        engine.Month,
			expected: []time.Time{day(2020, 11, 1), day(2020, 12, 1), day(2021, 1, 1), day(2021, 2, 1)},
		},
		{
			name:     "Months from a month end keep one instant per month",
			start:    day(2020, 1, 31),
			end:      day(2020, 4, 30),
			g:        engine.Month,
			expected: []time.Time{day(2020, 1, 31), day(2020, 2, 1), day(2020, 3, 1), day(2020, 4, 30)},
		},
		{
			name:     "Years step to January 1st",
			start:    day(2018, 6, 15),
			end:      day(2021, 3, 1),
			g:        engine.Year,
			expected: []time.Time{day(2018, 6, 15), day(2019, 1, 1), day(2020, 1, 1), day(2021, 3, 1)},
		},
		{
			name:  "Hour overflow rolls into next day",
			start: time.Date(2020, 12, 31, 22, 45, 0, 0, time.UTC),
			end:   time.Date(2021, 1, 1, 1, 10, 0, 0, time.UTC),
			g:     engine.Hour,
			expected: []time.Time{
				time.Date(2020, 12, 31, 22, 45, 0, 0, time.UTC),
				time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2021, 1, 1, 1, 10, 0, 0, time.UTC),
			},
		},
		{
			name:  "Minute overflow rolls into next hour",
			start: time.Date(2020, 12, 1, 9, 58, 30, 0, time.UTC),
			end:   time.Date(2020, 12, 1, 10, 1, 0, 0, time.UTC),
			g:     engine.Minute,
			expected: []time.Time{
				time.Date(2020, 12, 1, 9, 58, 30, 0, time.UTC),
				time.Date(2020, 12, 1, 9, 59, 0, 0, time.UTC),
				time.Date(2020, 12, 1, 10, 0, 0, 0, time.UTC),
				time.Date(2020, 12, 1, 10, 1, 0, 0, time.UTC),
			},
		},
		{
			name:     "Adjacent buckets skip stepping",
			start:    time.Date(2020, 12, 1, 23, 59, 0, 0, time.UTC),
			end:      time.Date(2020, 12, 2, 0, 1, 0, 0, time.UTC),
			g:        engine.Date,
			expected: []time.Time{time.Date(2020, 12, 1, 23, 59, 0, 0, time.UTC), time.Date(2020, 12, 2, 0, 1, 0, 0, time.UTC)},
		},
		{
			name:     "Same bucket collapses to start",
			start:    time.Date(2020, 12, 1, 8, 0, 0, 0, time.UTC),
			end:      time.Date(2020, 12, 1, 20, 0, 0, 0, time.UTC),
			g:        engine.Date,
			expected: []time.Time{time.Date(2020, 12, 1, 8, 0, 0, 0, time.UTC)},
		},
		{
			name:     "End before start is empty",
			start:    day(2020, 12, 3),
			end:      day(2020, 12, 1),
			g:        engine.Date,
			expected: []time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Generate(tt.start, tt.end, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestGenerate_Properties checks the range invariants over a grid of
// endpoint pairs and every granularity.
func TestGenerate_Properties(t *testing.T) {
	points := []time.Time{
		time.Date(2019, 12, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 31, 12, 30, 0, 0, time.UTC),
		time.Date(2020, 2, 29, 6, 0, 0, 0, time.UTC),
		time.Date(2020, 3, 1, 0, 1, 0, 0, time.UTC),
		time.Date(2020, 3, 1, 2, 0, 0, 0, time.UTC),
	}

	for _, g := range engine.Granularities() {
		for _, start := range points {
			for _, end := range points {
				got, err := engine.Generate(start, end, g)
				require.NoError(t, err)

				diff := engine.Diff(start, end, g)
				truncStart, truncEnd := engine.Truncate(start, g), engine.Truncate(end, g)

				if truncEnd.Before(truncStart) {
					assert.Empty(t, got, "%s %s..%s", g, start, end)
					assert.Negative(t, diff)
					continue
				}

				require.Len(t, got, diff+1, "%s %s..%s", g, start, end)
				assert.Equal(t, start, got[0])
				if len(got) > 1 {
					assert.Equal(t, end, got[len(got)-1])
				}
				for i := 1; i < len(got); i++ {
					prev, cur := engine.Truncate(got[i-1], g), engine.Truncate(got[i], g)
					assert.True(t, prev.Before(cur), "%s: %s must precede %s", g, got[i-1], got[i])
					assert.Equal(t, 1, engine.Diff(got[i-1], got[i], g), "%s: consecutive instants are one unit apart", g)
				}
			}
		}
	}
}

func TestGenerate_SameInstantIsSingleton(t *testing.T) {
	start := time.Date(2020, 5, 17, 13, 37, 42, 0, time.UTC)
	for _, g := range engine.Granularities() {
		got, err := engine.Generate(start, start, g)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{start}, got, g.String())
	}
}

func TestGenerate_InvalidGranularity(t *testing.T) {
	_, err := engine.Generate(day(2020, 1, 1), day(2020, 1, 5), engine.Granularity(42))

	require.ErrorIs(t, err, engine.ErrInvalidArgument)
	var argErr *engine.InvalidArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, "Granularity(42)", argErr.Value)
}

// TestGenerate_AgreesWithRRule cross-checks bucket-aligned ranges against an
// independent RFC 5545 recurrence expansion.
func TestGenerate_AgreesWithRRule(t *testing.T) {
	freqs := map[engine.Granularity]rrule.Frequency{
		engine.Year:   rrule.YEARLY,
		engine.Month:  rrule.MONTHLY,
		engine.Date:   rrule.DAILY,
		engine.Hour:   rrule.HOURLY,
		engine.Minute: rrule.MINUTELY,
	}
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for g, freq := range freqs {
		t.Run(g.String(), func(t *testing.T) {
			r, err := rrule.NewRRule(rrule.ROption{Freq: freq, Dtstart: start, Count: 40})
			require.NoError(t, err)
			want := r.All()

			got, err := engine.Generate(start, want[len(want)-1], g)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestGenerate_DSTUsesWallClock(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2021-03-14 is a 23 hour day in New York.
	got, err := engine.Generate(time.Date(2021, 3, 13, 0, 0, 0, 0, ny), time.Date(2021, 3, 16, 0, 0, 0, 0, ny), engine.Date)
	require.NoError(t, err)

	require.Len(t, got, 4)
	for i, d := range got {
		assert.Equal(t, 13+i, d.Day())
		assert.Zero(t, d.Hour(), "every instant stays at local midnight")
	}
}
