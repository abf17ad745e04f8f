// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package lunch

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The week of 2026-10-19 runs Monday through Sunday.
var week = []string{
	"2026-10-19",
	"2026-10-20",
	"2026-10-21",
	"2026-10-22",
	"2026-10-23",
	"2026-10-24",
	"2026-10-25",
}

func day(t *testing.T, s string, loc *time.Location) time.Time {
	when, err := time.ParseInLocation("2006-01-02 15:04:05", s+" 07:30:00", loc)
	require.NoError(t, err)
	return when
}

func fixed(when time.Time) func() time.Time {
	return func() time.Time { return when }
}

func TestInstant(t *testing.T) {
	tests := []struct {
		description string
		today       string
		expected    string
	}{
		{description: "monday", today: "2026-10-19", expected: "2026-10-19"},
		{description: "wednesday", today: "2026-10-21", expected: "2026-10-21"},
		{description: "friday", today: "2026-10-23", expected: "2026-10-23"},
		{description: "saturday", today: "2026-10-24", expected: "2026-10-26"},
		{description: "sunday", today: "2026-10-25", expected: "2026-10-26"},
		{description: "saturday at the end of the month", today: "2026-10-31", expected: "2026-11-02"},
		{description: "sunday at the end of the year", today: "2028-12-31", expected: "2029-01-01"},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got := Instant(day(t, tc.today, time.UTC))
			assert.Equal(tc.expected, got.Format("2006-01-02"))
			assert.Equal("12:00:01", got.Format("15:04:05"))
			assert.NotEqual(time.Saturday, got.Weekday())
			assert.NotEqual(time.Sunday, got.Weekday())
		})
	}
}

func TestInstantKeepsLocation(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	require.NoError(t, err)

	// Summer time ends in Stockholm on Sunday 2026-10-25.
	got := Instant(day(t, "2026-10-24", loc))
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, "2026-10-26 12:00:01", got.Format("2006-01-02 15:04:05"))
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		description string
		pattern     string
		days        []string
		expected    bool
	}{
		{
			description: "always open on every day",
			pattern:     "24/7",
			days:        week,
			expected:    true,
		},
		{
			description: "office hours roll the weekend to monday",
			pattern:     "Mo-Fr 09:00-18:00",
			days:        week,
			expected:    true,
		},
		{
			description: "afternoon opening misses lunch",
			pattern:     "Mo-Fr 13:00-18:00",
			days:        week,
			expected:    false,
		},
		{
			description: "closing at noon misses lunch",
			pattern:     "Mo-Fr 08:00-12:00",
			days:        week,
			expected:    false,
		},
		{
			description: "weekend only is never checked",
			pattern:     "Sa-Su 10:00-16:00",
			days:        week,
			expected:    false,
		},
		{
			description: "fallback does not fill a matched day",
			pattern:     "Mo-Fr 08:00-11:00 || Mo-Fr 11:30-14:00",
			days:        week,
			expected:    false,
		},
		{
			description: "unknown is not open",
			pattern:     "Mo-Fr 11:00-14:00 unknown",
			days:        week,
			expected:    false,
		},
		{
			description: "syntax error",
			pattern:     "Mo-Fr 09:00-",
			days:        week,
			expected:    false,
		},
		{
			description: "unsupported construct",
			pattern:     "Mo-Fr sunrise-sunset",
			days:        week,
			expected:    false,
		},
		{
			description: "empty",
			pattern:     "",
			days:        week,
			expected:    false,
		},
		{
			description: "not utf-8",
			pattern:     "Mo-Fr 09:00-18:00 \"caf\xe9\"",
			days:        week,
			expected:    false,
		},
	}

	for _, tc := range tests {
		for _, d := range tc.days {
			t.Run(tc.description+": "+d, func(t *testing.T) {
				c := Checker{Now: fixed(day(t, d, time.UTC))}
				assert.Equal(t, tc.expected, c.IsOpen(tc.pattern))
				assert.Equal(t, tc.expected, c.IsOpenBytes([]byte(tc.pattern)))
			})
		}
	}
}

func TestIsOpenHolidays(t *testing.T) {
	holidays := cal.NewBusinessCalendar()
	holidays.AddHoliday(us.ChristmasDay)

	christmas := day(t, "2026-12-25", time.UTC)

	without := Checker{Now: fixed(christmas)}
	assert.True(t, without.IsOpen("Mo-Fr 09:00-18:00; PH off"))

	with := Checker{Now: fixed(christmas), Holidays: holidays}
	assert.False(t, with.IsOpen("Mo-Fr 09:00-18:00; PH off"))
	assert.True(t, with.IsOpen("Mo-Fr 09:00-18:00; PH 11:00-13:00"))
}

func TestIsOpenBytesRejectsInvalidUTF8(t *testing.T) {
	c := Checker{Now: fixed(day(t, "2026-10-19", time.UTC))}

	assert.False(t, c.IsOpenBytes([]byte{0xff, 0xfe, 0xfd}))
	assert.False(t, c.IsOpenBytes(append([]byte("24/7"), 0xc3)))
	assert.True(t, c.IsOpenBytes([]byte("24/7")))
}

func TestIsOpenIsRepeatable(t *testing.T) {
	patterns := []string{"24/7", "Mo-Fr 09:00-18:00", "Mo-Fr 13:00-18:00", "garbage"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			assert.Equal(t, IsOpen(p), IsOpen(p))
		})
	}
}

func TestZeroCheckerUsesLocalClock(t *testing.T) {
	assert.True(t, Checker{}.IsOpen("24/7"))
	assert.True(t, IsOpen("24/7"))
	assert.False(t, IsOpen("off"))
}
