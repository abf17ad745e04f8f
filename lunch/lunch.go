// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package lunch answers whether a place is open at the next weekday lunch
// instant.
package lunch

import (
	"time"
	"unicode/utf8"

	"github.com/rickar/cal/v2"

	"github.com/vartfanskaviluncha/lunchhours/openinghours"
)

// The lunch instant is 12:00:01 local time.
const (
	hour   = 12
	minute = 0
	second = 1
)

// Instant returns 12:00:01 on the day of now, in now's location. Saturdays
// and Sundays move forward to the following Monday.
func Instant(now time.Time) time.Time {
	y, m, d := now.Date()
	at := time.Date(y, m, d, hour, minute, second, 0, now.Location())

	switch at.Weekday() {
	case time.Saturday:
		return at.AddDate(0, 0, 2)
	case time.Sunday:
		return at.AddDate(0, 0, 1)
	}
	return at
}

// Checker evaluates opening_hours expressions at the lunch instant.
// The zero value uses the local clock and no holiday calendar.
type Checker struct {
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time

	// Holidays is consulted by the PH selector.
	Holidays *cal.BusinessCalendar
}

func (c Checker) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// IsOpen reports whether pattern is open at the lunch instant. Text that is
// not UTF-8, does not parse, or is not definitely open yields false.
func (c Checker) IsOpen(pattern string) bool {
	if !utf8.ValidString(pattern) {
		return false
	}

	var opts []openinghours.Option
	if c.Holidays != nil {
		opts = append(opts, openinghours.WithHolidays(c.Holidays))
	}

	oh, err := openinghours.Parse(pattern, opts...)
	if err != nil {
		return false
	}

	return oh.IsOpen(Instant(c.now()))
}

// IsOpenBytes is IsOpen for a byte buffer owned by the caller. The buffer is
// not retained.
func (c Checker) IsOpenBytes(pattern []byte) bool {
	return c.IsOpen(string(pattern))
}

// IsOpen checks pattern against the local clock.
func IsOpen(pattern string) bool {
	return Checker{}.IsOpen(pattern)
}
