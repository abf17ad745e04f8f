// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

var weekdayNames = [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// weekdayIndex maps a weekday to 0 for Monday through 6 for Sunday.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func lookupWeekday(word string) (int, bool) {
	for i, name := range weekdayNames {
		if strings.EqualFold(word, name) {
			return i, true
		}
	}
	return 0, false
}

func lookupMonth(word string) (time.Month, bool) {
	for i, name := range monthNames {
		if strings.EqualFold(word, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

type yearRange struct {
	from int
	to   int
}

func (r yearRange) matches(day time.Time) bool {
	return r.from <= day.Year() && day.Year() <= r.to
}

func (r yearRange) String() string {
	if r.from == r.to {
		return fmt.Sprintf("%d", r.from)
	}
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

// monthdayRange selects the dates between two month/day pairs. A day of zero
// selects the whole month. Ranges with a start after the end wrap the year.
type monthdayRange struct {
	fromMonth time.Month
	fromDay   int
	toMonth   time.Month
	toDay     int
}

func (r monthdayRange) matches(day time.Time) bool {
	from := int(r.fromMonth)*100 + r.fromDay
	to := int(r.toMonth)*100 + r.toDay
	if r.toDay == 0 {
		to += 31
	}
	at := int(day.Month())*100 + day.Day()

	if from <= to {
		return from <= at && at <= to
	}
	return at >= from || at <= to
}

func (r monthdayRange) String() string {
	point := func(m time.Month, d int) string {
		if d == 0 {
			return monthNames[m-1]
		}
		return fmt.Sprintf("%s %02d", monthNames[m-1], d)
	}

	if r.fromMonth == r.toMonth && r.fromDay == r.toDay {
		return point(r.fromMonth, r.fromDay)
	}
	return point(r.fromMonth, r.fromDay) + "-" + point(r.toMonth, r.toDay)
}

// weekRange selects ISO week numbers.
type weekRange struct {
	from int
	to   int
	step int
}

func (r weekRange) matches(day time.Time) bool {
	_, week := day.ISOWeek()
	if week < r.from || week > r.to {
		return false
	}
	return (week-r.from)%r.step == 0
}

func (r weekRange) String() string {
	s := fmt.Sprintf("week %02d", r.from)
	if r.to != r.from {
		s += fmt.Sprintf("-%02d", r.to)
	}
	if r.step != 1 {
		s += fmt.Sprintf("/%d", r.step)
	}
	return s
}

// nthRange selects occurrences of a weekday within its month. Negative
// values count from the end of the month.
type nthRange struct {
	from int
	to   int
}

type weekdayRange struct {
	from int
	to   int
	nth  []nthRange
}

func (r weekdayRange) matches(day time.Time) bool {
	wd := weekdayIndex(day.Weekday())
	if r.from <= r.to {
		if wd < r.from || wd > r.to {
			return false
		}
	} else if wd < r.from && wd > r.to {
		return false
	}

	if len(r.nth) == 0 {
		return true
	}

	first := midnight(day).AddDate(0, 0, 1-day.Day())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	fromStart := (day.Day()-1)/7 + 1
	fromEnd := -((daysInMonth-day.Day())/7 + 1)

	for _, n := range r.nth {
		for _, at := range []int{fromStart, fromEnd} {
			if n.from <= at && at <= n.to {
				return true
			}
		}
	}
	return false
}

func (r weekdayRange) String() string {
	s := weekdayNames[r.from]
	if r.to != r.from {
		s += "-" + weekdayNames[r.to]
	}
	if len(r.nth) > 0 {
		parts := make([]string, len(r.nth))
		for i, n := range r.nth {
			if n.from == n.to {
				parts[i] = fmt.Sprintf("%d", n.from)
			} else {
				parts[i] = fmt.Sprintf("%d-%d", n.from, n.to)
			}
		}
		s += "[" + strings.Join(parts, ",") + "]"
	}
	return s
}

type holidayKind int

const (
	publicHoliday holidayKind = iota
	schoolHoliday
)

func (h holidayKind) String() string {
	if h == schoolHoliday {
		return "SH"
	}
	return "PH"
}

// matches reports whether the day is a holiday. School holidays are not
// tracked by any calendar and never match.
func (h holidayKind) matches(day time.Time, holidays *cal.BusinessCalendar) bool {
	if h != publicHoliday || holidays == nil {
		return false
	}
	actual, observed, _ := holidays.IsHoliday(day)
	return actual || observed
}
