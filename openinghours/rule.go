// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

type separator int

const (
	// sepNormal starts a rule that replaces the earlier rules on the days
	// it selects.
	sepNormal separator = iota

	// sepAdditional starts a rule that adds to the earlier rules.
	sepAdditional

	// sepFallback starts a rule applied only on days no earlier rule matched.
	sepFallback
)

func (s separator) String() string {
	switch s {
	case sepAdditional:
		return "additional"
	case sepFallback:
		return "fallback"
	}
	return "normal"
}

type timeRange struct {
	start   dayOffset
	end     dayOffset
	openEnd bool
}

func (t timeRange) String() string {
	var s string
	if t.end > t.start {
		s = t.start.String() + "-" + t.end.String()
	} else {
		s = t.start.String()
	}
	if t.openEnd {
		s += "+"
	}
	return s
}

type rule struct {
	separator separator
	always    bool

	years     []yearRange
	monthdays []monthdayRange
	weeks     []weekRange
	weekdays  []weekdayRange
	holidays  []holidayKind
	times     []timeRange

	state    State
	hasState bool
	comment  string
}

// Finalize validates the parsed selectors and settles the state the rule
// assigns to the spans it covers.
func (r *rule) Finalize() error {
	for _, y := range r.years {
		if y.from > y.to {
			return fmt.Errorf("%w: year range %s is reversed", ErrInvalidInput, y)
		}
	}

	for _, md := range r.monthdays {
		if md.fromDay > daysInMonth(md.fromMonth) || md.toDay > daysInMonth(md.toMonth) {
			return fmt.Errorf("%w: %s is not a valid date range", ErrInvalidInput, md)
		}
	}

	for _, w := range r.weeks {
		if w.from > w.to {
			return fmt.Errorf("%w: %s is reversed", ErrInvalidInput, w)
		}
		if w.step < 1 {
			return fmt.Errorf("%w: %s has no step", ErrInvalidInput, w)
		}
	}

	for _, wd := range r.weekdays {
		for _, n := range wd.nth {
			if n.from > n.to {
				return fmt.Errorf("%w: %s has a reversed occurrence range", ErrInvalidInput, wd)
			}
		}
	}

	if !r.hasState {
		r.state = Open
		if len(r.times) == 0 && r.comment != "" {
			r.state = Unknown
		}
	}

	return nil
}

// daysInMonth is the longest the month can be in any year.
func daysInMonth(m time.Month) int {
	return time.Date(2024, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (r *rule) matches(day time.Time, holidays *cal.BusinessCalendar) bool {
	if len(r.years) > 0 && !anyMatch(r.years, day) {
		return false
	}
	if len(r.monthdays) > 0 && !anyMatch(r.monthdays, day) {
		return false
	}
	if len(r.weeks) > 0 && !anyMatch(r.weeks, day) {
		return false
	}

	if len(r.weekdays) == 0 && len(r.holidays) == 0 {
		return true
	}
	for _, h := range r.holidays {
		if h.matches(day, holidays) {
			return true
		}
	}
	return anyMatch(r.weekdays, day)
}

type dateMatcher interface {
	matches(day time.Time) bool
}

func anyMatch[T dateMatcher](list []T, day time.Time) bool {
	for _, m := range list {
		if m.matches(day) {
			return true
		}
	}
	return false
}

// spans returns the intervals of the selected day the rule decides. They may
// extend past midnight into the next day.
func (r *rule) spans() spanList {
	if len(r.times) == 0 {
		return spanList{{start: 0, end: oneDay, state: r.state, comment: r.comment}}
	}

	var list spanList
	for _, t := range r.times {
		if t.end > t.start {
			list = append(list, span{start: t.start, end: t.end, state: r.state, comment: r.comment})
		}

		if t.openEnd {
			from := t.end
			if from < t.start {
				from = t.start
			}
			state := Unknown
			if r.state == Closed {
				state = Closed
			}
			if from < oneDay {
				list = append(list, span{start: from, end: oneDay, state: state, comment: r.comment})
			}
		}
	}
	return list
}

func (r rule) String() string {
	var parts []string
	if r.always {
		parts = append(parts, "24/7")
	}
	parts = appendJoined(parts, r.years)
	parts = appendJoined(parts, r.monthdays)
	parts = appendJoined(parts, r.weeks)

	var days []string
	for _, wd := range r.weekdays {
		days = append(days, wd.String())
	}
	for _, h := range r.holidays {
		days = append(days, h.String())
	}
	if len(days) > 0 {
		parts = append(parts, strings.Join(days, ","))
	}

	parts = appendJoined(parts, r.times)
	parts = append(parts, r.state.String())
	if r.comment != "" {
		parts = append(parts, fmt.Sprintf("%q", r.comment))
	}
	return strings.Join(parts, " ")
}

func appendJoined[T fmt.Stringer](parts []string, list []T) []string {
	if len(list) == 0 {
		return parts
	}
	s := make([]string, len(list))
	for i, item := range list {
		s[i] = item.String()
	}
	return append(parts, strings.Join(s, ","))
}
