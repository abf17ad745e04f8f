// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package openinghours parses and evaluates the OpenStreetMap opening_hours
// language.
//
// Supported: rule sequences joined by ';', ',' and '||', 24/7, years,
// months and month days, ISO weeks, weekdays with occurrences in the month,
// PH and SH, time spans (including spans past midnight and open ends),
// the open/closed/off/unknown modifiers and comments. Variable times
// (sunrise, sunset, ...), easter and day offsets are reported with
// ErrUnsupported.
//
// All evaluation is in the location of the instant passed in.
package openinghours

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
)

// How far Until looks ahead for a change of state.
const searchDays = 366

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnsupported  = errors.New("unsupported opening_hours construct")
)

// State is what an expression says about an instant.
type State int

const (
	Closed State = iota
	Open
	Unknown
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Unknown:
		return "unknown"
	}
	return "closed"
}

// Option configures an OpeningHours at parse time.
type Option func(*OpeningHours)

// WithHolidays sets the calendar the PH selector consults. Without one, PH
// never matches.
func WithHolidays(c *cal.BusinessCalendar) Option {
	return func(oh *OpeningHours) {
		oh.holidays = c
	}
}

// OpeningHours is a parsed expression. It is immutable and safe for
// concurrent use.
type OpeningHours struct {
	expr     string
	rules    []rule
	holidays *cal.BusinessCalendar
}

// Parse parses an opening_hours expression.
func Parse(expr string, opts ...Option) (*OpeningHours, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}

	p := parser{toks: toks}
	rules, err := p.parse()
	if err != nil {
		return nil, err
	}

	for i := range rules {
		if err := rules[i].Finalize(); err != nil {
			return nil, err
		}
	}

	oh := OpeningHours{
		expr:  expr,
		rules: rules,
	}
	for _, opt := range opts {
		opt(&oh)
	}

	return &oh, nil
}

// dayRules holds the spans the rules give a single day.
type dayRules struct {
	primary  spanList
	fallback spanList
}

// day collects the spans of a single day. Fallback rules only contribute on
// days no earlier rule matched.
func (oh *OpeningHours) day(day time.Time) dayRules {
	var out dayRules

	matched := false
	group := &out.primary
	for i := range oh.rules {
		r := &oh.rules[i]

		switch r.separator {
		case sepNormal:
			group = &out.primary
		case sepFallback:
			group = &out.fallback
		}

		if group == &out.fallback && matched {
			continue
		}
		if !r.matches(day, oh.holidays) {
			continue
		}
		if group == &out.primary {
			matched = true
		}

		if r.separator == sepNormal {
			*group = r.spans()
		} else {
			*group = append(*group, r.spans()...)
		}
	}

	return out
}

func (oh *OpeningHours) lookup(when time.Time) (span, bool) {
	day := midnight(when)
	offset := toDayOffset(when)

	today := oh.day(day)
	yesterday := oh.day(day.AddDate(0, 0, -1))

	lists := []struct {
		spans  spanList
		offset dayOffset
	}{
		{today.primary, offset},
		{yesterday.primary, offset + oneDay},
		{today.fallback, offset},
		{yesterday.fallback, offset + oneDay},
	}

	for _, l := range lists {
		if s, ok := l.spans.find(l.offset); ok {
			return s, true
		}
	}
	return span{}, false
}

// State returns the state at when. Instants no rule covers are closed.
func (oh *OpeningHours) State(when time.Time) State {
	s, ok := oh.lookup(when)
	if !ok {
		return Closed
	}
	return s.state
}

// IsOpen reports whether the state at when is Open.
func (oh *OpeningHours) IsOpen(when time.Time) bool {
	return oh.State(when) == Open
}

// Comment returns the comment of the rule deciding the state at when.
func (oh *OpeningHours) Comment(when time.Time) string {
	s, _ := oh.lookup(when)
	return s.comment
}

// Until returns the next instant after when at which the state changes, or
// the zero time if it does not change within a year.
func (oh *OpeningHours) Until(when time.Time) time.Time {
	current := oh.State(when)
	first := midnight(when)

	for i := 0; i <= searchDays; i++ {
		day := first.AddDate(0, 0, i)
		today := oh.day(day)
		yesterday := oh.day(day.AddDate(0, 0, -1))

		offsets := []dayOffset{0}
		offsets = append(offsets, today.primary.boundaries(0)...)
		offsets = append(offsets, today.fallback.boundaries(0)...)
		offsets = append(offsets, yesterday.primary.boundaries(oneDay)...)
		offsets = append(offsets, yesterday.fallback.boundaries(oneDay)...)
		sort.Slice(offsets, func(i, j int) bool {
			return offsets[i] < offsets[j]
		})

		for _, o := range offsets {
			at := o.ToTime(day)
			if !at.After(when) {
				continue
			}
			if oh.State(at) != current {
				return at
			}
		}
	}

	return time.Time{}
}

func (oh *OpeningHours) String() string {
	var buf strings.Builder

	fmt.Fprintln(&buf, "opening_hours {")
	fmt.Fprintf(&buf, "\texpression: %q\n", oh.expr)
	if oh.holidays == nil {
		fmt.Fprintln(&buf, "\tholidays:   none")
	} else {
		fmt.Fprintln(&buf, "\tholidays:   calendar")
	}

	fmt.Fprintln(&buf, "\trules:")
	for i, r := range oh.rules {
		fmt.Fprintf(&buf, "\t\t[%d] %s: %s\n", i, r.separator, r)
	}
	fmt.Fprintln(&buf, "}")

	return buf.String()
}
