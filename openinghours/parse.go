// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import (
	"fmt"
	"strconv"
	"strings"
)

var modifiers = map[string]State{
	"open":    Open,
	"closed":  Closed,
	"off":     Closed,
	"unknown": Unknown,
}

// Valid in the opening_hours language, but not evaluated here.
var unsupportedWords = map[string]bool{
	"sunrise": true,
	"sunset":  true,
	"dawn":    true,
	"dusk":    true,
	"easter":  true,
	"day":     true,
	"days":    true,
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) token {
	i := p.pos + n
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) accept(kind tokenKind) bool {
	if p.peek().kind == kind {
		p.next()
		return true
	}
	return false
}

func unexpected(t token) error {
	if t.kind == tokWord && unsupportedWords[strings.ToLower(t.text)] {
		return fmt.Errorf("%w: %q at %d", ErrUnsupported, t.text, t.pos)
	}
	return fmt.Errorf("%w: unexpected %s", ErrInvalidInput, t)
}

func isWord(t token, word string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, word)
}

func isWeekday(t token) bool {
	if t.kind != tokWord {
		return false
	}
	_, ok := lookupWeekday(t.text)
	return ok
}

func isHoliday(t token) bool {
	return isWord(t, "PH") || isWord(t, "SH")
}

func isMonth(t token) bool {
	if t.kind != tokWord {
		return false
	}
	_, ok := lookupMonth(t.text)
	return ok
}

func isYear(t token) bool {
	return t.kind == tokNumber && len(t.text) == 4
}

func isDayNumber(t token) bool {
	return t.kind == tokNumber && len(t.text) <= 2
}

// number consumes a number token within [lo, hi].
func (p *parser) number(lo, hi int) (int, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, unexpected(t)
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, t, err)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s is outside %d-%d", ErrInvalidInput, t, lo, hi)
	}
	return n, nil
}

func (p *parser) parse() ([]rule, error) {
	var rules []rule

	sep := sepNormal
	for {
		r, err := p.rule()
		if err != nil {
			return nil, err
		}
		r.separator = sep
		rules = append(rules, r)

		t := p.next()
		switch t.kind {
		case tokEOF:
			return rules, nil
		case tokSemicolon:
			// A trailing ';' is tolerated.
			if p.peek().kind == tokEOF {
				return rules, nil
			}
			sep = sepNormal
		case tokComma:
			sep = sepAdditional
		case tokFallback:
			sep = sepFallback
		default:
			return nil, unexpected(t)
		}
	}
}

func (p *parser) rule() (rule, error) {
	var r rule
	start := p.pos

	if p.peek().kind == tokNumber && p.peek().text == "24" &&
		p.peekAt(1).kind == tokSlash &&
		p.peekAt(2).kind == tokNumber && p.peekAt(2).text == "7" {
		p.pos += 3
		r.always = true
	} else if err := p.selectors(&r); err != nil {
		return r, err
	}

	if t := p.peek(); t.kind == tokWord {
		state, ok := modifiers[strings.ToLower(t.text)]
		if !ok {
			return r, unexpected(t)
		}
		p.next()
		r.state = state
		r.hasState = true
	}

	if t := p.peek(); t.kind == tokComment {
		p.next()
		r.comment = t.text
	}

	if p.pos == start {
		return r, fmt.Errorf("%w: expected a rule, found %s", ErrInvalidInput, p.peek())
	}
	return r, nil
}

func (p *parser) selectors(r *rule) error {
	for done := false; !done; {
		var err error
		switch t := p.peek(); {
		case isYear(t):
			err = p.years(r)
		case isMonth(t):
			err = p.monthdays(r)
		case isWord(t, "week"):
			p.next()
			err = p.weeks(r)
		default:
			done = true
		}
		if err != nil {
			return err
		}
	}

	if len(r.years) > 0 || len(r.monthdays) > 0 || len(r.weeks) > 0 {
		// An optional ':' closes the wide range selectors.
		p.accept(tokColon)
	}

	if err := p.weekdays(r); err != nil {
		return err
	}
	return p.times(r)
}

func (p *parser) years(r *rule) error {
	for {
		from, err := p.number(1900, 9999)
		if err != nil {
			return err
		}
		y := yearRange{from: from, to: from}

		if p.peek().kind == tokDash && isYear(p.peekAt(1)) {
			p.next()
			if y.to, err = p.number(1900, 9999); err != nil {
				return err
			}
		}
		r.years = append(r.years, y)

		if p.peek().kind != tokComma || !isYear(p.peekAt(1)) {
			return nil
		}
		p.next()
	}
}

func (p *parser) monthdays(r *rule) error {
	for {
		m, _ := lookupMonth(p.next().text)
		md := monthdayRange{fromMonth: m, toMonth: m}

		var err error
		if isDayNumber(p.peek()) {
			if md.fromDay, err = p.number(1, 31); err != nil {
				return err
			}
			md.toDay = md.fromDay
		}

		if p.peek().kind == tokDash {
			switch t := p.peekAt(1); {
			case isMonth(t):
				p.next()
				md.toMonth, _ = lookupMonth(p.next().text)
				md.toDay = 0
				if isDayNumber(p.peek()) {
					if md.toDay, err = p.number(1, 31); err != nil {
						return err
					}
				}
			case isDayNumber(t) && md.fromDay != 0:
				p.next()
				if md.toDay, err = p.number(1, 31); err != nil {
					return err
				}
			}
		}
		r.monthdays = append(r.monthdays, md)

		if p.peek().kind != tokComma || !isMonth(p.peekAt(1)) {
			return nil
		}
		p.next()
	}
}

func (p *parser) weeks(r *rule) error {
	for {
		from, err := p.number(1, 53)
		if err != nil {
			return err
		}
		w := weekRange{from: from, to: from, step: 1}

		if p.accept(tokDash) {
			if w.to, err = p.number(1, 53); err != nil {
				return err
			}
		}
		if p.accept(tokSlash) {
			if w.step, err = p.number(1, 53); err != nil {
				return err
			}
		}
		r.weeks = append(r.weeks, w)

		if p.peek().kind != tokComma || p.peekAt(1).kind != tokNumber {
			return nil
		}
		p.next()
	}
}

func (p *parser) weekdays(r *rule) error {
	for {
		t := p.peek()
		switch {
		case isHoliday(t):
			p.next()
			if isWord(t, "SH") {
				r.holidays = append(r.holidays, schoolHoliday)
			} else {
				r.holidays = append(r.holidays, publicHoliday)
			}

		case isWeekday(t):
			p.next()
			from, _ := lookupWeekday(t.text)
			wd := weekdayRange{from: from, to: from}

			if p.accept(tokDash) {
				end := p.next()
				if !isWeekday(end) {
					return unexpected(end)
				}
				wd.to, _ = lookupWeekday(end.text)
			}
			if p.peek().kind == tokLBracket {
				nth, err := p.nth()
				if err != nil {
					return err
				}
				wd.nth = nth
			}
			r.weekdays = append(r.weekdays, wd)

		default:
			return nil
		}

		if next := p.peekAt(1); p.peek().kind != tokComma || !(isWeekday(next) || isHoliday(next)) {
			return nil
		}
		p.next()
	}
}

func (p *parser) nth() ([]nthRange, error) {
	p.next()

	var list []nthRange
	for {
		negative := p.accept(tokDash)
		n, err := p.number(1, 5)
		if err != nil {
			return nil, err
		}
		if negative {
			n = -n
		}
		item := nthRange{from: n, to: n}

		if !negative && p.peek().kind == tokDash && p.peekAt(1).kind == tokNumber {
			p.next()
			if item.to, err = p.number(1, 5); err != nil {
				return nil, err
			}
		}
		list = append(list, item)

		if !p.accept(tokComma) {
			break
		}
	}

	if t := p.next(); t.kind != tokRBracket {
		return nil, unexpected(t)
	}
	return list, nil
}

func (p *parser) times(r *rule) error {
	for p.peek().kind == tokTime {
		start, err := p.clock(oneDay)
		if err != nil {
			return err
		}
		tr := timeRange{start: start, end: start}

		switch {
		case p.accept(tokDash):
			if p.peek().kind != tokTime {
				return unexpected(p.peek())
			}
			if tr.end, err = p.clock(maxOffset); err != nil {
				return err
			}
			if tr.end <= tr.start {
				tr.end += oneDay
			}
			if tr.end > maxOffset {
				return fmt.Errorf("%w: %s ends after 48:00", ErrInvalidInput, tr)
			}
			tr.openEnd = p.accept(tokPlus)

		case p.accept(tokPlus):
			tr.openEnd = true

		default:
			return fmt.Errorf("%w: points in time at %d", ErrUnsupported, p.peek().pos)
		}

		if p.peek().kind == tokSlash {
			return fmt.Errorf("%w: repeating time spans at %d", ErrUnsupported, p.peek().pos)
		}
		r.times = append(r.times, tr)

		if p.peek().kind != tokComma || p.peekAt(1).kind != tokTime {
			return nil
		}
		p.next()
	}
	return nil
}

// clock consumes an HH:MM token no later than limit.
func (p *parser) clock(limit dayOffset) (dayOffset, error) {
	t := p.next()
	hh, mm, _ := strings.Cut(t.text, ":")

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, t, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidInput, t, err)
	}
	if len(hh) > 2 || minute > 59 {
		return 0, fmt.Errorf("%w: %s is not a time", ErrInvalidInput, t)
	}

	o := dayOffset(hour*3600 + minute*60)
	if o > limit {
		return 0, fmt.Errorf("%w: %s is later than %s", ErrInvalidInput, t, limit)
	}
	return o, nil
}
