// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import "sort"

// span is a half open interval [start, end) of a single day with the state
// the covering rule assigns to it.
type span struct {
	start   dayOffset
	end     dayOffset
	state   State
	comment string
}

func (s span) covers(offset dayOffset) bool {
	return s.start <= offset && offset < s.end
}

type spanList []span

// find returns the span deciding the state at offset. Later spans take
// precedence over earlier ones.
func (list spanList) find(offset dayOffset) (span, bool) {
	index := -1
	for i, entry := range list {
		if entry.covers(offset) {
			index = i
		}
	}

	if index < 0 {
		return span{}, false
	}
	return list[index], true
}

// boundaries returns the sorted offsets within [0, oneDay) at which a span of
// the list starts or ends. shift is subtracted first, so the spans of the
// previous day can be passed with a shift of oneDay.
func (list spanList) boundaries(shift dayOffset) []dayOffset {
	var out []dayOffset
	add := func(o dayOffset) {
		o -= shift
		if o >= 0 && o < oneDay {
			out = append(out, o)
		}
	}

	for _, entry := range list {
		add(entry.start)
		add(entry.end)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})
	return out
}
