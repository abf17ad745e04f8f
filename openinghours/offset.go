// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package openinghours

import (
	"fmt"
	"time"
)

const (
	oneDay = 24 * 60 * 60

	// Time selectors may run into the following day, up to 48:00.
	maxOffset = 2 * oneDay
)

// dayOffset is a number of seconds since local midnight.
type dayOffset int

func toDayOffset(when time.Time) dayOffset {
	return dayOffset(
		when.Hour()*3600 +
			when.Minute()*60 +
			when.Second())
}

// ToTime returns the instant that is the offset past the midnight starting
// the day of relativeTo.
func (o dayOffset) ToTime(relativeTo time.Time) time.Time {
	y, m, d := relativeTo.Date()
	return time.Date(y, m, d, 0, 0, int(o), 0, relativeTo.Location())
}

func (o dayOffset) String() string {
	return fmt.Sprintf("%02d:%02d", int(o)/3600, (int(o)%3600)/60)
}

func midnight(when time.Time) time.Time {
	y, m, d := when.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, when.Location())
}
