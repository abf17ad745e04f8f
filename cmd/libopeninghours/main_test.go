// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOpenAtLunch(t *testing.T) {
	tests := []struct {
		description string
		pattern     string
		expected    bool
	}{
		{description: "always open", pattern: "24/7", expected: true},
		{description: "weekday office hours", pattern: "Mo-Fr 09:00-18:00", expected: true},
		{description: "afternoon only", pattern: "Mo-Fr 13:00-18:00", expected: false},
		{description: "closed", pattern: "off", expected: false},
		{description: "syntax error", pattern: "Mo-Fr 09:00-", expected: false},
		{description: "empty", pattern: "", expected: false},
		{description: "not utf-8", pattern: "24/7 \"caf\xe9\"", expected: false},
		{description: "truncated utf-8", pattern: "24/7\xc3", expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, callIsOpenAtLunch(tc.pattern))
		})
	}
}

func TestIsOpenAtLunchNull(t *testing.T) {
	assert.False(t, callIsOpenAtLunchNull())
}

func TestIsOpenAtLunchLeavesBufferIntact(t *testing.T) {
	pattern := "Mo-Fr 09:00-18:00"
	assert.Equal(t, callIsOpenAtLunch(pattern), callIsOpenAtLunch(pattern))
	assert.Equal(t, "Mo-Fr 09:00-18:00", pattern)
}
