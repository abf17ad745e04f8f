// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Command libopeninghours builds the shared library a host application loads
// to check opening hours:
//
//	go build -buildmode=c-shared -o libopening_hours_parser.so ./cmd/libopeninghours
//
// It exports a single C function:
//
//	bool is_open_at_lunch(const char *pattern);
//
// pattern is a NUL terminated UTF-8 string owned by the caller. It is copied
// and never retained or freed.
package main

/*
#include <stdbool.h>
*/
import "C"

import "github.com/vartfanskaviluncha/lunchhours/lunch"

//export is_open_at_lunch
func is_open_at_lunch(pattern *C.char) C.bool {
	if pattern == nil {
		return C.bool(false)
	}
	return C.bool(lunch.IsOpen(C.GoString(pattern)))
}

func main() {}
