// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// callIsOpenAtLunch calls is_open_at_lunch the way a C host does: with a NUL
// terminated copy of text in C memory that the caller frees afterwards.
func callIsOpenAtLunch(text string) bool {
	pattern := C.CString(text)
	defer C.free(unsafe.Pointer(pattern))
	return bool(is_open_at_lunch(pattern))
}

// callIsOpenAtLunchNull calls is_open_at_lunch with a NULL pointer.
func callIsOpenAtLunchNull() bool {
	return bool(is_open_at_lunch(nil))
}
