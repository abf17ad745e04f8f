// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package overpass

import (
	"fmt"
	"strconv"

	"github.com/ugorji/go/codec"
)

// Coordinate is a latitude or longitude. Some Overpass mirrors send them as
// strings, so both numbers and numeric strings decode.
type Coordinate float64

func (c Coordinate) CodecEncodeSelf(e *codec.Encoder) {
	e.MustEncode(float64(c))
}

func (c *Coordinate) CodecDecodeSelf(d *codec.Decoder) {
	var v interface{}
	d.MustDecode(&v)

	f, err := toFloat(v)
	if err != nil {
		panic(err)
	}
	*c = Coordinate(f)
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		return parseCoordinate(n)
	case []byte:
		return parseCoordinate(string(n))
	}
	return 0, fmt.Errorf("%w: coordinate %v is not a number", ErrInvalidInput, v)
}

func parseCoordinate(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q is not a number", ErrInvalidInput, s)
	}
	return f, nil
}
