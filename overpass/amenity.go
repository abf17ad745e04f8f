// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package overpass

import (
	"fmt"
	"strings"
)

// Amenity is the kind of place a lunch location is.
type Amenity int

const (
	Restaurant Amenity = iota
	Cafe
	FastFood
	Pub
	Bar
	IceCream
	FoodCourt
)

// Tag values of the amenity key, in Amenity order.
var amenityTags = []string{
	"restaurant",
	"cafe",
	"fast_food",
	"pub",
	"bar",
	"ice_cream",
	"food_court",
}

// ParseAmenity maps an OSM amenity tag value to an Amenity.
func ParseAmenity(tag string) (Amenity, error) {
	for i, name := range amenityTags {
		if name == tag {
			return Amenity(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown amenity %q", ErrInvalidInput, tag)
}

func (a Amenity) String() string {
	if a < 0 || int(a) >= len(amenityTags) {
		return fmt.Sprintf("Amenity(%d)", int(a))
	}
	return amenityTags[a]
}

// amenityPattern is the Overpass regular expression matching every Amenity.
func amenityPattern() string {
	return "^(" + strings.Join(amenityTags, "|") + ")$"
}
