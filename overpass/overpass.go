// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package overpass decodes Overpass API responses listing places to eat and
// selects the ones open at lunch.
package overpass

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ugorji/go/codec"

	"github.com/vartfanskaviluncha/lunchhours/lunch"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Tags holding a link for a location, most specific first.
var urlTags = []string{"website:menu", "website", "contact:website", "url"}

type Codec struct {
	handle codec.Handle
}

// New returns a Codec for the JSON the Overpass API produces.
func New() *Codec {
	return NewWithHandle(new(codec.JsonHandle))
}

// NewWithHandle returns a Codec using another encoding, such as msgpack for
// stored responses.
func NewWithHandle(h codec.Handle) *Codec {
	return &Codec{handle: h}
}

// Decode decodes and validates a response body.
func (c *Codec) Decode(in []byte) (*Response, error) {
	var r Response
	err := codec.NewDecoderBytes(in, c.handle).Decode(&r)
	if err != nil {
		return nil, err
	}

	err = r.Finalize()
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// Encode encodes locations for output.
func (c *Codec) Encode(locations []Location) ([]byte, error) {
	wire := make([]location, len(locations))
	for i, l := range locations {
		wire[i] = location{
			Name:      l.Name,
			Longitude: l.Coordinates.Longitude,
			Latitude:  l.Coordinates.Latitude,
			Amenity:   l.Amenity.String(),
		}
		if l.URL != nil {
			wire[i].URL = l.URL.String()
		}
	}

	var out []byte
	err := codec.NewEncoderBytes(&out, c.handle).Encode(wire)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type Response struct {
	Elements []Element `codec:"elements"`
}

// Finalize validates the nodes of the response.
func (r *Response) Finalize() error {
	for i := range r.Elements {
		err := r.Elements[i].Finalize()
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// OpenAtLunch returns the nodes of the response that the checker finds open
// at lunch. Nodes without opening hours are assumed open.
func (r *Response) OpenAtLunch(c lunch.Checker) []Location {
	var out []Location
	for _, e := range r.Elements {
		if !e.IsNode() {
			continue
		}
		hours, ok := e.Tags["opening_hours"]
		if ok && !c.IsOpen(hours) {
			continue
		}
		out = append(out, e.Location())
	}
	return out
}

type Element struct {
	Type      string            `codec:"type"`
	ID        int64             `codec:"id"`
	Latitude  Coordinate        `codec:"lat"`
	Longitude Coordinate        `codec:"lon"`
	Tags      map[string]string `codec:"tags"`

	amenity Amenity `codec:"-"`
}

func (e *Element) IsNode() bool {
	return e.Type == "node"
}

// Finalize checks that a node names a known amenity. Other element types are
// ignored.
func (e *Element) Finalize() error {
	if !e.IsNode() {
		return nil
	}

	if e.Tags["name"] == "" {
		return fmt.Errorf("%w: node %d has no 'name'", ErrInvalidInput, e.ID)
	}

	a, err := ParseAmenity(e.Tags["amenity"])
	if err != nil {
		return fmt.Errorf("node %d: %w", e.ID, err)
	}
	e.amenity = a

	return nil
}

// Location maps a finalized node to a Location.
func (e *Element) Location() Location {
	return Location{
		Name: e.Tags["name"],
		Coordinates: Coordinates{
			Longitude: float64(e.Longitude),
			Latitude:  float64(e.Latitude),
		},
		Amenity: e.amenity,
		URL:     e.url(),
	}
}

func (e *Element) url() *url.URL {
	for _, tag := range urlTags {
		raw, ok := e.Tags[tag]
		if !ok {
			continue
		}
		u, err := url.Parse(raw)
		if err == nil && u.IsAbs() && u.Host != "" {
			return u
		}
	}
	return nil
}

type Coordinates struct {
	Longitude float64
	Latitude  float64
}

// Location is a place to eat.
type Location struct {
	Name        string
	Coordinates Coordinates
	Amenity     Amenity
	URL         *url.URL
}

// location is the encoded form of a Location.
type location struct {
	Name      string  `codec:"name"`
	Longitude float64 `codec:"lon"`
	Latitude  float64 `codec:"lat"`
	Amenity   string  `codec:"amenity"`
	URL       string  `codec:"url,omitempty"`
}
