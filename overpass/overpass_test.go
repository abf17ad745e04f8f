// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package overpass

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ugorji/go/codec"

	"github.com/vartfanskaviluncha/lunchhours/lunch"
)

const body = `{
  "version": 0.6,
  "generator": "Overpass API",
  "elements": [
    {
      "type": "node",
      "id": 1,
      "lat": 59.3293,
      "lon": 18.0686,
      "tags": {
        "name": "Lunchkrogen",
        "amenity": "restaurant",
        "opening_hours": "Mo-Fr 11:00-14:00",
        "website": "https://lunchkrogen.example",
        "website:menu": "https://lunchkrogen.example/meny"
      }
    },
    {
      "type": "node",
      "id": 2,
      "lat": 59.3300,
      "lon": 18.0700,
      "tags": {
        "name": "Nattbaren",
        "amenity": "bar",
        "opening_hours": "Mo-Sa 18:00-01:00"
      }
    },
    {
      "type": "node",
      "id": 3,
      "lat": 59.3310,
      "lon": 18.0710,
      "tags": {
        "name": "Kaffestugan",
        "amenity": "cafe",
        "url": "not a url",
        "contact:website": "https://kaffestugan.example"
      }
    },
    {
      "type": "node",
      "id": 4,
      "lat": 59.3320,
      "lon": 18.0720,
      "tags": {
        "name": "Glassbaren",
        "amenity": "ice_cream",
        "opening_hours": "Mo-Fr sunrise-sunset"
      }
    },
    {
      "type": "way",
      "id": 5,
      "center": {"lat": 59.3330, "lon": 18.0730}
    }
  ]
}`

// Tuesday 2026-10-20.
var tuesday = lunch.Checker{
	Now: func() time.Time { return time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC) },
}

func TestDecode(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	r, err := New().Decode([]byte(body))
	require.NoError(err)
	require.Len(r.Elements, 5)

	assert.True(r.Elements[0].IsNode())
	assert.False(r.Elements[4].IsNode())
	assert.Equal(int64(2), r.Elements[1].ID)
	assert.Equal("Mo-Sa 18:00-01:00", r.Elements[1].Tags["opening_hours"])

	l := r.Elements[0].Location()
	assert.Equal("Lunchkrogen", l.Name)
	assert.Equal(Restaurant, l.Amenity)
	assert.InDelta(59.3293, l.Coordinates.Latitude, 1e-9)
	assert.InDelta(18.0686, l.Coordinates.Longitude, 1e-9)
	require.NotNil(l.URL)
	assert.Equal("https://lunchkrogen.example/meny", l.URL.String())
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		description string
		in          string
	}{
		{
			description: "unknown amenity",
			in:          `{"elements":[{"type":"node","id":1,"tags":{"name":"x","amenity":"nightclub"}}]}`,
		},
		{
			description: "missing amenity",
			in:          `{"elements":[{"type":"node","id":1,"tags":{"name":"x"}}]}`,
		},
		{
			description: "missing name",
			in:          `{"elements":[{"type":"node","id":1,"tags":{"amenity":"cafe"}}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			r, err := New().Decode([]byte(tc.in))
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, r)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := New().Decode([]byte(`{"elements": [`))
	assert.Error(t, err)
}

func TestDecodeCoordinates(t *testing.T) {
	tests := []struct {
		description string
		lat         string
		lon         string
		expectedLat float64
		expectedLon float64
		expectedErr error
	}{
		{
			description: "numbers",
			lat:         `59.3293`,
			lon:         `18.0686`,
			expectedLat: 59.3293,
			expectedLon: 18.0686,
		}, {
			description: "strings",
			lat:         `"59.33"`,
			lon:         `"18.07"`,
			expectedLat: 59.33,
			expectedLon: 18.07,
		}, {
			description: "integers",
			lat:         `59`,
			lon:         `-18`,
			expectedLat: 59,
			expectedLon: -18,
		}, {
			description: "not a number",
			lat:         `"north"`,
			lon:         `18.07`,
			expectedErr: ErrInvalidInput,
		}, {
			description: "wrong type",
			lat:         `true`,
			lon:         `18.07`,
			expectedErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			in := `{"elements":[{"type":"node","id":1,"lat":` + tc.lat + `,"lon":` + tc.lon +
				`,"tags":{"name":"x","amenity":"cafe"}}]}`

			r, err := New().Decode([]byte(in))
			if tc.expectedErr != nil {
				assert.ErrorContains(t, err, tc.expectedErr.Error())
				return
			}
			require.NoError(t, err)

			l := r.Elements[0].Location()
			assert.InDelta(t, tc.expectedLat, l.Coordinates.Latitude, 1e-9)
			assert.InDelta(t, tc.expectedLon, l.Coordinates.Longitude, 1e-9)
		})
	}
}

func TestOpenAtLunch(t *testing.T) {
	assert := assert.New(t)

	r, err := New().Decode([]byte(body))
	require.NoError(t, err)

	open := r.OpenAtLunch(tuesday)
	names := make([]string, len(open))
	for i, l := range open {
		names[i] = l.Name
	}
	assert.Equal([]string{"Lunchkrogen", "Kaffestugan"}, names)

	require.NotNil(t, open[1].URL)
	assert.Equal("https://kaffestugan.example", open[1].URL.String())
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	r, err := New().Decode([]byte(body))
	require.NoError(t, err)

	out, err := New().Encode(r.OpenAtLunch(tuesday))
	require.NoError(t, err)

	s := string(out)
	assert.Contains(s, `"name":"Lunchkrogen"`)
	assert.Contains(s, `"amenity":"restaurant"`)
	assert.Contains(s, `"url":"https://lunchkrogen.example/meny"`)
	assert.Contains(s, `"amenity":"cafe"`)
	assert.NotContains(s, "Nattbaren")
}

func TestMsgpack(t *testing.T) {
	h := new(codec.MsgpackHandle)

	in := Response{
		Elements: []Element{
			{
				Type:      "node",
				ID:        7,
				Latitude:  57.7089,
				Longitude: 11.9746,
				Tags:      map[string]string{"name": "Pizzerian", "amenity": "fast_food"},
			},
		},
	}
	var raw []byte
	require.NoError(t, codec.NewEncoderBytes(&raw, h).Encode(in))

	r, err := NewWithHandle(h).Decode(raw)
	require.NoError(t, err)
	require.Len(t, r.Elements, 1)
	l := r.Elements[0].Location()
	assert.Equal(t, FastFood, l.Amenity)
	assert.InDelta(t, 57.7089, l.Coordinates.Latitude, 1e-9)
	assert.InDelta(t, 11.9746, l.Coordinates.Longitude, 1e-9)
}

func TestAmenity(t *testing.T) {
	for i, tag := range amenityTags {
		a, err := ParseAmenity(tag)
		require.NoError(t, err)
		assert.Equal(t, Amenity(i), a)
		assert.Equal(t, tag, a.String())
	}

	assert.Equal(t, "Amenity(42)", Amenity(42).String())
}

func TestQuery(t *testing.T) {
	q := Query(`Göteborg "Stad".*`)

	assert.True(t, strings.HasPrefix(q, "[out:json][timeout:25];"))
	assert.Contains(t, q, "relation(52822) -> .sweden;")
	assert.Contains(t, q, `["name"~"Göteborg \"Stad\"\\.\\*",i]`)
	assert.Contains(t, q, `node[amenity~"^(restaurant|cafe|fast_food|pub|bar|ice_cream|food_court)$"]`)
	assert.True(t, strings.HasSuffix(q, "out center;\n"))
}
