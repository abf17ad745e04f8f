// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package overpass

import (
	"fmt"
	"regexp"
	"strings"
)

// The OSM relation of Sweden. Searched areas are limited to it.
const swedenRelation = 52822

var quote = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Query returns the Overpass QL query listing the named places to eat
// within the administrative boundaries whose name matches area. The area is
// matched literally and case insensitively.
func Query(area string) string {
	name := quote.Replace(regexp.QuoteMeta(area))

	return fmt.Sprintf(`[out:json][timeout:25];

relation(%d) -> .sweden;
.sweden map_to_area -> .swedenArea;

relation["boundary"]
    ["name"~"%s",i]
        -> .boundaries;

.boundaries map_to_area -> .searchArea;

node[amenity~"%s"]
    [name]
    (area.searchArea)
    (area.swedenArea);

out center;
`, swedenRelation, name, amenityPattern())
}
