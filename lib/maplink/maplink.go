// Package maplink pulls coordinate pairs out of map hyperlinks, the kind
// embedded in pages as "https://maps.google.com/?q=37.1,-122.4" or
// ".../@37.1,-122.4,15z".
package maplink

import (
	"regexp"
	"strconv"
)

type Coordinates struct {
	Lat float64
	Lng float64
}

// matches "@<lat>,<lng>" and "q=<lat>,<lng>" where both numbers carry a
// fractional part. Integer coordinates and url-encoded commas are not
// supported.
var coordPattern = regexp.MustCompile(`[@q=](-?\d+\.\d+),(-?\d+\.\d+)`)

// Parse returns the first coordinate pair found in link. Absence of a
// match is a normal outcome, reported through ok, never an error.
func Parse(link string) (Coordinates, bool) {
	if link == "" {
		return Coordinates{}, false
	}

	groups := coordPattern.FindStringSubmatch(link)
	if groups == nil {
		return Coordinates{}, false
	}

	lat, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(groups[2], 64)
	if err != nil {
		return Coordinates{}, false
	}

	return Coordinates{Lat: lat, Lng: lng}, true
}
