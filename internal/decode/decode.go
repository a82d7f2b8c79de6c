// Package decode translates coded and composite upstream attribute values
// into the friendly forms stored on the feature classes. The lookup tables
// here are the single source of truth: the SQL CASE expressions used by the
// set-based refresh inserts are rendered from these same tables.
package decode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidComponentIndex indicates a composite-id component request
// outside 1..4. A bad index is a programming error, not bad data.
var ErrInvalidComponentIndex = errors.New("composite id component index out of range")

// collectionMethods maps the well inventory's numeric collection-method
// codes to display text. Unmapped codes decode to nothing; decades of
// upstream data entry left stray codes that must not abort a refresh.
var collectionMethods = map[int]string{
	0: "Other",
	1: "GIS",
	2: "GPS",
	3: "Survey",
	4: "Digitize",
	5: "Digitize",
	6: "Report",
	7: "Survey",
	8: "GIS",
}

// locationMethods maps the raw location-method descriptions found across
// the regulatory tables to one of three categories. Matching is
// case-insensitive; keys are stored uppercased.
var locationMethods = map[string]string{
	"GPS1":             "GPS",
	"GPS2":             "GPS",
	"GPS3":             "GPS",
	"GPS4":             "GPS",
	"DGPS":             "GPS",
	"DIG":              "Digitize",
	"MAP":              "Digitize",
	"SCREEN DIGITIZED": "Digitize",
	"AERIAL":           "Other",
	"UNVERIFIED":       "Other",
}

// CollectionMethod decodes a numeric collection-method code. Unknown codes
// return nil, never an error.
func CollectionMethod(code int) *string {
	text, ok := collectionMethods[code]
	if !ok {
		return nil
	}
	return &text
}

// SimplifyLocationMethod reduces a raw location-method description to one
// of GPS, Other or Digitize. Unrecognized input returns nil, never an
// error.
func SimplifyLocationMethod(raw string) *string {
	text, ok := locationMethods[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return nil
	}
	return &text
}

// ParseCompositeID extracts one of the four dash-delimited components of a
// composite identifier (permit type, county FIPS, official number,
// sequence). Component 4 is everything after the third dash, so it may
// itself contain dashes. Components missing from a short value come back
// empty.
func ParseCompositeID(value string, component int) (string, error) {
	if component < 1 || component > 4 {
		return "", fmt.Errorf("%w: %d", ErrInvalidComponentIndex, component)
	}
	parts := strings.SplitN(value, "-", 4)
	if component > len(parts) {
		return "", nil
	}
	return parts[component-1], nil
}
