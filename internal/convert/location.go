package convert

import "strings"

// zeroGeoLocation is the placeholder the source dataset uses for unknown positions.
const zeroGeoLocation = "(0.0, 0.0)"

// IsInvalidLocation reports whether a row's location is missing or a
// placeholder: no parsed pair, both values exactly zero, or a GeoLocation of
// "(0.0, 0.0)" once trimmed and stripped of double quotes.
func IsInvalidLocation(c Coordinate, geoLocation string) bool {
	if c.Point == nil {
		return true
	}
	if c.Point.Y() == 0 && c.Point.X() == 0 {
		return true
	}
	geo := strings.ReplaceAll(strings.TrimSpace(geoLocation), `"`, "")
	return geo == zeroGeoLocation
}
