package convert

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
)

// wgs84 is the SRID attached to parsed points.
const wgs84 = 4326

// Coordinate is a row's location: the trimmed source text, which is what gets
// exported, plus the parsed point when both values are usable.
type Coordinate struct {
	Lat string
	Lon string

	// Point is nil when either value is empty or unparseable. X is the
	// longitude, Y the latitude.
	Point *geom.Point
}

// Valid reports whether a numeric pair was parsed.
func (c Coordinate) Valid() bool {
	return c.Point != nil
}

// ParseCoordinate trims the raw reclat/reclong values and parses them as a
// pair. A failure on either side leaves the whole pair absent. Never errors.
func ParseCoordinate(rawLat, rawLon string) Coordinate {
	c := Coordinate{
		Lat: strings.TrimSpace(rawLat),
		Lon: strings.TrimSpace(rawLon),
	}
	if c.Lat == "" || c.Lon == "" {
		return c
	}

	lat, ok := parseFloat(c.Lat)
	if !ok {
		return c
	}
	lon, ok := parseFloat(c.Lon)
	if !ok {
		return c
	}

	c.Point = geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(wgs84)
	return c
}

// parseFloat parses a decimal float the way the dataset's own tooling does:
// nan and inf (signed or not) are numbers, out-of-range values become ±Inf,
// digits may be grouped with single underscores, and hex floats are rejected.
func parseFloat(s string) (float64, bool) {
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}

	unsigned := s
	if unsigned != "" && (unsigned[0] == '+' || unsigned[0] == '-') {
		unsigned = unsigned[1:]
	}
	if strings.EqualFold(unsigned, "nan") {
		return math.NaN(), true
	}
	if strings.Contains(unsigned, "_") {
		if !underscoresBetweenDigits(unsigned) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

// underscoresBetweenDigits reports whether every underscore in s sits between
// two ASCII digits.
func underscoresBetweenDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
