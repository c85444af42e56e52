package convert

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// ExpectedFields is the exact header the input CSV must carry, in order.
var ExpectedFields = []string{
	"name",
	"id",
	"nametype",
	"recclass",
	"mass (g)",
	"fall",
	"year",
	"reclat",
	"reclong",
	"GeoLocation",
}

// Column indexes into a row, matching ExpectedFields.
const (
	colName = iota
	colID
	colNametype
	colRecclass
	colMass
	colFall
	colYear
	colReclat
	colReclong
	colGeoLocation
)

// FatalError aborts a whole run. Line is the 1-based CSV line (the header is
// line 1) or 0 when the failure is not tied to a line.
type FatalError struct {
	Line int
	Msg  string
}

func (e *FatalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// ValidateHeader fails unless header equals ExpectedFields exactly.
func ValidateHeader(header []string) error {
	if slices.Equal(header, ExpectedFields) {
		return nil
	}
	return &FatalError{
		Line: 1,
		Msg:  fmt.Sprintf("csv header does not match expected format: expected %q, found %q", ExpectedFields, header),
	}
}

// ValidateRow fails when the row is missing any expected field. Empty values
// are fine; extra trailing fields are ignored.
func ValidateRow(line int, row []string) error {
	if len(row) < len(ExpectedFields) {
		return &FatalError{
			Line: line,
			Msg:  fmt.Sprintf("invalid row structure: missing or malformed fields (got %d of %d)", len(row), len(ExpectedFields)),
		}
	}
	return nil
}

// ValidateEncoding fails when any field of the row is not valid UTF-8.
func ValidateEncoding(line int, row []string) error {
	for i, v := range row {
		if utf8.ValidString(v) {
			continue
		}
		field := fmt.Sprintf("field %d", i+1)
		if i < len(ExpectedFields) {
			field = ExpectedFields[i]
		}
		return &FatalError{Line: line, Msg: fmt.Sprintf("invalid utf-8 in %s", field)}
	}
	return nil
}

// ValidateID fails unless id is a non-empty run of ASCII digits.
func ValidateID(line int, id string) error {
	if !isDigits(id) {
		return &FatalError{Line: line, Msg: fmt.Sprintf("invalid id %q", id)}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
