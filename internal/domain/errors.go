package domain

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from the header block.
// It is fatal: without the required columns no row can be interpreted.
type SchemaError struct {
	Missing []Field
}

func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return "schema: required columns missing: " + strings.Join(names, ", ")
}

// TimestampParseError reports a malformed timestamp on a data row.
// Row-level: the row is dropped and counted, the run continues.
type TimestampParseError struct {
	Line  int
	Value string
	Err   error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("line %d: bad timestamp %q: %v", e.Line, e.Value, e.Err)
}

func (e *TimestampParseError) Unwrap() error { return e.Err }

// MalformedFieldError reports a required numeric field that failed to
// parse. Row-level, same handling as TimestampParseError.
type MalformedFieldError struct {
	Line  int
	Field Field
	Value string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("line %d: bad %s value %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedFieldError) Unwrap() error { return e.Err }

// CoordinateRangeError reports converted coordinates outside geographic
// bounds. It signals bad raw data, not a code bug: the row is flagged,
// never silently corrected.
type CoordinateRangeError struct {
	Line      int
	Latitude  float64
	Longitude float64
}

func (e *CoordinateRangeError) Error() string {
	return fmt.Sprintf("line %d: coordinates out of range: lat=%.6f lon=%.6f", e.Line, e.Latitude, e.Longitude)
}
