package domain

import (
	"slices"
	"time"
)

// RawRecord is one data row of the source file with raw string values,
// extracted by column position according to the detected Schema.
// Optional fields are empty strings when the column is absent.
type RawRecord struct {
	Line int // 1-based line number in the source file, for error context

	Timestamp string
	Counter   string
	DepthCm   string
	BattVolts string

	LatDeg string
	LatMin string
	LonDeg string
	LonMin string

	FixQuality string
	Satellites string
	HDOP       string
	AltitudeM  string
	DepthVolts string

	// Redundant precomputed decimal coordinates emitted by some
	// firmware. Retained for reference; the degree/minute pair above
	// is authoritative.
	LatDecimal string
	LonDecimal string
}

// CleanRecord is the validated, typed form of one measurement. Records
// are treated as immutable: stages that annotate a record return a new
// value via WithFlag rather than mutating in place.
type CleanRecord struct {
	Timestamp  time.Time
	Counter    int64
	Latitude   float64 // decimal degrees, signed
	Longitude  float64 // decimal degrees, signed
	DepthM     float64
	BattVolts  float64
	FixQuality int
	Satellites int
	HDOP       float64
	AltitudeM  float64
	DepthVolts float64

	// Projected geometry in the target CRS, meters.
	Easting  float64
	Northing float64

	// Quality rule names attached to this record, in evaluation order.
	Flags []string

	// Raw sexagesimal parts kept between normalization and coordinate
	// consolidation.
	latDeg, latMin, lonDeg, lonMin float64
}

// WithFlag returns a copy of the record with the named rule appended.
// The receiver is left untouched.
func (r CleanRecord) WithFlag(rule Rule) CleanRecord {
	flags := make([]string, len(r.Flags), len(r.Flags)+1)
	copy(flags, r.Flags)
	r.Flags = append(flags, string(rule))
	return r
}

// Flagged reports whether the record carries the named rule.
func (r CleanRecord) Flagged(rule Rule) bool {
	return slices.Contains(r.Flags, string(rule))
}
