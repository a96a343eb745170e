package domain

import (
	"strconv"
	"time"
)

// timestampLayout accepts logger timestamps with or without fractional
// seconds, e.g. "2021-03-21 18:54:02.75" and "2021-03-21 18:54:02".
const timestampLayout = "2006-01-02 15:04:05.999999999"

// Calibration is the optional linear depth calibration applied after
// the fixed centimeter-to-meter conversion:
//
//	depth_m = raw_cm/100 * Scale + OffsetM
type Calibration struct {
	Scale   float64
	OffsetM float64
}

// DefaultCalibration is the identity calibration.
var DefaultCalibration = Calibration{Scale: 1}

// Normalizer converts RawRecords into CleanRecords one at a time, in
// file order. It tracks the previous counter to flag duplicate or
// out-of-order clicks; create a fresh Normalizer per file.
type Normalizer struct {
	cal         Calibration
	prevCounter int64
	havePrev    bool
}

// NewNormalizer creates a Normalizer with the given depth calibration.
func NewNormalizer(cal Calibration) *Normalizer {
	if cal.Scale == 0 {
		cal.Scale = 1
	}
	return &Normalizer{cal: cal}
}

// Normalize parses and validates one raw row. Row-level failures return
// *TimestampParseError or *MalformedFieldError; the caller drops such
// rows and counts them rather than aborting the run.
//
// A counter that repeats or decreases relative to the previous
// normalized row is flagged RuleDuplicateClick and kept: downstream
// users decide what to do with duplicate clicks.
func (n *Normalizer) Normalize(raw RawRecord) (CleanRecord, error) {
	ts, err := time.Parse(timestampLayout, raw.Timestamp)
	if err != nil {
		return CleanRecord{}, &TimestampParseError{Line: raw.Line, Value: raw.Timestamp, Err: err}
	}

	counter, err := strconv.ParseInt(raw.Counter, 10, 64)
	if err != nil {
		return CleanRecord{}, &MalformedFieldError{Line: raw.Line, Field: FieldCounter, Value: raw.Counter, Err: err}
	}

	depthCm, err := parseRequiredFloat(raw, FieldDepthCm, raw.DepthCm)
	if err != nil {
		return CleanRecord{}, err
	}
	latDeg, err := parseRequiredFloat(raw, FieldLatDeg, raw.LatDeg)
	if err != nil {
		return CleanRecord{}, err
	}
	latMin, err := parseRequiredFloat(raw, FieldLatMin, raw.LatMin)
	if err != nil {
		return CleanRecord{}, err
	}
	lonDeg, err := parseRequiredFloat(raw, FieldLonDeg, raw.LonDeg)
	if err != nil {
		return CleanRecord{}, err
	}
	lonMin, err := parseRequiredFloat(raw, FieldLonMin, raw.LonMin)
	if err != nil {
		return CleanRecord{}, err
	}

	rec := CleanRecord{
		Timestamp:  ts,
		Counter:    counter,
		DepthM:     depthCm/100*n.cal.Scale + n.cal.OffsetM,
		BattVolts:  parseFloatOrZero(raw.BattVolts),
		FixQuality: parseIntOrZero(raw.FixQuality),
		Satellites: parseIntOrZero(raw.Satellites),
		HDOP:       parseFloatOrZero(raw.HDOP),
		AltitudeM:  parseFloatOrZero(raw.AltitudeM),
		DepthVolts: parseFloatOrZero(raw.DepthVolts),
		latDeg:     latDeg,
		latMin:     latMin,
		lonDeg:     lonDeg,
		lonMin:     lonMin,
	}

	if n.havePrev && counter <= n.prevCounter {
		rec = rec.WithFlag(RuleDuplicateClick)
	}
	n.prevCounter = counter
	n.havePrev = true

	return rec, nil
}

func parseRequiredFloat(raw RawRecord, field Field, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &MalformedFieldError{Line: raw.Line, Field: field, Value: value, Err: err}
	}
	return v, nil
}

// parseFloatOrZero parses an optional field, returning 0 when blank or
// malformed. Optional sensor channels are frequently absent on older
// firmware.
func parseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntOrZero(s string) int {
	if s == "" {
		return 0
	}
	// Some firmware writes integer channels with a decimal point.
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
