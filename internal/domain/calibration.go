package domain

import (
	"strconv"
	"strings"
)

// CalibrationCull describes how calibration sequences are recognized.
// Operators verify the probe by alternating full-retract (~0 cm) and
// full-extend (~120 cm) clicks, ideally keyed with a distinct counter
// prefix; when the prefix is missing the alternation pattern itself is
// the signature.
type CalibrationCull struct {
	// CounterPrefix marks operator-keyed calibration counters by their
	// leading decimal digits (conventionally 99). Zero disables the
	// prefix rule.
	CounterPrefix int
	// DepthMinM / DepthMaxM bound plausible measurement depths; depths
	// outside the band are calibration candidates.
	DepthMinM float64
	DepthMaxM float64
	// Window is how many neighboring rows to scan for the opposite
	// extreme. Zero means the default of 3.
	Window int
}

// DefaultCalibrationCull matches the field convention: prefix 99,
// plausible band 0.02-1.18 m.
var DefaultCalibrationCull = CalibrationCull{CounterPrefix: 99, DepthMinM: 0.02, DepthMaxM: 1.18, Window: 3}

// FlagCalibrationPoints returns a copy of the records with calibration
// rows flagged.
//
// Two rules. RuleCalibrationPrefix: the counter's decimal form starts
// with the configured prefix. RuleCalibrationPattern: the depth is
// outside the plausible band and an out-of-band depth of the opposite
// extreme occurs within Window neighboring rows; the low/high
// alternation an operator produces when exercising the probe. A lone
// out-of-band depth with no opposite extreme nearby is left to the
// threshold rules, so a genuine deep-drift reading is not misread as
// calibration.
//
// Rules with PolicyOff are skipped.
func FlagCalibrationPoints(recs []CleanRecord, c CalibrationCull, pol Policies) []CleanRecord {
	prefixOn := pol.For(RuleCalibrationPrefix) != PolicyOff && c.CounterPrefix > 0
	patternOn := pol.For(RuleCalibrationPattern) != PolicyOff && c.DepthMaxM > c.DepthMinM

	out := make([]CleanRecord, len(recs))
	copy(out, recs)
	if !prefixOn && !patternOn {
		return out
	}

	window := c.Window
	if window <= 0 {
		window = 3
	}

	low := make([]bool, len(recs))
	high := make([]bool, len(recs))
	for i, rec := range recs {
		low[i] = rec.DepthM < c.DepthMinM
		high[i] = rec.DepthM > c.DepthMaxM
	}

	prefix := strconv.Itoa(c.CounterPrefix)

	for i, rec := range recs {
		if prefixOn && strings.HasPrefix(strconv.FormatInt(rec.Counter, 10), prefix) {
			out[i] = out[i].WithFlag(RuleCalibrationPrefix)
		}
		if patternOn && (low[i] || high[i]) && oppositeNearby(low, high, i, window) {
			out[i] = out[i].WithFlag(RuleCalibrationPattern)
		}
	}
	return out
}

// oppositeNearby reports whether an out-of-band depth of the opposite
// extreme occurs within window rows of index i.
func oppositeNearby(low, high []bool, i, window int) bool {
	for d := 1; d <= window; d++ {
		for _, j := range []int{i - d, i + d} {
			if j < 0 || j >= len(low) {
				continue
			}
			if low[i] && high[j] || high[i] && low[j] {
				return true
			}
		}
	}
	return false
}
