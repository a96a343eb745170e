package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func depthsToRecords(counterBase int64, depths ...float64) []CleanRecord {
	recs := make([]CleanRecord, len(depths))
	for i, d := range depths {
		recs[i] = CleanRecord{Counter: counterBase + int64(i), DepthM: d}
	}
	return recs
}

func flaggedIndexes(recs []CleanRecord, rule Rule) []int {
	var out []int
	for i, r := range recs {
		if r.Flagged(rule) {
			out = append(out, i)
		}
	}
	return out
}

func TestFlagCalibrationPoints_CounterPrefix(t *testing.T) {
	recs := []CleanRecord{
		{Counter: 100001, DepthM: 0.5},
		{Counter: 990001, DepthM: 0.5},
		{Counter: 990002, DepthM: 0.5},
		{Counter: 100002, DepthM: 0.5},
	}
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})

	assert.Equal(t, []int{1, 2}, flaggedIndexes(out, RuleCalibrationPrefix))
	assert.Empty(t, flaggedIndexes(out, RuleCalibrationPattern))
}

func TestFlagCalibrationPoints_AlternationPattern(t *testing.T) {
	// Classic 0-120-0-120 verification sequence in the middle of a
	// transect of plausible depths.
	recs := depthsToRecords(1, 0.45, 0.50, 0.001, 1.19, 0.002, 1.20, 0.48, 0.52)
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})

	assert.Equal(t, []int{2, 3, 4, 5}, flaggedIndexes(out, RuleCalibrationPattern))
}

func TestFlagCalibrationPoints_LoneOutOfBandNotFlagged(t *testing.T) {
	// A single bare-ground click with no opposite extreme nearby is a
	// real measurement, not calibration.
	recs := depthsToRecords(1, 0.45, 0.001, 0.50, 0.48)
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})

	assert.Empty(t, flaggedIndexes(out, RuleCalibrationPattern))
}

func TestFlagCalibrationPoints_LowLowHighRun(t *testing.T) {
	// A-A-B pattern: two retract clicks then a full extend.
	recs := depthsToRecords(1, 0.5, 0.001, 0.002, 1.19, 0.5)
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})

	assert.Equal(t, []int{1, 2, 3}, flaggedIndexes(out, RuleCalibrationPattern))
}

func TestFlagCalibrationPoints_WindowBound(t *testing.T) {
	// Opposite extremes four rows apart are outside the default window.
	recs := depthsToRecords(1, 0.001, 0.5, 0.5, 0.5, 0.5, 1.19)
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})

	assert.Empty(t, flaggedIndexes(out, RuleCalibrationPattern))
}

func TestFlagCalibrationPoints_PolicyOff(t *testing.T) {
	recs := []CleanRecord{
		{Counter: 990001, DepthM: 0.001},
		{Counter: 990002, DepthM: 1.19},
	}
	pol := Policies{
		RuleCalibrationPrefix:  PolicyOff,
		RuleCalibrationPattern: PolicyOff,
	}
	out := FlagCalibrationPoints(recs, DefaultCalibrationCull, pol)
	for _, r := range out {
		assert.Empty(t, r.Flags)
	}
}

func TestFlagCalibrationPoints_DoesNotMutateInput(t *testing.T) {
	recs := depthsToRecords(990001, 0.001, 1.19)
	_ = FlagCalibrationPoints(recs, DefaultCalibrationCull, Policies{})
	for _, r := range recs {
		assert.Empty(t, r.Flags)
	}
}
