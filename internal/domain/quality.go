package domain

import "fmt"

// Rule names a quality check. Rule names appear verbatim in record
// flags, run summaries, and metrics labels.
type Rule string

const (
	RuleDuplicateClick     Rule = "duplicate_click"
	RuleCoordinateRange    Rule = "coordinate_range"
	RuleNegativeDepth      Rule = "negative_depth"
	RuleMaxDepth           Rule = "max_depth"
	RuleNoFix              Rule = "no_fix"
	RuleLowSatellites      Rule = "low_satellites"
	RuleCalibrationPrefix  Rule = "calibration_prefix"
	RuleCalibrationPattern Rule = "calibration_pattern"
)

// Rules lists every quality rule, in evaluation order.
var Rules = []Rule{
	RuleDuplicateClick,
	RuleCoordinateRange,
	RuleNegativeDepth,
	RuleMaxDepth,
	RuleNoFix,
	RuleLowSatellites,
	RuleCalibrationPrefix,
	RuleCalibrationPattern,
}

// Policy decides what a triggered rule does to a row.
type Policy string

const (
	// PolicyFlag labels the row and keeps it. This is the default for
	// every rule: suspect points stay visible to downstream plotting.
	PolicyFlag Policy = "flag"
	// PolicyDrop removes the row from the output (the triggering rule
	// is still counted in the summary).
	PolicyDrop Policy = "drop"
	// PolicyOff disables the rule.
	PolicyOff Policy = "off"
)

// Policies maps rules to their configured policy. Missing entries
// default to PolicyFlag.
type Policies map[Rule]Policy

// For returns the effective policy for a rule.
func (p Policies) For(r Rule) Policy {
	if pol, ok := p[r]; ok {
		return pol
	}
	return PolicyFlag
}

// Validate rejects unknown rule names and policy values.
func (p Policies) Validate() error {
	known := make(map[Rule]bool, len(Rules))
	for _, r := range Rules {
		known[r] = true
	}
	for r, pol := range p {
		if !known[r] {
			return fmt.Errorf("unknown quality rule %q", r)
		}
		switch pol {
		case PolicyFlag, PolicyDrop, PolicyOff:
		default:
			return fmt.Errorf("rule %q: unknown policy %q (want flag, drop, or off)", r, pol)
		}
	}
	return nil
}

// Thresholds are the plausibility limits for the threshold rules.
type Thresholds struct {
	// MaxDepthM is the plausibility ceiling in meters; a standard probe
	// rod tops out at about 1.2 m.
	MaxDepthM float64
	// MinSatellites is the minimum satellite count for a trusted fix.
	MinSatellites int
}

// DefaultThresholds covers realistic seasonal snowpack on a standard
// probe.
var DefaultThresholds = Thresholds{MaxDepthM: 1.20, MinSatellites: 4}

// EvaluateQuality applies the threshold rules to one record and returns
// a copy carrying any triggered flags. A depth of exactly 0 is a valid
// bare-ground reading and is never flagged. Rules with PolicyOff are
// skipped.
func EvaluateQuality(rec CleanRecord, th Thresholds, pol Policies) CleanRecord {
	if pol.For(RuleNegativeDepth) != PolicyOff && rec.DepthM < 0 {
		rec = rec.WithFlag(RuleNegativeDepth)
	}
	if pol.For(RuleMaxDepth) != PolicyOff && th.MaxDepthM > 0 && rec.DepthM > th.MaxDepthM {
		rec = rec.WithFlag(RuleMaxDepth)
	}
	if pol.For(RuleNoFix) != PolicyOff && rec.FixQuality == 0 {
		rec = rec.WithFlag(RuleNoFix)
	}
	if pol.For(RuleLowSatellites) != PolicyOff && rec.Satellites < th.MinSatellites {
		rec = rec.WithFlag(RuleLowSatellites)
	}
	return rec
}

// Resolve applies the per-rule policies to flagged records: a record
// carrying any flag whose policy is PolicyDrop is removed, everything
// else is kept. The input slice is not modified. Returns the kept
// records plus per-rule counts of flagged (kept) and dropped rows.
func Resolve(recs []CleanRecord, pol Policies) (kept []CleanRecord, flagged, dropped map[Rule]int) {
	flagged = make(map[Rule]int)
	dropped = make(map[Rule]int)
	kept = make([]CleanRecord, 0, len(recs))

	for _, rec := range recs {
		drop := false
		for _, f := range rec.Flags {
			if pol.For(Rule(f)) == PolicyDrop {
				drop = true
				break
			}
		}
		for _, f := range rec.Flags {
			if drop {
				dropped[Rule(f)]++
			} else {
				flagged[Rule(f)]++
			}
		}
		if !drop {
			kept = append(kept, rec)
		}
	}
	return kept, flagged, dropped
}
