package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateQuality_Thresholds(t *testing.T) {
	th := DefaultThresholds
	pol := Policies{}

	tests := []struct {
		name string
		rec  CleanRecord
		want []string
	}{
		{
			name: "clean record",
			rec:  CleanRecord{DepthM: 0.5, FixQuality: 1, Satellites: 9},
			want: nil,
		},
		{
			name: "zero depth is valid bare ground",
			rec:  CleanRecord{DepthM: 0, FixQuality: 1, Satellites: 9},
			want: nil,
		},
		{
			name: "negative depth",
			rec:  CleanRecord{DepthM: -0.05, FixQuality: 1, Satellites: 9},
			want: []string{"negative_depth"},
		},
		{
			name: "depth above ceiling",
			rec:  CleanRecord{DepthM: 1.5, FixQuality: 1, Satellites: 9},
			want: []string{"max_depth"},
		},
		{
			name: "no fix",
			rec:  CleanRecord{DepthM: 0.5, FixQuality: 0, Satellites: 9},
			want: []string{"no_fix"},
		},
		{
			name: "low satellites",
			rec:  CleanRecord{DepthM: 0.5, FixQuality: 1, Satellites: 3},
			want: []string{"low_satellites"},
		},
		{
			name: "multiple rules stack",
			rec:  CleanRecord{DepthM: -1, FixQuality: 0, Satellites: 0},
			want: []string{"negative_depth", "no_fix", "low_satellites"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateQuality(tt.rec, th, pol)
			assert.Equal(t, tt.want, got.Flags)
		})
	}
}

func TestEvaluateQuality_PolicyOffSkipsRule(t *testing.T) {
	pol := Policies{RuleNoFix: PolicyOff, RuleLowSatellites: PolicyOff}
	rec := EvaluateQuality(CleanRecord{DepthM: 0.5}, DefaultThresholds, pol)
	assert.Empty(t, rec.Flags)
}

func TestEvaluateQuality_DoesNotMutateInput(t *testing.T) {
	rec := CleanRecord{DepthM: -1, FixQuality: 1, Satellites: 9}
	_ = EvaluateQuality(rec, DefaultThresholds, Policies{})
	assert.Empty(t, rec.Flags)
}

func TestResolve_FlagKeepsDropRemoves(t *testing.T) {
	recs := []CleanRecord{
		{Counter: 1},
		{Counter: 2, Flags: []string{"negative_depth"}},
		{Counter: 3, Flags: []string{"no_fix"}},
		{Counter: 4, Flags: []string{"negative_depth", "no_fix"}},
	}
	pol := Policies{RuleNegativeDepth: PolicyDrop}

	kept, flagged, dropped := Resolve(recs, pol)

	require.Len(t, kept, 2)
	assert.Equal(t, int64(1), kept[0].Counter)
	assert.Equal(t, int64(3), kept[1].Counter)

	assert.Equal(t, 2, dropped[RuleNegativeDepth])
	// The no_fix flag on the dropped record counts as dropped, the one
	// on the kept record as flagged.
	assert.Equal(t, 1, dropped[RuleNoFix])
	assert.Equal(t, 1, flagged[RuleNoFix])
}

func TestResolve_DefaultPolicyKeepsEverything(t *testing.T) {
	recs := []CleanRecord{
		{Counter: 1, Flags: []string{"max_depth"}},
		{Counter: 2},
	}
	kept, flagged, dropped := Resolve(recs, Policies{})
	assert.Len(t, kept, 2)
	assert.Equal(t, 1, flagged[RuleMaxDepth])
	assert.Empty(t, dropped)
}

func TestPolicies_Validate(t *testing.T) {
	assert.NoError(t, Policies{}.Validate())
	assert.NoError(t, Policies{RuleMaxDepth: PolicyDrop, RuleNoFix: PolicyOff}.Validate())
	assert.Error(t, Policies{Rule("bogus"): PolicyFlag}.Validate())
	assert.Error(t, Policies{RuleMaxDepth: Policy("delete")}.Validate())
}

func TestWithFlag_CopiesFlagSlice(t *testing.T) {
	base := CleanRecord{Flags: []string{"a"}}
	b := base.WithFlag(Rule("b"))
	c := base.WithFlag(Rule("c"))

	assert.Equal(t, []string{"a"}, base.Flags)
	assert.Equal(t, []string{"a", "b"}, b.Flags)
	assert.Equal(t, []string{"a", "c"}, c.Flags)
}
