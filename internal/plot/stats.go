// Package plot renders diagnostic figures and summary statistics for a
// cleaned snow-depth dataset.
package plot

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// DepthStats summarizes the snow-depth column of a dataset.
type DepthStats struct {
	N       int
	MinM    float64
	MaxM    float64
	MeanM   float64
	StdDevM float64
}

// ComputeDepthStats returns the depth statistics for the records.
// The zero value is returned for an empty dataset.
func ComputeDepthStats(recs []domain.CleanRecord) DepthStats {
	if len(recs) == 0 {
		return DepthStats{}
	}

	depths := make([]float64, len(recs))
	s := DepthStats{N: len(recs), MinM: recs[0].DepthM, MaxM: recs[0].DepthM}
	for i, rec := range recs {
		depths[i] = rec.DepthM
		if rec.DepthM < s.MinM {
			s.MinM = rec.DepthM
		}
		if rec.DepthM > s.MaxM {
			s.MaxM = rec.DepthM
		}
	}

	s.MeanM = stat.Mean(depths, nil)
	if len(depths) > 1 {
		s.StdDevM = stat.StdDev(depths, nil)
	}
	return s
}

// String renders the statistics on one line, in meters.
func (s DepthStats) String() string {
	return fmt.Sprintf("n=%d min=%.3fm max=%.3fm mean=%.3fm stddev=%.3fm",
		s.N, s.MinM, s.MaxM, s.MeanM, s.StdDevM)
}
