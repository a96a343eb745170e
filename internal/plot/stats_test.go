package plot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

func depthRecords(depths ...float64) []domain.CleanRecord {
	recs := make([]domain.CleanRecord, len(depths))
	for i, d := range depths {
		recs[i] = domain.CleanRecord{
			Counter:  int64(i + 1),
			DepthM:   d,
			Easting:  480000 + float64(i)*2,
			Northing: 7213000 + float64(i),
		}
	}
	return recs
}

func TestComputeDepthStats(t *testing.T) {
	s := ComputeDepthStats(depthRecords(0.10, 0.20, 0.30, 0.40))

	assert.Equal(t, 4, s.N)
	assert.InDelta(t, 0.10, s.MinM, 1e-12)
	assert.InDelta(t, 0.40, s.MaxM, 1e-12)
	assert.InDelta(t, 0.25, s.MeanM, 1e-12)
	// Sample standard deviation of 0.1..0.4.
	assert.InDelta(t, 0.12909944, s.StdDevM, 1e-8)
}

func TestComputeDepthStats_Empty(t *testing.T) {
	assert.Equal(t, DepthStats{}, ComputeDepthStats(nil))
}

func TestComputeDepthStats_SingleRecord(t *testing.T) {
	s := ComputeDepthStats(depthRecords(0.25))
	assert.Equal(t, 1, s.N)
	assert.Zero(t, s.StdDevM)
	assert.Equal(t, s.MinM, s.MaxM)
}

func TestDepthStats_String(t *testing.T) {
	s := DepthStats{N: 3, MinM: 0, MaxM: 1.2, MeanM: 0.4, StdDevM: 0.2}
	assert.Equal(t, "n=3 min=0.000m max=1.200m mean=0.400m stddev=0.200m", s.String())
}

func TestRenderFiles(t *testing.T) {
	dir := t.TempDir()
	recs := depthRecords(0.05, 0.12, 0.31, 0.08, 0.44)

	require.NoError(t, Histogram(filepath.Join(dir, "hist.png"), recs))
	require.NoError(t, DepthLine(filepath.Join(dir, "line.png"), recs))
	require.NoError(t, Map(filepath.Join(dir, "map.png"), recs))
}

func TestRenderEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Histogram(filepath.Join(dir, "hist.png"), nil))
	assert.Error(t, DepthLine(filepath.Join(dir, "line.png"), nil))
	assert.Error(t, Map(filepath.Join(dir, "map.png"), nil))
}
