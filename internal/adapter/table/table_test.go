package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

func sampleRecords(t *testing.T) []domain.CleanRecord {
	t.Helper()
	base, err := time.Parse(time.RFC3339Nano, "2022-03-14T21:27:06.5Z")
	require.NoError(t, err)

	return []domain.CleanRecord{
		{
			Timestamp: base,
			Counter:   100001,
			Latitude:  65.04120667,
			Longitude: -147.41698500,
			DepthM:    0.07283,
			Easting:   480366.787,
			Northing:  7213111.767,
		},
		{
			Timestamp: base.Add(3 * time.Second),
			Counter:   100002,
			Latitude:  65.04120000,
			Longitude: -147.41699000,
			DepthM:    0.31027,
			Easting:   480366.500,
			Northing:  7213111.000,
			Flags:     []string{string(domain.RuleLowSatellites), string(domain.RuleMaxDepth)},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	want := sampleRecords(t)

	require.NoError(t, Write(path, want))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i, rec := range got {
		assert.True(t, rec.Timestamp.Equal(want[i].Timestamp), "timestamp %d", i)
		assert.Equal(t, want[i].Counter, rec.Counter)
		assert.InDelta(t, want[i].Latitude, rec.Latitude, 1e-8)
		assert.InDelta(t, want[i].Longitude, rec.Longitude, 1e-8)
		assert.InDelta(t, want[i].DepthM, rec.DepthM, 1e-5)
		assert.InDelta(t, want[i].Easting, rec.Easting, 1e-3)
		assert.InDelta(t, want[i].Northing, rec.Northing, 1e-3)
	}
	assert.Empty(t, got[0].Flags)
	assert.Equal(t, want[1].Flags, got[1].Flags)
}

func TestWriteHeaderOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.csv")
	require.NoError(t, Write(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	first := strings.SplitN(strings.TrimRight(string(raw), "\n"), "\n", 2)[0]
	assert.Equal(t, "timestamp,counter,latitude,longitude,snow_depth_m,easting,northing,flags", first)
}

func TestReadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.csv")
	body := "timestamp,counter,latitude,longitude\n2022-03-14T21:27:06.5Z,1,65.0,-147.4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snow_depth_m")
}

func TestReadBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	body := "timestamp,counter,latitude,longitude,snow_depth_m,easting,northing,flags\n" +
		"not-a-time,1,65.0,-147.4,0.5,480000.0,7213000.0,\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}
