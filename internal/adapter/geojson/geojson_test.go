package geojson

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
			Latitude:  65.04120666666667,
			Longitude: -147.416985,
			DepthM:    0.07283,
			Easting:   480366.787,
			Northing:  7213111.767,
		},
		{
			Timestamp: base.Add(3 * time.Second),
			Counter:   100002,
			Latitude:  65.0412,
			Longitude: -147.41699,
			DepthM:    0.31027,
			Easting:   480366.5,
			Northing:  7213111.0,
			Flags:     []string{string(domain.RuleLowSatellites)},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.geojson")
	want := sampleRecords(t)

	require.NoError(t, Write(path, want, 32606))

	got, epsg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 32606, epsg)
	require.Len(t, got, len(want))

	for i, rec := range got {
		assert.True(t, rec.Timestamp.Equal(want[i].Timestamp), "timestamp %d", i)
		assert.Equal(t, want[i].Counter, rec.Counter)
		assert.InDelta(t, want[i].Latitude, rec.Latitude, 1e-9)
		assert.InDelta(t, want[i].Longitude, rec.Longitude, 1e-9)
		assert.InDelta(t, want[i].DepthM, rec.DepthM, 1e-9)
		assert.InDelta(t, want[i].Easting, rec.Easting, 1e-6)
		assert.InDelta(t, want[i].Northing, rec.Northing, 1e-6)
	}
	assert.Empty(t, got[0].Flags)
	assert.Equal(t, []string{string(domain.RuleLowSatellites)}, got[1].Flags)
}

func TestWriteGeometryOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clean.geojson")
	require.NoError(t, Write(path, sampleRecords(t), 32606))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"type": "FeatureCollection"`)
	// RFC 7946 coordinate order is lon, lat.
	lon := strings.Index(body, "-147.416985")
	lat := strings.Index(body, "65.04120666666667")
	require.GreaterOrEqual(t, lon, 0)
	require.GreaterOrEqual(t, lat, 0)
	assert.Less(t, lon, lat)
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := Read(filepath.Join(t.TempDir(), "absent.geojson"))
	assert.Error(t, err)
}
