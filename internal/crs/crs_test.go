package crs

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference eastings/northings were generated with two independently
// derived transverse Mercator formulations (the Krüger series used here
// and the classic Snyder/Redfearn expansion) which agree below 1 mm.
func TestProjector_Project(t *testing.T) {
	tests := []struct {
		name     string
		epsg     int
		lat, lon float64
		easting  float64
		northing float64
	}{
		{
			name: "interior alaska zone 6N",
			epsg: 32606,
			lat:  65.04120666666667, lon: -147.416985,
			easting: 480366.7875, northing: 7213111.7669,
		},
		{
			name: "fairbanks zone 6N",
			epsg: 32606,
			lat:  64.8378, lon: -147.7164,
			easting: 466012.8231, northing: 7190570.2327,
		},
		{
			// Anchorage falls in zone 5; forcing zone 6 must still
			// project into the requested zone.
			name: "forced neighboring zone",
			epsg: 32606,
			lat:  61.2181, lon: -149.9003,
			easting: 344247.2065, northing: 6790536.8713,
		},
		{
			name: "equator on central meridian",
			epsg: 32606,
			lat:  0, lon: -147,
			easting: 500000, northing: 0,
		},
		{
			name: "low latitude zone 33N",
			epsg: 32633,
			lat:  0.5, lon: 15.5,
			easting: 555636.0880, northing: 55267.1556,
		},
		{
			name: "sydney zone 56S false northing",
			epsg: 32756,
			lat:  -33.8688, lon: 151.2093,
			easting: 334368.6336, northing: 6250948.3454,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProjector(tt.epsg)
			require.NoError(t, err)

			e, n := p.Project(tt.lat, tt.lon)
			assert.InDelta(t, tt.easting, e, 0.01)
			assert.InDelta(t, tt.northing, n, 0.01)
		})
	}
}

func TestNewProjector_CodeRanges(t *testing.T) {
	tests := []struct {
		epsg  int
		zone  int
		south bool
	}{
		{32601, 1, false},
		{32660, 60, false},
		{32701, 1, true},
		{32760, 60, true},
	}
	for _, tt := range tests {
		p, err := NewProjector(tt.epsg)
		require.NoError(t, err)
		assert.Equal(t, tt.zone, p.Zone())
		assert.Equal(t, tt.south, p.South())
		assert.Equal(t, tt.epsg, p.EPSG())
	}
}

func TestNewProjector_RejectsNonUTMCodes(t *testing.T) {
	for _, epsg := range []int{0, -1, 4326, 3857, 32600, 32661, 32700, 32761, 99999} {
		_, err := NewProjector(epsg)
		require.Error(t, err, "epsg %d", epsg)

		var pe *ProjectionError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, epsg, pe.Code)
	}
}

func TestProjector_Deterministic(t *testing.T) {
	p, err := NewProjector(32606)
	require.NoError(t, err)

	e1, n1 := p.Project(65.0412, -147.417)
	e2, n2 := p.Project(65.0412, -147.417)
	assert.Equal(t, e1, e2)
	assert.Equal(t, n1, n2)
}

func TestCentralMeridian(t *testing.T) {
	assert.Equal(t, -177.0, centralMeridian(1))
	assert.Equal(t, -147.0, centralMeridian(6))
	assert.Equal(t, 177.0, centralMeridian(60))
}

func TestProjector_SymmetryAboutCentralMeridian(t *testing.T) {
	p, err := NewProjector(32606)
	require.NoError(t, err)

	const lat = 64.0
	eW, nW := p.Project(lat, -148.0)
	eE, nE := p.Project(lat, -146.0)

	assert.InDelta(t, falseEasting-eW, eE-falseEasting, 1e-6)
	assert.InDelta(t, nW, nE, 1e-6)
	assert.False(t, math.IsNaN(eW) || math.IsNaN(nW))
}

func TestProjectionError_Unwrap(t *testing.T) {
	_, err := NewProjector(4326)
	assert.False(t, errors.Is(err, errors.New("other")))
	assert.Contains(t, err.Error(), "4326")
}
