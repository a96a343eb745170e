// Package crs projects WGS-84 geographic coordinates into UTM zones.
//
// The projection is the transverse Mercator in the Krüger series form
// (6th order in the third flattening), the same formulation used by
// GeographicLib and PROJ for UTM. Series truncation error is below a
// millimeter anywhere inside a zone, which is far tighter than the
// positional accuracy of the GPS receiver producing the input data.
//
// Only the UTM EPSG ranges are accepted: 32601-32660 (northern
// hemisphere) and 32701-32760 (southern hemisphere). The zone is taken
// from the EPSG code, not from the longitude of the data, so a caller
// can deliberately project points that straddle a zone boundary into a
// single zone.
package crs

import (
	"fmt"
	"math"
)

// WGS-84 ellipsoid and UTM frame constants.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257223563

	scaleFactor   = 0.9996
	falseEasting  = 500000.0
	falseNorthing = 10000000.0 // southern hemisphere only
)

// ProjectionError reports an EPSG code outside the supported UTM ranges.
type ProjectionError struct {
	Code int
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("crs: unsupported target EPSG code %d (want UTM 32601-32660 or 32701-32760)", e.Code)
}

// Projector converts WGS-84 latitude/longitude into easting/northing
// meters of a fixed UTM zone. A Projector is immutable and safe for
// concurrent use.
type Projector struct {
	code  int
	zone  int
	south bool

	// Precomputed Krüger series terms.
	radius float64    // rectifying radius k0*A
	alpha  [6]float64 // ξ/η series coefficients
	sigma  float64    // 2*sqrt(n)/(1+n), conformal latitude factor
	lon0   float64    // central meridian, radians
}

// NewProjector builds a Projector for a UTM EPSG code.
// Returns *ProjectionError for any code outside the UTM ranges.
func NewProjector(epsg int) (*Projector, error) {
	var zone int
	var south bool
	switch {
	case epsg >= 32601 && epsg <= 32660:
		zone = epsg - 32600
	case epsg >= 32701 && epsg <= 32760:
		zone = epsg - 32700
		south = true
	default:
		return nil, &ProjectionError{Code: epsg}
	}

	n := flattening / (2 - flattening)
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	n5 := n4 * n
	n6 := n5 * n

	a := semiMajorAxis / (1 + n) * (1 + n2/4 + n4/64 + n6/256)

	return &Projector{
		code:   epsg,
		zone:   zone,
		south:  south,
		radius: scaleFactor * a,
		alpha: [6]float64{
			n/2 - 2.0/3*n2 + 5.0/16*n3 + 41.0/180*n4 - 127.0/288*n5 + 7891.0/37800*n6,
			13.0/48*n2 - 3.0/5*n3 + 557.0/1440*n4 + 281.0/630*n5 - 1983433.0/1935360*n6,
			61.0/240*n3 - 103.0/140*n4 + 15061.0/26880*n5 + 167603.0/181440*n6,
			49561.0/161280*n4 - 179.0/168*n5 + 6601661.0/7257600*n6,
			34729.0/80640*n5 - 3418889.0/1995840*n6,
			212378941.0 / 319334400 * n6,
		},
		sigma: 2 * math.Sqrt(n) / (1 + n),
		lon0:  centralMeridian(zone) * math.Pi / 180,
	}, nil
}

// EPSG returns the target coordinate reference system code.
func (p *Projector) EPSG() int { return p.code }

// Zone returns the UTM zone number (1-60).
func (p *Projector) Zone() int { return p.zone }

// South reports whether the target zone is in the southern hemisphere.
func (p *Projector) South() bool { return p.south }

// Project converts a WGS-84 coordinate in decimal degrees to easting
// and northing meters in the projector's zone. The caller is expected
// to have range-checked the inputs; values outside geographic bounds
// produce meaningless output.
func (p *Projector) Project(lat, lon float64) (easting, northing float64) {
	phi := lat * math.Pi / 180
	lam := lon*math.Pi/180 - p.lon0

	// Conformal latitude.
	sinPhi := math.Sin(phi)
	t := math.Sinh(math.Atanh(sinPhi) - p.sigma*math.Atanh(p.sigma*sinPhi))

	xiP := math.Atan2(t, math.Cos(lam))
	etaP := math.Asinh(math.Sin(lam) / math.Hypot(t, math.Cos(lam)))

	xi, eta := xiP, etaP
	for j := 1; j <= 6; j++ {
		c := p.alpha[j-1]
		xi += c * math.Sin(2*float64(j)*xiP) * math.Cosh(2*float64(j)*etaP)
		eta += c * math.Cos(2*float64(j)*xiP) * math.Sinh(2*float64(j)*etaP)
	}

	easting = falseEasting + p.radius*eta
	northing = p.radius * xi
	if p.south {
		northing += falseNorthing
	}
	return easting, northing
}

// centralMeridian returns the central meridian of a UTM zone in degrees.
func centralMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}
