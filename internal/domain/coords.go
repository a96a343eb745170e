package domain

import "math"

// DecimalDegrees combines a whole-degree field and a decimal-minute
// field into one signed decimal-degree value.
//
// The sign convention is inherited from the data source: the hemisphere
// is carried by the degree field ONLY. The minute field is recorded
// with either sign depending on firmware (western longitudes often
// arrive as e.g. deg=-147, min=-25.0191) and its magnitude is used.
// math.Copysign keeps a "-0" degree reading in the correct hemisphere.
func DecimalDegrees(deg, min float64) float64 {
	return math.Copysign(math.Abs(deg)+math.Abs(min)/60, deg)
}

// ConsolidateCoordinates fills Latitude and Longitude from the raw
// degree/minute parts carried through normalization. When the result
// falls outside geographic bounds the record is returned with the
// coordinates as computed plus a *CoordinateRangeError, so the caller
// can flag the row rather than silently correct it.
func ConsolidateCoordinates(rec CleanRecord, line int) (CleanRecord, error) {
	rec.Latitude = DecimalDegrees(rec.latDeg, rec.latMin)
	rec.Longitude = DecimalDegrees(rec.lonDeg, rec.lonMin)

	if rec.Latitude < -90 || rec.Latitude > 90 || rec.Longitude < -180 || rec.Longitude > 180 {
		return rec, &CoordinateRangeError{Line: line, Latitude: rec.Latitude, Longitude: rec.Longitude}
	}
	return rec, nil
}
