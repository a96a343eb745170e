// Package domain models MagnaProbe snow-depth survey data.
//
// # Data Source
//
// A MagnaProbe is a hand-carried snow-depth probe: each button press (a
// "click") records one measurement on a Campbell Scientific datalogger
// together with a GPS position. The logger writes a comma-delimited
// table with a multi-row header block, nominally four rows:
//
//	1. environment line (format tag, station and program names)
//	2. field names
//	3. field units
//	4. per-field sampling-type tags ("Smp", "Avg", ...)
//
// Header row count and column order vary across logger firmware
// versions, so fields are located by name aliases rather than by fixed
// position. See [DetectSchema].
//
// # Field Conventions
//
// Timestamp:
//
//	"2021-03-21 18:54:02.75": local logger time with sub-second
//	precision. Fractional seconds may be absent.
//
// Counter:
//
//	Integer click counter, strictly increasing within a file. A repeat
//	or decrease indicates a duplicate or reordered click and is flagged,
//	not dropped; the flag itself is diagnostic value. Counters whose
//	decimal form starts with the calibration prefix (conventionally 99)
//	mark calibration sequences keyed by the operator in the field.
//
// Coordinates:
//
//	Latitude and longitude arrive split into a whole-degree field and a
//	decimal-minute field (e.g. latitude_a=65, latitude_b=2.4724). The
//	sign of the position is carried by the degree field only; the minute
//	field may be recorded with either sign and its magnitude is used.
//	See [DecimalDegrees]; this convention is a frequent source of
//	silent sign errors in geodetic tooling. Some firmware also emits
//	redundant precomputed decimal-degree fields; those are retained but
//	the degree/minute pair is authoritative.
//
// Depth:
//
//	Snow depth in centimeters, converted to meters with an optional
//	linear calibration. Exactly 0 cm is a valid bare-ground reading;
//	negative depths indicate instrument fault and are flagged.
//
// Calibration sequences:
//
//	Operators verify the probe by alternating full-retract (~0 cm) and
//	full-extend (~120 cm) clicks. These show up as alternating
//	out-of-band depths and are detected by [FlagCalibrationPoints].
//
// GPS quality:
//
//	fix_quality 0 means no position fix; satellite count and HDOP
//	qualify positional accuracy. Rows failing the configured minimums
//	are flagged so downstream plots can distinguish suspect points.
package domain
