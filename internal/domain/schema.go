package domain

import (
	"strconv"
	"strings"
)

// Field is a logical column of the logger table, independent of the
// header spelling a particular firmware uses.
type Field string

const (
	FieldTimestamp  Field = "timestamp"
	FieldCounter    Field = "counter"
	FieldDepthCm    Field = "depth_cm"
	FieldBattVolts  Field = "battery_volts"
	FieldLatDeg     Field = "latitude_degrees"
	FieldLatMin     Field = "latitude_minutes"
	FieldLonDeg     Field = "longitude_degrees"
	FieldLonMin     Field = "longitude_minutes"
	FieldFixQuality Field = "fix_quality"
	FieldSatellites Field = "satellites"
	FieldHDOP       Field = "hdop"
	FieldAltitude   Field = "altitude"
	FieldDepthVolts Field = "depth_volts"
	FieldLatDecimal Field = "latitude_decimal"
	FieldLonDecimal Field = "longitude_decimal"
)

// requiredFields must all resolve for a file to be processable.
var requiredFields = []Field{
	FieldTimestamp, FieldCounter, FieldDepthCm,
	FieldLatDeg, FieldLatMin, FieldLonDeg, FieldLonMin,
}

// fieldAliases maps each logical field to the header spellings seen
// across logger firmware versions. Matching is case-insensitive and
// exact; fields not matched by alias fall back to the substring rules
// in matchColumn.
var fieldAliases = map[Field][]string{
	FieldTimestamp:  {"timestamp", "ts"},
	FieldCounter:    {"counter", "record"},
	FieldDepthCm:    {"depthcm", "depth_cm", "snowdepthcm"},
	FieldBattVolts:  {"battvolts", "batt_volts", "battery", "batt_volt"},
	FieldLatDeg:     {"latitude_a", "lat_a", "latitude_deg"},
	FieldLatMin:     {"latitude_b", "lat_b", "latitude_min"},
	FieldLonDeg:     {"longitude_a", "long_a", "lon_a", "longitude_deg"},
	FieldLonMin:     {"longitude_b", "long_b", "lon_b", "longitude_min"},
	FieldFixQuality: {"fix_quality", "fixquality", "fix"},
	FieldSatellites: {"nmbr_satellites", "nbr_satellites", "satellites", "num_sats"},
	FieldHDOP:       {"hdop"},
	FieldAltitude:   {"altitudeb", "altitude_b", "altitude"},
	FieldDepthVolts: {"depthvolts", "depth_volts"},
}

// maxHeaderScan bounds the search for the field-name row. All known
// firmware emits it within the first few lines.
const maxHeaderScan = 6

// Schema maps logical fields to column indexes for one source file.
type Schema struct {
	columns   map[Field]int
	DataStart int // index of the first data row in the scanned rows
}

// DetectSchema locates the field-name row inside the leading header
// block and resolves every logical field to a column index. The header
// block length varies by firmware: the field-name row is found by the
// presence of a timestamp column, and subsequent annotation rows
// (units, sampling-type tags) are skipped until the first row whose
// counter column is numeric.
//
// Returns *SchemaError when any required column cannot be resolved.
func DetectSchema(rows [][]string) (*Schema, error) {
	nameRow := -1
	for i := 0; i < len(rows) && i < maxHeaderScan; i++ {
		for _, cell := range rows[i] {
			if matchesAlias(FieldTimestamp, normalizeHeader(cell)) {
				nameRow = i
				break
			}
		}
		if nameRow >= 0 {
			break
		}
	}
	if nameRow < 0 {
		return nil, &SchemaError{Missing: append([]Field(nil), requiredFields...)}
	}

	names := make([]string, len(rows[nameRow]))
	for idx, cell := range rows[nameRow] {
		names[idx] = normalizeHeader(cell)
	}

	// Aliases are listed in priority order: "counter" must win over the
	// logger's own "record" scan number when a file carries both.
	columns := make(map[Field]int, len(fieldAliases))
	for field, aliases := range fieldAliases {
		for _, a := range aliases {
			idx, ok := indexOf(names, a)
			if ok {
				columns[field] = idx
				break
			}
		}
	}
	for idx, name := range names {
		field, ok := matchColumn(name)
		if !ok {
			continue
		}
		if _, taken := columns[field]; !taken {
			columns[field] = idx
		}
	}

	var missing []Field
	for _, f := range requiredFields {
		if _, ok := columns[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	s := &Schema{columns: columns, DataStart: len(rows)}
	counterCol := columns[FieldCounter]
	for i := nameRow + 1; i < len(rows); i++ {
		if counterCol < len(rows[i]) {
			if _, err := strconv.ParseInt(strings.TrimSpace(rows[i][counterCol]), 10, 64); err == nil {
				s.DataStart = i
				break
			}
		}
	}
	return s, nil
}

// Column returns the column index of a logical field.
func (s *Schema) Column(f Field) (int, bool) {
	idx, ok := s.columns[f]
	return idx, ok
}

// Record extracts a typed-string RawRecord from one data row. Absent
// optional columns and short rows yield empty strings.
func (s *Schema) Record(line int, row []string) RawRecord {
	get := func(f Field) string {
		idx, ok := s.columns[f]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
	return RawRecord{
		Line:       line,
		Timestamp:  get(FieldTimestamp),
		Counter:    get(FieldCounter),
		DepthCm:    get(FieldDepthCm),
		BattVolts:  get(FieldBattVolts),
		LatDeg:     get(FieldLatDeg),
		LatMin:     get(FieldLatMin),
		LonDeg:     get(FieldLonDeg),
		LonMin:     get(FieldLonMin),
		FixQuality: get(FieldFixQuality),
		Satellites: get(FieldSatellites),
		HDOP:       get(FieldHDOP),
		AltitudeM:  get(FieldAltitude),
		DepthVolts: get(FieldDepthVolts),
		LatDecimal: get(FieldLatDecimal),
		LonDecimal: get(FieldLonDecimal),
	}
}

// normalizeHeader lowercases a header cell and strips surrounding
// quotes and whitespace.
func normalizeHeader(cell string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(cell), `"`))
}

func indexOf(names []string, alias string) (int, bool) {
	for i, n := range names {
		if n == alias {
			return i, true
		}
	}
	return 0, false
}

func matchesAlias(f Field, name string) bool {
	for _, a := range fieldAliases[f] {
		if name == a {
			return true
		}
	}
	return false
}

// matchColumn resolves a normalized header name to a logical field.
// Exact aliases win; the substring fallbacks mirror the loose matching
// older firmware requires (e.g. a depth column is any column naming
// both depth and cm that is not the sensor voltage).
func matchColumn(name string) (Field, bool) {
	if name == "" {
		return "", false
	}
	for f := range fieldAliases {
		if matchesAlias(f, name) {
			return f, true
		}
	}
	switch {
	case strings.Contains(name, "depth") && strings.Contains(name, "volt"):
		return FieldDepthVolts, true
	case strings.Contains(name, "depth") && strings.Contains(name, "cm"):
		return FieldDepthCm, true
	case strings.Contains(name, "lat") && strings.Contains(name, "dd"):
		return FieldLatDecimal, true
	case strings.Contains(name, "lon") && strings.Contains(name, "dd"):
		return FieldLonDecimal, true
	}
	return "", false
}
