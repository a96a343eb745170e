// Package table writes and reads the cleaned dataset as a plain
// delimited table, mirroring the attributes of the GeoJSON export for
// spreadsheet and scripting consumers.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// header is the canonical column order of the clean table.
var header = []string{
	"timestamp", "counter", "latitude", "longitude",
	"snow_depth_m", "easting", "northing", "flags",
}

// flagSeparator joins multiple rule names inside the single flags column.
const flagSeparator = "|"

// Write exports the records to a CSV file at path.
func Write(path string, recs []domain.CleanRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, rec := range recs {
		row := []string{
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
			strconv.FormatInt(rec.Counter, 10),
			strconv.FormatFloat(rec.Latitude, 'f', 8, 64),
			strconv.FormatFloat(rec.Longitude, 'f', 8, 64),
			strconv.FormatFloat(rec.DepthM, 'f', 5, 64),
			strconv.FormatFloat(rec.Easting, 'f', 3, 64),
			strconv.FormatFloat(rec.Northing, 'f', 3, 64),
			strings.Join(rec.Flags, flagSeparator),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Read loads a table written by Write back into records.
func Read(path string) ([]domain.CleanRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: empty table", path)
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range header[:len(header)-1] { // flags column is optional
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("read %s: missing column %q", path, name)
		}
	}

	recs := make([]domain.CleanRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(col, row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func parseRow(col map[string]int, row []string) (domain.CleanRecord, error) {
	get := func(name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	ts, err := time.Parse(time.RFC3339Nano, get("timestamp"))
	if err != nil {
		return domain.CleanRecord{}, fmt.Errorf("bad timestamp: %w", err)
	}
	counter, err := strconv.ParseInt(get("counter"), 10, 64)
	if err != nil {
		return domain.CleanRecord{}, fmt.Errorf("bad counter: %w", err)
	}

	floats := make(map[string]float64, 5)
	for _, name := range []string{"latitude", "longitude", "snow_depth_m", "easting", "northing"} {
		v, err := strconv.ParseFloat(get(name), 64)
		if err != nil {
			return domain.CleanRecord{}, fmt.Errorf("bad %s: %w", name, err)
		}
		floats[name] = v
	}

	var flags []string
	if s := get("flags"); s != "" {
		flags = strings.Split(s, flagSeparator)
	}

	return domain.CleanRecord{
		Timestamp: ts,
		Counter:   counter,
		Latitude:  floats["latitude"],
		Longitude: floats["longitude"],
		DepthM:    floats["snow_depth_m"],
		Easting:   floats["easting"],
		Northing:  floats["northing"],
		Flags:     flags,
	}, nil
}
