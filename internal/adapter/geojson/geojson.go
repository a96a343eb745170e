// Package geojson writes and reads the cleaned point dataset as an
// RFC 7946 FeatureCollection.
//
// GeoJSON geometry is always WGS-84 longitude/latitude; the projected
// easting/northing and the target EPSG code travel in the feature
// properties so GIS consumers can rebuild the metric geometry without
// reprojecting.
package geojson

import (
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// FeatureCollection is an RFC 7946 collection of point features.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one measurement point.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is a GeoJSON Point: coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// Properties carries the record attributes.
type Properties struct {
	Timestamp  string   `json:"timestamp"` // RFC 3339 with sub-second precision
	Counter    int64    `json:"counter"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	SnowDepthM float64  `json:"snow_depth_m"`
	Easting    float64  `json:"easting"`
	Northing   float64  `json:"northing"`
	EPSG       int      `json:"epsg"`
	Flags      []string `json:"flags,omitempty"`
}

// Write exports the records to path as a FeatureCollection.
func Write(path string, recs []domain.CleanRecord, epsg int) error {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, len(recs)),
	}
	for i, rec := range recs {
		fc.Features[i] = Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{rec.Longitude, rec.Latitude},
			},
			Properties: Properties{
				Timestamp:  rec.Timestamp.UTC().Format(time.RFC3339Nano),
				Counter:    rec.Counter,
				Latitude:   rec.Latitude,
				Longitude:  rec.Longitude,
				SnowDepthM: rec.DepthM,
				Easting:    rec.Easting,
				Northing:   rec.Northing,
				EPSG:       epsg,
				Flags:      rec.Flags,
			},
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// Read loads a FeatureCollection written by Write back into records.
// Returns the records and the EPSG code recorded in the properties
// (zero when the file carries none).
func Read(path string) ([]domain.CleanRecord, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", path, err)
	}

	epsg := 0
	recs := make([]domain.CleanRecord, len(fc.Features))
	for i, ft := range fc.Features {
		ts, err := time.Parse(time.RFC3339Nano, ft.Properties.Timestamp)
		if err != nil {
			return nil, 0, fmt.Errorf("%s feature %d: bad timestamp %q: %w", path, i, ft.Properties.Timestamp, err)
		}
		recs[i] = domain.CleanRecord{
			Timestamp: ts,
			Counter:   ft.Properties.Counter,
			Latitude:  ft.Properties.Latitude,
			Longitude: ft.Properties.Longitude,
			DepthM:    ft.Properties.SnowDepthM,
			Easting:   ft.Properties.Easting,
			Northing:  ft.Properties.Northing,
			Flags:     ft.Properties.Flags,
		}
		if ft.Properties.EPSG != 0 {
			epsg = ft.Properties.EPSG
		}
	}
	return recs, epsg, nil
}
