// Package dat reads raw MagnaProbe logger files: a comma-delimited
// table with a multi-row header block. The whole file is loaded at
// once; field files are bounded (thousands of rows, not millions).
package dat

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// ReadFile parses one raw logger file into RawRecords in file order.
// Schema problems surface as *domain.SchemaError wrapped with the path.
func ReadFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // header rows are shorter than data rows
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	schema, err := domain.DetectSchema(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	records := make([]domain.RawRecord, 0, len(rows)-schema.DataStart)
	for i := schema.DataStart; i < len(rows); i++ {
		records = append(records, schema.Record(i+1, rows[i]))
	}
	return records, nil
}

// ListDir returns the raw files in a directory in name order, for
// batch runs over a campaign directory.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read raw directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no raw files in %s", dir)
	}
	return paths, nil
}
