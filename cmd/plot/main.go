// Command plot renders diagnostic figures for a cleaned dataset
// produced by convert.
//
// Usage:
//
//	plot [flags] <clean.geojson|clean.csv>
//
// By default three PNGs are written next to the input (or under
// -outdir): <stem>_histogram.png, <stem>_line.png, and <stem>_map.png.
// With -save=false nothing is rendered and the depth statistics are
// printed instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/snowsci/magnaprobe-etl/internal/adapter/geojson"
	"github.com/snowsci/magnaprobe-etl/internal/adapter/table"
	"github.com/snowsci/magnaprobe-etl/internal/config"
	"github.com/snowsci/magnaprobe-etl/internal/domain"
	"github.com/snowsci/magnaprobe-etl/internal/observability"
	"github.com/snowsci/magnaprobe-etl/internal/plot"
)

func main() {
	if err := run(); err != nil {
		slog.Error("plotting failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	save := flag.Bool("save", true, "render PNG figures; with -save=false print depth statistics only")
	outdir := flag.String("outdir", "", "directory for the figures (default: next to the input)")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return fmt.Errorf("expected one cleaned .geojson or .csv input, got %d arguments", flag.NArg())
	}
	input := flag.Arg(0)

	cfg := config.Default()
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	recs, err := readClean(input)
	if err != nil {
		return err
	}

	if !*save {
		fmt.Println(plot.ComputeDepthStats(recs))
		return nil
	}

	dir := *outdir
	if dir == "" {
		dir = filepath.Dir(input)
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("outdir %s: %w", dir, err)
	}
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	figures := []struct {
		suffix string
		render func(string, []domain.CleanRecord) error
	}{
		{"_histogram.png", plot.Histogram},
		{"_line.png", plot.DepthLine},
		{"_map.png", plot.Map},
	}
	for _, fig := range figures {
		path := filepath.Join(dir, stem+fig.suffix)
		if err := fig.render(path, recs); err != nil {
			return err
		}
		logger.Info("wrote figure", "path", path)
	}

	logger.Info("plotting complete", "rows", len(recs), "stats", plot.ComputeDepthStats(recs).String())
	return nil
}

// readClean loads a cleaned dataset in either export format, chosen by
// file extension.
func readClean(input string) ([]domain.CleanRecord, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".geojson", ".json":
		recs, _, err := geojson.Read(input)
		return recs, err
	case ".csv":
		return table.Read(input)
	default:
		return nil, fmt.Errorf("input %s: expected a .geojson or .csv file", input)
	}
}
