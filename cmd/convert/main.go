// Command convert turns raw MagnaProbe datalogger files into a clean,
// projected dataset, written as both GeoJSON and CSV.
//
// Usage:
//
//	convert [flags] <input> <epsg> <out.geojson> <out.csv>
//
// <input> is a single datalogger file, or a directory whose files are
// concatenated into one dataset (a multi-day campaign). <epsg> is the
// target WGS 84 / UTM code, e.g. 32606 for zone 6 north.
//
// Flags:
//
//	-config FILE        YAML run configuration (calibration, thresholds, policies)
//	-drop               drop every rule-violating row instead of flagging
//	-metrics-file FILE  write Prometheus textfile-collector metrics on exit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/snowsci/magnaprobe-etl/internal/adapter/dat"
	"github.com/snowsci/magnaprobe-etl/internal/adapter/geojson"
	"github.com/snowsci/magnaprobe-etl/internal/adapter/table"
	"github.com/snowsci/magnaprobe-etl/internal/config"
	"github.com/snowsci/magnaprobe-etl/internal/crs"
	"github.com/snowsci/magnaprobe-etl/internal/domain"
	"github.com/snowsci/magnaprobe-etl/internal/observability"
	"github.com/snowsci/magnaprobe-etl/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		slog.Error("conversion failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML run configuration file")
	drop := flag.Bool("drop", false, "drop every rule-violating row instead of flagging")
	metricsFile := flag.String("metrics-file", "", "write Prometheus textfile metrics here on exit")
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		return fmt.Errorf("expected <input> <epsg> <out.geojson> <out.csv>, got %d arguments", flag.NArg())
	}
	input, geojsonOut, csvOut := flag.Arg(0), flag.Arg(2), flag.Arg(3)

	epsg, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		return fmt.Errorf("epsg %q: %w", flag.Arg(1), err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *drop {
		cfg.DropAll()
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	proj, err := crs.NewProjector(epsg)
	if err != nil {
		return err
	}

	raws, err := readInput(input, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, proj, logger, metrics)
	recs, summary := p.Process(raws)

	if err := geojson.Write(geojsonOut, recs, epsg); err != nil {
		return err
	}
	if err := table.Write(csvOut, recs); err != nil {
		return err
	}

	logger.Info("conversion complete",
		"rows_read", summary.RowsRead,
		"rows_exported", summary.RowsExported,
		"rows_dropped", summary.RowsDropped,
		"epsg", epsg,
		"geojson", geojsonOut,
		"csv", csvOut,
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)
	for reason, n := range summary.Dropped {
		logger.Warn("rows dropped", "reason", reason, "count", n)
	}
	for rule, n := range summary.Flagged {
		logger.Info("rows flagged", "rule", rule, "count", n)
	}

	if *metricsFile != "" {
		if err := metrics.WriteTextfile(*metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

// readInput loads one datalogger file, or every file of a directory
// concatenated in name order.
func readInput(input string, logger *slog.Logger) ([]domain.RawRecord, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", input, err)
	}
	if !info.IsDir() {
		return dat.ReadFile(input)
	}

	paths, err := dat.ListDir(input)
	if err != nil {
		return nil, err
	}

	var raws []domain.RawRecord
	for _, path := range paths {
		recs, err := dat.ReadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Info("read input file", "path", path, "rows", len(recs))
		raws = append(raws, recs...)
	}
	return raws, nil
}
