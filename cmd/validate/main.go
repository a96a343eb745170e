// Command validate runs preflight integrity checks on raw MagnaProbe
// datalogger files before conversion: header schema, timestamp and row
// parseability, counter monotonicity, coordinate bounds, and depth
// plausibility. It prints a pass/fail report per phase and exits
// non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate <file.dat|directory> [...]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/snowsci/magnaprobe-etl/internal/adapter/dat"
	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: validate <file.dat|directory> [...]")
		os.Exit(2)
	}

	failed := false
	for _, arg := range flag.Args() {
		paths, err := expand(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			failed = true
			continue
		}
		for _, path := range paths {
			if !validateFile(path) {
				failed = true
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}

func expand(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{arg}, nil
	}
	return dat.ListDir(arg)
}

// validateFile runs all phases on one file and prints the report.
func validateFile(path string) bool {
	fmt.Printf("=== %s\n", path)

	schemaPhase := &phase{name: "schema"}
	raws, err := dat.ReadFile(path)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			schemaPhase.errorf("missing columns: %v", schemaErr.Missing)
		} else {
			schemaPhase.errorf("%v", err)
		}
		report(schemaPhase)
		return false
	}
	if len(raws) == 0 {
		schemaPhase.errorf("no data rows")
	}
	phases := []*phase{schemaPhase, checkRows(raws)}

	ok := true
	for _, p := range phases {
		if !report(p) {
			ok = false
		}
	}
	return ok
}

// checkRows runs the row-level phases: parse, counters, coordinates,
// depths. Uses the same normalization as the converter so a clean
// validate run means a clean conversion.
func checkRows(raws []domain.RawRecord) *phase {
	p := &phase{name: "rows"}
	norm := domain.NewNormalizer(domain.DefaultCalibration)

	var prevCounter int64
	for i, raw := range raws {
		rec, err := norm.Normalize(raw)
		if err != nil {
			p.errorf("line %d: %v", raw.Line, err)
			continue
		}

		if i > 0 && rec.Counter <= prevCounter {
			p.errorf("line %d: counter %d repeats or decreases (previous %d)",
				raw.Line, rec.Counter, prevCounter)
		}
		prevCounter = rec.Counter

		rec, err = domain.ConsolidateCoordinates(rec, raw.Line)
		if err != nil {
			p.errorf("line %d: %v", raw.Line, err)
			continue
		}
		if rec.DepthM < 0 {
			p.errorf("line %d: negative depth %.3fm", raw.Line, rec.DepthM)
		}
	}
	return p
}

// report prints one phase result, capping the error listing.
func report(p *phase) bool {
	const maxShown = 10

	if p.passed() {
		fmt.Printf("  PASS %s\n", p.name)
		return true
	}
	fmt.Printf("  FAIL %s (%d problems)\n", p.name, len(p.errors))
	for i, msg := range p.errors {
		if i == maxShown {
			fmt.Printf("       ... and %d more\n", len(p.errors)-maxShown)
			break
		}
		fmt.Printf("       %s\n", msg)
	}
	return false
}
