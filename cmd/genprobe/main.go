// Command genprobe writes a synthetic MagnaProbe datalogger file for
// testing the converter without field data. The output carries the
// standard four-row header, a random-walk survey track near Fairbanks,
// and, optionally, an operator calibration sequence.
//
// Usage:
//
//	go run ./cmd/genprobe -out testdata/synthetic.dat -rows 500 -seed 7
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"
)

func main() {
	out := flag.String("out", "synthetic.dat", "output file path")
	rows := flag.Int("rows", 200, "number of data rows")
	seed := flag.Int64("seed", 1, "random seed, for reproducible files")
	cal := flag.Bool("cal", true, "prepend an operator calibration sequence")
	flag.Parse()

	if err := run(*out, *rows, *seed, *cal); err != nil {
		log.Fatal(err)
	}
}

func run(out string, rows int, seed int64, cal bool) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	writeHeader(w)

	rng := rand.New(rand.NewSource(seed))
	ts := time.Date(2022, time.March, 14, 21, 0, 0, 0, time.UTC)
	lat, lon := 65.0412, -147.4170
	counter := int64(100000)

	if cal {
		// Operators verify the probe by sliding the basket to both
		// stops: full extension then zero, twice.
		for i, depthCm := range []float64{119.4, 0.3, 119.6, 0.2} {
			counter++
			writeRow(w, ts, counter, depthCm, lat, lon, rng)
			ts = ts.Add(time.Duration(2+i) * time.Second)
		}
	}

	for i := 0; i < rows; i++ {
		counter++
		// Occasional double-click on the probe button.
		if rng.Float64() < 0.01 {
			counter--
		}
		lat += (rng.Float64() - 0.5) * 0.0002
		lon += (rng.Float64() - 0.5) * 0.0004
		depthCm := 40 + 25*math.Sin(float64(i)/30) + rng.NormFloat64()*8
		if depthCm < 0 {
			depthCm = 0
		}
		writeRow(w, ts, counter, depthCm, lat, lon, rng)
		ts = ts.Add(time.Duration(3+rng.Intn(5)) * time.Second)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s: %d rows", out, rows)
	return nil
}

func writeHeader(w *bufio.Writer) {
	fmt.Fprintln(w, `"TOA5","MagnaProbe","CR800","0000","CR800.Std.32","CPU:MagnaProbe.CR8","0000","Pos"`)
	fmt.Fprintln(w, `"TIMESTAMP","RECORD","Counter","DepthCm","BattVolts","latitude_a","latitude_b","Longitude_a","Longitude_b","fix_quality","nmbr_satellites","HDOP","altitudeB","DepthVolts","LatitudeDDDDD","LongitudeDDDDD"`)
	fmt.Fprintln(w, `"TS","RN","","","","degrees","minutes","degrees","minutes","unitless","count","unitless","m","volts","degrees","degrees"`)
	fmt.Fprintln(w, `"","","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp","Smp"`)
}

func writeRow(w *bufio.Writer, ts time.Time, counter int64, depthCm, lat, lon float64, rng *rand.Rand) {
	latDeg := math.Trunc(lat)
	latMin := (lat - latDeg) * 60
	lonDeg := math.Trunc(lon)
	lonMin := (lon - lonDeg) * 60

	fmt.Fprintf(w, "\"%s\",%d,%d,%.3f,%.2f,%.0f,%.4f,%.0f,%.4f,%d,%d,%.2f,%.1f,%.4f,%.6f,%.6f\n",
		ts.Format("2006-01-02 15:04:05.9"),
		counter, counter,
		depthCm,
		12.1+rng.Float64()*0.4,
		latDeg, latMin,
		lonDeg, lonMin,
		1, 7+rng.Intn(5),
		1.0+rng.Float64(),
		150+rng.Float64()*10,
		depthCm/100,
		lat, lon,
	)
}
