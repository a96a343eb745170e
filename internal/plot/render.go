package plot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/snowsci/magnaprobe-etl/internal/domain"
)

const (
	histogramBins = 40

	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
	mapSize    = 7 * vg.Inch
)

// Histogram renders the snow-depth distribution to a PNG at path. The
// depth statistics appear in the title so a figure stands on its own.
func Histogram(path string, recs []domain.CleanRecord) error {
	if len(recs) == 0 {
		return fmt.Errorf("histogram %s: no records", path)
	}

	values := make(plotter.Values, len(recs))
	for i, rec := range recs {
		values[i] = rec.DepthM
	}

	h, err := plotter.NewHist(values, histogramBins)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", path, err)
	}
	h.FillColor = color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Snow depth distribution\n%s", ComputeDepthStats(recs))
	p.X.Label.Text = "Snow depth (m)"
	p.Y.Label.Text = "Count"
	p.Add(h)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("histogram %s: %w", path, err)
	}
	return nil
}

// DepthLine renders snow depth against measurement order to a PNG at
// path, the quickest way to spot drift or a stretch of bad probing.
func DepthLine(path string, recs []domain.CleanRecord) error {
	if len(recs) == 0 {
		return fmt.Errorf("depth line %s: no records", path)
	}

	xys := make(plotter.XYs, len(recs))
	for i, rec := range recs {
		xys[i] = plotter.XY{X: float64(i), Y: rec.DepthM}
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("depth line %s: %w", path, err)
	}
	line.Color = color.RGBA{R: 0x4c, G: 0x72, B: 0xb0, A: 0xff}

	p := plot.New()
	p.Title.Text = "Snow depth by measurement"
	p.X.Label.Text = "Measurement"
	p.Y.Label.Text = "Snow depth (m)"
	p.Add(line)

	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("depth line %s: %w", path, err)
	}
	return nil
}

// Map renders the projected survey track to a PNG at path, one point
// per measurement colored by snow depth.
func Map(path string, recs []domain.CleanRecord) error {
	if len(recs) == 0 {
		return fmt.Errorf("map %s: no records", path)
	}

	stats := ComputeDepthStats(recs)
	cm := moreland.SmoothBlueRed()
	cm.SetMin(stats.MinM)
	if stats.MaxM > stats.MinM {
		cm.SetMax(stats.MaxM)
	} else {
		cm.SetMax(stats.MinM + 1)
	}

	xys := make(plotter.XYs, len(recs))
	for i, rec := range recs {
		xys[i] = plotter.XY{X: rec.Easting, Y: rec.Northing}
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("map %s: %w", path, err)
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(recs[i].DepthM)
		if err != nil {
			c = color.Gray{Y: 0x80}
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Survey track, depth-colored\n%s", stats)
	p.X.Label.Text = "Easting (m)"
	p.Y.Label.Text = "Northing (m)"
	p.Add(sc)

	if err := p.Save(mapSize, mapSize, path); err != nil {
		return fmt.Errorf("map %s: %w", path, err)
	}
	return nil
}
