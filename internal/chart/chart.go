// internal/chart/chart.go
// Package chart renders the computed aggregates to PNG files. It never
// derives statistics of its own.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// File names written into the output directory.
const (
	HistogramFile   = "timing_histogram.png"
	ParameterFile   = "parameter_analysis.png"
	InteractionFile = "parameter_interaction.png"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("chart: nothing to plot")

// Series is one labelled sample set.
type Series struct {
	Label   string
	Samples []float64
}

// zone is a horizontal quality band drawn behind parameter plots.
type zone struct {
	low, high float64
	fill      color.Color
}

func red(alpha uint8) color.Color    { return color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: alpha} }
func yellow(alpha uint8) color.Color { return color.NRGBA{R: 0xf2, G: 0xc1, B: 0x2e, A: alpha} }
func green(alpha uint8) color.Color  { return color.NRGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: alpha} }

// Histogram overlays one histogram per series, normalized so differently
// sized sets compare.
func Histogram(path string, series []Series, unit string) error {
	p := plot.New()
	p.Title.Text = "Timing distribution"
	p.X.Label.Text = "duration (" + unit + ")"
	p.Y.Label.Text = "density"
	p.Legend.Top = true

	drawn := 0
	for i, s := range series {
		if len(s.Samples) == 0 {
			continue
		}
		bins := binCount(len(s.Samples))
		h, err := plotter.NewHist(plotter.Values(s.Samples), bins)
		if err != nil {
			return fmt.Errorf("histogram %s: %w", s.Label, err)
		}
		h.Normalize(1)
		c := plotutil.Color(i)
		r, g, b, _ := c.RGBA()
		h.FillColor = color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0x80}
		h.LineStyle.Color = c
		p.Add(h)
		p.Legend.Add(s.Label, h)
		drawn++
	}
	if drawn == 0 {
		return ErrNoData
	}
	return save(p, 8*vg.Inch, 5*vg.Inch, path)
}

// binCount follows the square-root rule, bounded to keep bars readable.
func binCount(n int) int {
	bins := int(math.Ceil(math.Sqrt(float64(n))))
	switch {
	case bins < 5:
		return 5
	case bins > 100:
		return 100
	}
	return bins
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("unable to write chart %s: %w", path, err)
	}
	return nil
}

func saveCanvas(img *vgimg.Canvas, path string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to write chart %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write chart %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close chart %s: %w", path, err)
	}
	return nil
}

// tiles lays out n plots in at most three columns.
func tiles(n int) draw.Tiles {
	cols := n
	if cols > 3 {
		cols = 3
	}
	rows := (n + cols - 1) / cols
	return draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(4),
	}
}
