// internal/chart/params.go
package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/simani23/gpu-zip/internal/signal"
	"github.com/simani23/gpu-zip/internal/sweep"
)

// errPoints pairs group means with their spread for plotter.NewYErrorBars.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// ParameterGrid draws one panel per parameter effect: group mean ratio with
// a standard deviation bar, over shaded quality zones.
func ParameterGrid(path string, effects []sweep.ParameterEffect, bands signal.Bands) error {
	var panels []*plot.Plot
	for i, effect := range effects {
		if len(effect.Groups) == 0 {
			continue
		}
		p, err := effectPlot(effect, bands, i)
		if err != nil {
			return err
		}
		panels = append(panels, p)
	}
	if len(panels) == 0 {
		return ErrNoData
	}

	t := tiles(len(panels))
	grid := make([][]*plot.Plot, t.Rows)
	for j := range grid {
		grid[j] = make([]*plot.Plot, t.Cols)
	}
	for i, p := range panels {
		grid[i/t.Cols][i%t.Cols] = p
	}

	img := vgimg.New(vg.Length(t.Cols)*5*vg.Inch, vg.Length(t.Rows)*4*vg.Inch)
	canvases := plot.Align(grid, t, draw.New(img))
	for j := range grid {
		for i, p := range grid[j] {
			if p == nil {
				continue
			}
			p.Draw(canvases[j][i])
		}
	}
	return saveCanvas(img, path)
}

func effectPlot(effect sweep.ParameterEffect, bands signal.Bands, idx int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = effect.Param
	p.X.Label.Text = effect.Param
	p.Y.Label.Text = "mean ratio"
	p.Add(plotter.NewGrid())

	pts := errPoints{
		XYs:     make(plotter.XYs, len(effect.Groups)),
		YErrors: make(plotter.YErrors, len(effect.Groups)),
	}
	names := make([]string, len(effect.Groups))
	lo, hi := 1.0, 1.0
	for i, g := range effect.Groups {
		names[i] = g.Value.String()
		pts.XYs[i] = plotter.XY{X: float64(i), Y: g.Stat.Mean}
		pts.YErrors[i] = struct{ Low, High float64 }{g.Stat.StdDev, g.Stat.StdDev}
		lo = math.Min(lo, g.Stat.Mean-g.Stat.StdDev)
		hi = math.Max(hi, g.Stat.Mean+g.Stat.StdDev)
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 0.1
	}
	lo, hi = lo-pad, hi+pad

	xmin, xmax := -0.5, float64(len(effect.Groups))-0.5
	for _, z := range qualityZones(bands) {
		poly, ok, err := zonePolygon(z, xmin, xmax, lo, hi)
		if err != nil {
			return nil, fmt.Errorf("quality zone for %s: %w", effect.Param, err)
		}
		if ok {
			p.Add(poly)
		}
	}

	line, points, err := plotter.NewLinePoints(pts.XYs)
	if err != nil {
		return nil, fmt.Errorf("line for %s: %w", effect.Param, err)
	}
	line.Color = plotutil.Color(idx)
	points.Color = plotutil.Color(idx)
	points.Shape = plotutil.Shape(idx)

	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, fmt.Errorf("error bars for %s: %w", effect.Param, err)
	}
	bars.Color = plotutil.Color(idx)
	p.Add(line, points, bars)

	p.NominalX(names...)
	p.X.Min, p.X.Max = xmin, xmax
	p.Y.Min, p.Y.Max = lo, hi
	return p, nil
}

// qualityZones shades below MARGINAL red, up to GOOD yellow and above green.
func qualityZones(bands signal.Bands) []zone {
	return []zone{
		{low: math.Inf(-1), high: bands.Lower(signal.Marginal), fill: red(0x30)},
		{low: bands.Lower(signal.Marginal), high: bands.Lower(signal.Good), fill: yellow(0x30)},
		{low: bands.Lower(signal.Good), high: math.Inf(1), fill: green(0x30)},
	}
}

func zonePolygon(z zone, xmin, xmax, ymin, ymax float64) (*plotter.Polygon, bool, error) {
	low := math.Max(z.low, ymin)
	high := math.Min(z.high, ymax)
	if high <= low {
		return nil, false, nil
	}
	poly, err := plotter.NewPolygon(plotter.XYs{
		{X: xmin, Y: low}, {X: xmax, Y: low}, {X: xmax, Y: high}, {X: xmin, Y: high},
	})
	if err != nil {
		return nil, false, err
	}
	poly.Color = z.fill
	poly.LineStyle.Width = 0
	return poly, true, nil
}

// gridXYZ adapts an interaction grid to plotter.GridXYZ. Empty cells are NaN.
type gridXYZ struct {
	grid sweep.Grid
}

func (g gridXYZ) Dims() (c, r int) { return len(g.grid.XValues), len(g.grid.YValues) }
func (g gridXYZ) X(c int) float64  { return float64(c) }
func (g gridXYZ) Y(r int) float64  { return float64(r) }
func (g gridXYZ) Z(c, r int) float64 {
	cell := g.grid.Cells[c][r]
	if !cell.OK {
		return math.NaN()
	}
	return cell.Stat.Mean
}

// InteractionMap draws the mean ratio of every (x, y) combination as a heat
// map annotated with the cell means.
func InteractionMap(path string, grid sweep.Grid) error {
	cols, rows := len(grid.XValues), len(grid.YValues)
	if cols == 0 || rows == 0 {
		return ErrNoData
	}
	data := gridXYZ{grid: grid}

	zmin, zmax := math.Inf(1), math.Inf(-1)
	var labels plotter.XYLabels
	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			z := data.Z(c, r)
			if math.IsNaN(z) {
				continue
			}
			zmin = math.Min(zmin, z)
			zmax = math.Max(zmax, z)
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", z))
		}
	}
	if len(labels.XYs) == 0 {
		return ErrNoData
	}

	pal := palette.Reverse(moreland.SmoothGreenRed()).Palette(255)
	hm := plotter.NewHeatMap(data, pal)
	hm.Min, hm.Max = zmin, zmax
	if hm.Min == hm.Max {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Mean ratio by %s and %s", grid.X, grid.Y)
	p.X.Label.Text = grid.X
	p.Y.Label.Text = grid.Y
	p.Add(hm)

	l, err := plotter.NewLabels(labels)
	if err != nil {
		return fmt.Errorf("interaction labels: %w", err)
	}
	p.Add(l)

	xs := make([]string, cols)
	for i, v := range grid.XValues {
		xs[i] = v.String()
	}
	ys := make([]string, rows)
	for i, v := range grid.YValues {
		ys[i] = v.String()
	}
	p.NominalX(xs...)
	p.NominalY(ys...)

	w := vg.Length(math.Max(6, float64(cols)*1.2)) * vg.Inch
	h := vg.Length(math.Max(4, float64(rows)*0.8)) * vg.Inch
	return save(p, w, h, path)
}
