package plotkit

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
)

// HRule is a plotter drawing a horizontal line across the full width of a
// subplot at a fixed Y value.
type HRule struct {
	Y float64
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (r *HRule) Plot(c draw.Canvas, plt *plot.Plot) {
	_, trY := plt.Transforms(&c)
	y := trY(r.Y)
	c.StrokeLine2(r.LineStyle, c.Min.X, y, c.Max.X, y)
}

// DataRange implements plot.DataRanger: the rule constrains only the Y axis.
func (r *HRule) DataRange() (xmin, xmax, ymin, ymax float64) {
	return math.Inf(1), math.Inf(-1), r.Y, r.Y
}

// VRule is a plotter drawing a vertical line across the full height of a
// subplot at a fixed X value.
type VRule struct {
	X float64
	draw.LineStyle
}

// Plot implements plot.Plotter.
func (r *VRule) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	x := trX(r.X)
	c.StrokeLine2(r.LineStyle, x, c.Min.Y, x, c.Max.Y)
}

// DataRange implements plot.DataRanger: the rule constrains only the X axis.
func (r *VRule) DataRange() (xmin, xmax, ymin, ymax float64) {
	return r.X, r.X, math.Inf(1), math.Inf(-1)
}
